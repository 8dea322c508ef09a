package persistence

import (
	"context"
	"errors"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/backup"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBackupJobRepository implements backup.Repository using GORM
type GormBackupJobRepository struct {
	db *gorm.DB
}

// NewGormBackupJobRepository creates a new GormBackupJobRepository
func NewGormBackupJobRepository(db *gorm.DB) *GormBackupJobRepository {
	return &GormBackupJobRepository{db: db}
}

// FindByID finds a job by its ID
func (r *GormBackupJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*backup.Job, error) {
	var m models.BackupJobModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindRecent finds the most recently created jobs
func (r *GormBackupJobRepository) FindRecent(ctx context.Context, limit int) ([]backup.Job, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []models.BackupJobModel
	if err := dbFromContext(ctx, r.db).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return backupJobsToDomain(rows), nil
}

// FindRunning finds jobs still marked running (used to fail stale jobs on boot)
func (r *GormBackupJobRepository) FindRunning(ctx context.Context) ([]backup.Job, error) {
	var rows []models.BackupJobModel
	if err := dbFromContext(ctx, r.db).
		Where("status IN ?", []backup.JobStatus{backup.JobStatusPending, backup.JobStatusRunning}).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return backupJobsToDomain(rows), nil
}

// Save creates or updates a job
func (r *GormBackupJobRepository) Save(ctx context.Context, j *backup.Job) error {
	m := models.BackupJobModelFromDomain(j)
	return dbFromContext(ctx, r.db).Save(m).Error
}

func backupJobsToDomain(rows []models.BackupJobModel) []backup.Job {
	jobs := make([]backup.Job, len(rows))
	for i := range rows {
		jobs[i] = *rows[i].ToDomain()
	}
	return jobs
}

var _ backup.Repository = (*GormBackupJobRepository)(nil)
