package models

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/backup"
)

// BackupJobModel is the persistence model for backup/restore jobs.
type BackupJobModel struct {
	AggregateModel
	Type            backup.JobType   `gorm:"type:varchar(20);not null;index"`
	Status          backup.JobStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ProgressPercent int              `gorm:"not null;default:0"`
	OutputPath      string           `gorm:"type:varchar(1000)"`
	OutputSizeBytes int64            `gorm:"not null;default:0"`
	ErrorMessage    string           `gorm:"type:text"`
	StartedAt       *time.Time
	FinishedAt      *time.Time
}

// TableName returns the table name for GORM
func (BackupJobModel) TableName() string {
	return "backup_jobs"
}

// ToDomain converts the persistence model to a domain Job.
func (m *BackupJobModel) ToDomain() *backup.Job {
	return &backup.Job{
		BaseAggregateRoot: m.toAggregateRoot(),
		Type:              m.Type,
		Status:            m.Status,
		ProgressPercent:   m.ProgressPercent,
		OutputPath:        m.OutputPath,
		OutputSizeBytes:   m.OutputSizeBytes,
		ErrorMessage:      m.ErrorMessage,
		StartedAt:         m.StartedAt,
		FinishedAt:        m.FinishedAt,
	}
}

// FromDomain populates the persistence model from a domain Job.
func (m *BackupJobModel) FromDomain(j *backup.Job) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.Type = j.Type
	m.Status = j.Status
	m.ProgressPercent = j.ProgressPercent
	m.OutputPath = j.OutputPath
	m.OutputSizeBytes = j.OutputSizeBytes
	m.ErrorMessage = j.ErrorMessage
	m.StartedAt = j.StartedAt
	m.FinishedAt = j.FinishedAt
}

// BackupJobModelFromDomain creates a new persistence model from a domain Job.
func BackupJobModelFromDomain(j *backup.Job) *BackupJobModel {
	m := &BackupJobModel{}
	m.FromDomain(j)
	return m
}
