package backup

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/backup"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const uploadPrefix = "backups/uploads/"

// JobRunner executes backup and restore jobs. Implementations block until the
// job finishes; the service launches them on goroutines and the UI polls the
// job status.
type JobRunner interface {
	RunBackup(ctx context.Context, job *backup.Job)
	RunRestore(ctx context.Context, job *backup.Job, archiveKey string)
}

// Service starts backup and restore jobs and exposes their status. Jobs run
// asynchronously; starting returns the pending job immediately.
type Service struct {
	jobs   backup.Repository
	runner JobRunner
	store  storage.ObjectStorage
	logger *zap.Logger
}

// NewService creates a backup service
func NewService(jobs backup.Repository, runner JobRunner, store storage.ObjectStorage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{jobs: jobs, runner: runner, store: store, logger: logger}
}

// StartBackup persists a pending backup job and launches it
func (s *Service) StartBackup(ctx context.Context) (*JobResponse, error) {
	job, err := backup.NewJob(backup.JobTypeBackup)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	// The job outlives the request; the runner gets its own context.
	go s.runner.RunBackup(context.Background(), job)

	s.logger.Info("backup job started", zap.String("job_id", job.ID.String()))

	response := ToJobResponse(job)
	return &response, nil
}

// StartRestore persists a pending restore job and launches it against either
// a completed backup job's archive or a previously uploaded one.
func (s *Service) StartRestore(ctx context.Context, req StartRestoreRequest) (*JobResponse, error) {
	archiveKey, err := s.resolveArchiveKey(ctx, req)
	if err != nil {
		return nil, err
	}

	job, err := backup.NewJob(backup.JobTypeRestore)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	go s.runner.RunRestore(context.Background(), job, archiveKey)

	s.logger.Info("restore job started",
		zap.String("job_id", job.ID.String()),
		zap.String("archive", archiveKey))

	response := ToJobResponse(job)
	return &response, nil
}

func (s *Service) resolveArchiveKey(ctx context.Context, req StartRestoreRequest) (string, error) {
	switch {
	case req.ArchiveKey != "":
		if !strings.HasPrefix(req.ArchiveKey, uploadPrefix) {
			return "", shared.NewValidationError("Invalid restore request", map[string]string{
				"archive_key": "archive key must reference an uploaded archive",
			})
		}
		exists, err := s.store.ObjectExists(ctx, req.ArchiveKey)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", shared.ErrNotFound
		}
		return req.ArchiveKey, nil

	case req.SourceJobID != nil:
		source, err := s.jobs.FindByID(ctx, *req.SourceJobID)
		if err != nil {
			return "", err
		}
		if source.Type != backup.JobTypeBackup || source.Status != backup.JobStatusCompleted {
			return "", shared.NewDomainError("INVALID_STATE", "Restore source must be a completed backup job")
		}
		return source.OutputPath, nil

	default:
		return "", shared.NewValidationError("Invalid restore request", map[string]string{
			"source": "either source_job_id or archive_key is required",
		})
	}
}

// ArchiveUpload carries an incoming archive file
type ArchiveUpload struct {
	FileName string
	Size     int64
	Body     io.Reader
}

// UploadArchive stores an externally produced archive for a later restore
func (s *Service) UploadArchive(ctx context.Context, upload ArchiveUpload) (*UploadResponse, error) {
	key := uploadPrefix + uuid.New().String() + "-" + safeBase(upload.FileName)
	if err := s.store.Upload(ctx, key, upload.Body, "application/octet-stream"); err != nil {
		return nil, fmt.Errorf("failed to upload archive: %w", err)
	}

	s.logger.Info("backup archive uploaded",
		zap.String("key", key), zap.Int64("size_bytes", upload.Size))

	return &UploadResponse{ArchiveKey: key}, nil
}

// ListJobs returns the most recent jobs, newest first
func (s *Service) ListJobs(ctx context.Context, limit int) ([]JobResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	jobs, err := s.jobs.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, ToJobResponse(&jobs[i]))
	}
	return responses, nil
}

// GetJob retrieves one job by its ID
func (s *Service) GetJob(ctx context.Context, id uuid.UUID) (*JobResponse, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToJobResponse(job)
	return &response, nil
}

// DownloadURL generates a presigned URL for a completed backup job's archive
func (s *Service) DownloadURL(ctx context.Context, jobID uuid.UUID) (string, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return "", err
	}
	if job.Type != backup.JobTypeBackup || job.Status != backup.JobStatusCompleted {
		return "", shared.NewDomainError("INVALID_STATE", "Only completed backup jobs can be downloaded")
	}

	url, _, err := s.store.GenerateDownloadURL(ctx, job.OutputPath, 15*time.Minute)
	return url, err
}

func safeBase(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "archive.dump"
	}
	return base
}
