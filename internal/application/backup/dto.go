package backup

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/backup"
	"github.com/google/uuid"
)

// StartRestoreRequest selects the archive a restore runs against: either a
// completed backup job or an uploaded archive key, never both defaulted.
type StartRestoreRequest struct {
	SourceJobID *uuid.UUID `json:"source_job_id"`
	ArchiveKey  string     `json:"archive_key"`
}

// UploadResponse returns the storage key of an uploaded archive
type UploadResponse struct {
	ArchiveKey string `json:"archive_key"`
}

// JobResponse represents a backup or restore job in API responses
type JobResponse struct {
	ID              uuid.UUID  `json:"id"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	ProgressPercent int        `json:"progress_percent"`
	OutputPath      string     `json:"output_path,omitempty"`
	OutputSizeBytes int64      `json:"output_size_bytes,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	StartedAt       *time.Time `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToJobResponse converts a domain job to its response form
func ToJobResponse(j *backup.Job) JobResponse {
	return JobResponse{
		ID:              j.ID,
		Type:            string(j.Type),
		Status:          string(j.Status),
		ProgressPercent: j.ProgressPercent,
		OutputPath:      j.OutputPath,
		OutputSizeBytes: j.OutputSizeBytes,
		ErrorMessage:    j.ErrorMessage,
		StartedAt:       j.StartedAt,
		FinishedAt:      j.FinishedAt,
		CreatedAt:       j.CreatedAt,
	}
}
