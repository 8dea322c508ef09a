package backup

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
)

// JobType distinguishes backup from restore runs
type JobType string

const (
	JobTypeBackup  JobType = "BACKUP"
	JobTypeRestore JobType = "RESTORE"
)

// IsValid checks if the job type is valid
func (t JobType) IsValid() bool {
	return t == JobTypeBackup || t == JobTypeRestore
}

// JobStatus is the lifecycle status of a backup job.
// pending → running → completed | failed; completed and failed are terminal.
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// IsTerminal returns true if the job can no longer change state
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job tracks one asynchronous backup or restore run. Start returns the job
// immediately; the runner updates it as work progresses and the UI polls.
// There is no cancellation; retrying means starting a fresh job.
type Job struct {
	shared.BaseAggregateRoot
	Type            JobType    `json:"type"`
	Status          JobStatus  `json:"status"`
	ProgressPercent int        `json:"progress_percent"`
	OutputPath      string     `json:"output_path"`
	OutputSizeBytes int64      `json:"output_size_bytes"`
	ErrorMessage    string     `json:"error_message"`
	StartedAt       *time.Time `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at"`
}

// NewJob creates a pending job
func NewJob(jobType JobType) (*Job, error) {
	if !jobType.IsValid() {
		return nil, shared.NewValidationError("Invalid job data", map[string]string{
			"type": "job type must be BACKUP or RESTORE",
		})
	}

	return &Job{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              jobType,
		Status:            JobStatusPending,
	}, nil
}

// Start moves a pending job to running
func (j *Job) Start() error {
	if j.Status != JobStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending jobs can start")
	}

	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()
	return nil
}

// SetProgress updates the progress percentage of a running job
func (j *Job) SetProgress(percent int) error {
	if j.Status != JobStatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Only running jobs report progress")
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	j.ProgressPercent = percent
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	return nil
}

// Complete finishes a running job with its output artifact
func (j *Job) Complete(outputPath string, sizeBytes int64) error {
	if j.Status != JobStatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Only running jobs can complete")
	}

	now := time.Now()
	j.Status = JobStatusCompleted
	j.ProgressPercent = 100
	j.OutputPath = outputPath
	j.OutputSizeBytes = sizeBytes
	j.FinishedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()
	return nil
}

// Fail finishes a running (or stuck pending) job with an error message
func (j *Job) Fail(message string) error {
	if j.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Job is already finished")
	}

	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = message
	j.FinishedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()
	return nil
}
