// Package backup executes database backup and restore jobs with pg_dump and
// pg_restore, archiving the dumps in object storage.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	domainbackup "github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/backup"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/config"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/storage"
	"go.uber.org/zap"
)

const archivePrefix = "backups/"

// Runner executes one backup or restore job at a time. The application
// service persists a pending job, then launches Run* on a goroutine; the UI
// polls job status through the repository.
type Runner struct {
	jobs   domainbackup.Repository
	store  storage.ObjectStorage
	dbCfg  *config.DatabaseConfig
	cfg    *config.BackupConfig
	logger *zap.Logger
}

// NewRunner creates a backup runner
func NewRunner(
	jobs domainbackup.Repository,
	store storage.ObjectStorage,
	dbCfg *config.DatabaseConfig,
	cfg *config.BackupConfig,
	logger *zap.Logger,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{jobs: jobs, store: store, dbCfg: dbCfg, cfg: cfg, logger: logger}
}

// ArchiveKey returns the object storage key for a job's archive
func ArchiveKey(job *domainbackup.Job) string {
	return archivePrefix + job.ID.String() + ".dump"
}

// FailStale marks jobs left pending or running by a previous process as
// failed. Called once on boot; their worker goroutines are gone.
func (r *Runner) FailStale(ctx context.Context) error {
	stale, err := r.jobs.FindRunning(ctx)
	if err != nil {
		return err
	}

	for i := range stale {
		job := &stale[i]
		if err := job.Fail("interrupted by process restart"); err != nil {
			continue
		}
		if err := r.jobs.Save(ctx, job); err != nil {
			return err
		}
		r.logger.Warn("failed stale backup job", zap.String("job_id", job.ID.String()))
	}
	return nil
}

// RunBackup executes a pending backup job to completion. Blocking; callers
// run it on a goroutine.
func (r *Runner) RunBackup(ctx context.Context, job *domainbackup.Job) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.JobTimeout)
	defer cancel()

	if err := r.start(ctx, job); err != nil {
		return
	}

	if err := os.MkdirAll(r.cfg.WorkDir, 0o750); err != nil {
		r.fail(job, fmt.Errorf("failed to create work dir: %w", err))
		return
	}

	dumpPath := filepath.Join(r.cfg.WorkDir, job.ID.String()+".dump")
	if !r.cfg.KeepLocal {
		defer os.Remove(dumpPath)
	}

	if err := r.runCommand(ctx,
		r.cfg.PgDumpPath,
		"--format=custom",
		"--no-owner",
		"--host", r.dbCfg.Host,
		"--port", strconv.Itoa(r.dbCfg.Port),
		"--username", r.dbCfg.User,
		"--dbname", r.dbCfg.DBName,
		"--file", dumpPath,
	); err != nil {
		r.fail(job, err)
		return
	}
	r.progress(ctx, job, 60)

	info, err := os.Stat(dumpPath)
	if err != nil {
		r.fail(job, fmt.Errorf("dump file missing: %w", err))
		return
	}

	f, err := os.Open(dumpPath)
	if err != nil {
		r.fail(job, fmt.Errorf("failed to open dump file: %w", err))
		return
	}
	defer f.Close()

	key := ArchiveKey(job)
	if err := r.store.Upload(ctx, key, f, "application/octet-stream"); err != nil {
		r.fail(job, fmt.Errorf("failed to upload archive: %w", err))
		return
	}
	r.progress(ctx, job, 95)

	if err := job.Complete(key, info.Size()); err != nil {
		r.fail(job, err)
		return
	}
	if err := r.jobs.Save(ctx, job); err != nil {
		r.logger.Error("failed to persist completed backup job",
			zap.String("job_id", job.ID.String()), zap.Error(err))
		return
	}

	r.logger.Info("backup completed",
		zap.String("job_id", job.ID.String()),
		zap.String("archive", key),
		zap.Int64("size_bytes", info.Size()))
}

// RunRestore executes a pending restore job against the archive stored under
// archiveKey. Blocking; callers run it on a goroutine.
func (r *Runner) RunRestore(ctx context.Context, job *domainbackup.Job, archiveKey string) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.JobTimeout)
	defer cancel()

	if err := r.start(ctx, job); err != nil {
		return
	}

	if err := os.MkdirAll(r.cfg.WorkDir, 0o750); err != nil {
		r.fail(job, fmt.Errorf("failed to create work dir: %w", err))
		return
	}

	body, size, err := r.store.Download(ctx, archiveKey)
	if err != nil {
		r.fail(job, fmt.Errorf("failed to download archive: %w", err))
		return
	}
	defer body.Close()

	dumpPath := filepath.Join(r.cfg.WorkDir, job.ID.String()+".dump")
	defer os.Remove(dumpPath)

	f, err := os.Create(dumpPath)
	if err != nil {
		r.fail(job, fmt.Errorf("failed to create local archive: %w", err))
		return
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		r.fail(job, fmt.Errorf("failed to write local archive: %w", err))
		return
	}
	f.Close()
	r.progress(ctx, job, 40)

	if err := r.runCommand(ctx,
		r.cfg.PgRestorePath,
		"--clean",
		"--if-exists",
		"--no-owner",
		"--host", r.dbCfg.Host,
		"--port", strconv.Itoa(r.dbCfg.Port),
		"--username", r.dbCfg.User,
		"--dbname", r.dbCfg.DBName,
		dumpPath,
	); err != nil {
		r.fail(job, err)
		return
	}
	r.progress(ctx, job, 95)

	if err := job.Complete(archiveKey, size); err != nil {
		r.fail(job, err)
		return
	}
	if err := r.jobs.Save(ctx, job); err != nil {
		r.logger.Error("failed to persist completed restore job",
			zap.String("job_id", job.ID.String()), zap.Error(err))
		return
	}

	r.logger.Info("restore completed",
		zap.String("job_id", job.ID.String()),
		zap.String("archive", archiveKey))
}

func (r *Runner) start(ctx context.Context, job *domainbackup.Job) error {
	if err := job.Start(); err != nil {
		r.logger.Error("job cannot start",
			zap.String("job_id", job.ID.String()), zap.Error(err))
		return err
	}
	if err := r.jobs.Save(ctx, job); err != nil {
		r.logger.Error("failed to persist running job",
			zap.String("job_id", job.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (r *Runner) progress(ctx context.Context, job *domainbackup.Job, percent int) {
	if err := job.SetProgress(percent); err != nil {
		return
	}
	if err := r.jobs.Save(ctx, job); err != nil {
		r.logger.Warn("failed to persist job progress",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}

func (r *Runner) fail(job *domainbackup.Job, cause error) {
	r.logger.Error("backup job failed",
		zap.String("job_id", job.ID.String()),
		zap.String("type", string(job.Type)),
		zap.Error(cause))

	if err := job.Fail(cause.Error()); err != nil {
		return
	}
	// Best-effort save with a fresh context; the job context may be the
	// reason we are failing.
	if err := r.jobs.Save(context.Background(), job); err != nil {
		r.logger.Error("failed to persist failed job",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}

func (r *Runner) runCommand(ctx context.Context, binary string, args ...string) error {
	path, err := exec.LookPath(binary)
	if err != nil {
		return fmt.Errorf("%s not found: %w", binary, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+r.dbCfg.Password)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s timed out after %v", binary, r.cfg.JobTimeout)
		}
		msg := stderr.String()
		if len(msg) > 500 {
			msg = msg[len(msg)-500:]
		}
		return fmt.Errorf("%s failed: %s", binary, msg)
	}
	return nil
}
