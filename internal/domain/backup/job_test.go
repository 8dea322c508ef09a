package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_HappyPath(t *testing.T) {
	j, err := NewJob(JobTypeBackup)
	require.NoError(t, err)
	assert.Equal(t, JobStatusPending, j.Status)

	require.NoError(t, j.Start())
	assert.Equal(t, JobStatusRunning, j.Status)
	require.NotNil(t, j.StartedAt)

	require.NoError(t, j.SetProgress(40))
	assert.Equal(t, 40, j.ProgressPercent)

	require.NoError(t, j.Complete("backups/2026-08-28.tar.gz", 1<<20))
	assert.Equal(t, JobStatusCompleted, j.Status)
	assert.Equal(t, 100, j.ProgressPercent)
	require.NotNil(t, j.FinishedAt)
}

func TestJob_FailurePath(t *testing.T) {
	j, err := NewJob(JobTypeRestore)
	require.NoError(t, err)
	require.NoError(t, j.Start())

	require.NoError(t, j.Fail("pg_restore exited with status 1"))
	assert.Equal(t, JobStatusFailed, j.Status)
	assert.Equal(t, "pg_restore exited with status 1", j.ErrorMessage)

	// Terminal: no further transitions.
	assert.Error(t, j.Start())
	assert.Error(t, j.Complete("x", 1))
	assert.Error(t, j.Fail("again"))
}

func TestJob_IllegalTransitions(t *testing.T) {
	j, err := NewJob(JobTypeBackup)
	require.NoError(t, err)

	assert.Error(t, j.Complete("x", 1)) // pending cannot complete
	assert.Error(t, j.SetProgress(10))  // pending reports no progress

	require.NoError(t, j.Start())
	assert.Error(t, j.Start()) // running cannot restart
}

func TestJob_ProgressClamped(t *testing.T) {
	j, err := NewJob(JobTypeBackup)
	require.NoError(t, err)
	require.NoError(t, j.Start())

	require.NoError(t, j.SetProgress(-5))
	assert.Equal(t, 0, j.ProgressPercent)
	require.NoError(t, j.SetProgress(150))
	assert.Equal(t, 100, j.ProgressPercent)
}

func TestNewJob_RejectsUnknownType(t *testing.T) {
	_, err := NewJob(JobType("SNAPSHOT"))
	assert.Error(t, err)
}
