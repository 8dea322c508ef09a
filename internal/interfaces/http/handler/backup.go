package handler

import (
	"strconv"

	backupapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/backup"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BackupHandler handles backup and restore job API endpoints
type BackupHandler struct {
	BaseHandler
	backupService *backupapp.Service
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService *backupapp.Service) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// StartBackup launches a backup job and returns it in PENDING state
func (h *BackupHandler) StartBackup(c *gin.Context) {
	job, err := h.backupService.StartBackup(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, job)
}

// StartRestore launches a restore job from a completed backup or an uploaded
// archive. Admin only.
func (h *BackupHandler) StartRestore(c *gin.Context) {
	var req backupapp.StartRestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	job, err := h.backupService.StartRestore(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, job)
}

// UploadArchive stores an externally produced archive for a later restore.
// Multipart form with a single "file" field.
func (h *BackupHandler) UploadArchive(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	resp, err := h.backupService.UploadArchive(c.Request.Context(), backupapp.ArchiveUpload{
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
		Body:     file,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListJobs returns the most recent jobs, newest first
func (h *BackupHandler) ListJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	jobs, err := h.backupService.ListJobs(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jobs)
}

// GetJob retrieves one job by ID; the UI polls this while a job runs
func (h *BackupHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID format")
		return
	}

	job, err := h.backupService.GetJob(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// Download returns a presigned URL for a completed backup's archive
func (h *BackupHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID format")
		return
	}

	url, err := h.backupService.DownloadURL(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"url": url})
}
