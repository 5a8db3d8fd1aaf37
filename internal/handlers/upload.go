package handlers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/utkarsh/ngo-portal/backend/internal/config"
	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"github.com/utkarsh/ngo-portal/backend/internal/services"
	"github.com/utkarsh/ngo-portal/backend/pkg/response"
	"gorm.io/gorm"
)

type UploadHandler struct {
	jobService *services.JobService
	queue      services.TaskQueue
	maxBytes   int64
}

func NewUploadHandler(db *gorm.DB, queue services.TaskQueue, uploadCfg *config.UploadConfig) *UploadHandler {
	return &UploadHandler{
		jobService: services.NewJobService(db),
		queue:      queue,
		maxBytes:   uploadCfg.MaxUploadBytes(),
	}
}

func acceptedUploadFile(filename, contentType string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	switch contentType {
	case "text/csv", "application/csv",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return true
	}
	return false
}

// Upload accepts a bulk report file and returns a job id immediately; the
// pipeline runs detached and the client polls for the outcome.
// POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("csvFile")
	if err != nil {
		response.BadRequest(c, "No CSV file uploaded")
		return
	}

	if fileHeader.Size > h.maxBytes {
		response.BadRequest(c, fmt.Sprintf("File too large: limit is %d MB", h.maxBytes>>20))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !acceptedUploadFile(fileHeader.Filename, contentType) {
		response.BadRequest(c, "Only CSV and XLSX files are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		response.ServerError(c, "Failed to read uploaded file")
		return
	}
	if int64(len(data)) > h.maxBytes {
		response.BadRequest(c, fmt.Sprintf("File too large: limit is %d MB", h.maxBytes>>20))
		return
	}

	job, err := h.jobService.Create()
	if err != nil {
		response.ServerError(c, "Failed to create processing job")
		return
	}

	task := services.IngestTask{
		JobID:    job.ID,
		FileName: fileHeader.Filename,
		Data:     data,
	}
	if err := h.queue.Enqueue(&task); err != nil {
		response.ServerError(c, "Failed to queue file for processing")
		return
	}

	response.Accepted(c, "Upload accepted for processing", gin.H{
		"jobId":  job.ID,
		"status": job.Status,
	})
}

// GetJobStatus reports the lifecycle of one ingestion job. Clients poll
// this until the status is terminal.
// GET /api/upload/job-status/:jobId
func (h *UploadHandler) GetJobStatus(c *gin.Context) {
	job, err := h.jobService.Get(c.Param("jobId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Job not found")
			return
		}
		response.ServerError(c, "Failed to retrieve job status")
		return
	}

	response.Success(c, "Job status retrieved successfully", gin.H{
		"jobId":         job.ID,
		"status":        job.Status,
		"progress":      job.Progress,
		"totalRows":     job.TotalRows,
		"processedRows": job.ProcessedRows,
		"errorMessage":  job.ErrorMessage,
	})
}

// ListJobs returns all ingestion jobs, newest first.
// GET /api/upload/jobs
func (h *UploadHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobService.List()
	if err != nil {
		response.ServerError(c, "Failed to retrieve jobs")
		return
	}

	if jobs == nil {
		jobs = []models.Job{}
	}
	response.Success(c, "Jobs retrieved successfully", jobs)
}
