package dto

import (
	"time"

	"github.com/akademika/sekolahku-api/internal/models"
)

// CreateReportRequest asks for a grade report export of one class.
type CreateReportRequest struct {
	ClassID string `json:"class_id" validate:"required"`
	Format  string `json:"format" validate:"required,oneof=csv pdf"`
}

// ReportJobResponse describes a job's state to the caller.
type ReportJobResponse struct {
	ID           string              `json:"id"`
	ClassID      string              `json:"class_id"`
	Format       models.ReportFormat `json:"format"`
	Status       models.ReportStatus `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	FinishedAt   *time.Time          `json:"finished_at,omitempty"`
	DownloadURL  string              `json:"download_url,omitempty"`
	ExpiresAt    *time.Time          `json:"expires_at,omitempty"`
}
