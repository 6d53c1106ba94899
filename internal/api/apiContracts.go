package api

import (
	"time"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/reviewModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// ReviewedFile points the caller at one annotated document download.
type ReviewedFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type Result struct {
	Status        string                       `json:"status"`
	Report        *reviewModel.AggregateReport `json:"report,omitempty"`
	ReviewedFiles []ReviewedFile               `json:"reviewed_files,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type RecentRunsResponse struct {
	Runs []string `json:"runs"`
}
