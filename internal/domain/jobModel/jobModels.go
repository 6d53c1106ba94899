package jobModel

import (
	"context"
	"time"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/reviewModel"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	ReviewInit  InternalStatus = "Init"
	Ingesting   InternalStatus = "IngestingReferences"
	Extracting  InternalStatus = "Extracting"
	Classifying InternalStatus = "Classifying"
	Retrieving  InternalStatus = "Retrieving"
	Reviewing   InternalStatus = "LLMReview"
	Annotating  InternalStatus = "Annotating"
	Aggregating InternalStatus = "Aggregating"
	Error       InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeReview JobType = "Review"
)

// StoredFile is an uploaded file persisted to the temp directory for the
// worker to pick up.
type StoredFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Process        string       `json:"process"`
	ReferenceFiles []StoredFile `json:"reference_files,omitempty"`
	CandidateFiles []StoredFile `json:"candidate_files,omitempty"`

	//populated on completion
	Report        *reviewModel.AggregateReport `json:"report,omitempty"`
	ReviewedFiles []reviewModel.AnnotatedFile  `json:"reviewed_files,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// RunIndex keeps the ids of recent review runs so operators can list what
// the service has been asked to do lately.
type RunIndex interface {
	LogRun(ctx context.Context, jobId string) error
	RecentRuns(ctx context.Context, limit int64) ([]string, error)
}
