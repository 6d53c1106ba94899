package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/jobModel"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/job"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/metrics"
	"github.com/2CentsCapitalHR/adgm-review-api/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new review job")
	handlerInstance.pushToJobChannel(newJob)
	handlerInstance.logRun(newJob.id, newJob.traceId)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func GetRecentRuns(traceId string, limit int64) ([]string, error) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance == nil {
		return nil, nil
	}
	return handlerInstance.service.RunIndex.RecentRuns(ctxC, limit)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = jobModel.JobTypeReview
	_job.CurrentStep = jobModel.ReviewInit
	_job.JobPayload.Process = newJob.process
	_job.JobPayload.ReferenceFiles = newJob.referenceFiles
	_job.JobPayload.CandidateFiles = newJob.candidateFiles

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send so the system cannot be overwhelmed
	logJH.Info("Created new review job")

	//review runs batch-process external calls and can take a while, so
	//every run signals the dispatcher; idle workers retire on their own
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType == jobModel.JobTypeReview {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Request count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}

func (h *JobHandler) logRun(jobId string, traceId string) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if err := h.service.RunIndex.LogRun(ctxC, jobId); err != nil {
		logJH.Error("Error recording run in index", "jobId", jobId, "error", err)
	}
}
