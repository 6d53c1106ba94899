package worker

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	jobmodel "github.com/2CentsCapitalHR/adgm-review-api/internal/domain/jobModel"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.ReviewJobTimeout+30*time.Second)
	defer cancel()
	logger.With("trace Id ", job.TraceId)
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job = _reviewService.ProcessReview(ctx, job)
	cleanupUploads(job)

	job.EndTime = time.Now()
	if job.Status == jobmodel.JobStatusError {
		saveJobState(ctx, job, jobmodel.JobStatusError)
		return
	}
	saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

// cleanupUploads drops the raw uploads once the run has finished with
// them. Reviewed output files stay on disk for download.
func cleanupUploads(job jobmodel.Job) {
	for _, file := range append(job.JobPayload.ReferenceFiles, job.JobPayload.CandidateFiles...) {
		if err := os.Remove(file.Path); err != nil {
			logger.Warn("Failed to remove uploaded file", "path", file.Path, "err", err)
		}
	}
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
