package review

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"context"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/jobModel"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/reviewModel"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/metrics"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/annotate"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/classify"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/extract"
	"github.com/2CentsCapitalHR/adgm-review-api/pkg/logger_i"
)

// candidateOutcome is one candidate's pipeline result: either a failure to
// record in the report, or the classified type, parsed issues and the
// annotated output file.
type candidateOutcome struct {
	docType   string
	result    reviewModel.ReviewResult
	annotated reviewModel.AnnotatedFile
	failure   *reviewModel.DocumentError
}

func (s *service) reviewCandidate(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, collectionName string, candidate jobModel.StoredFile, outDir string) candidateOutcome {
	raw, err := os.ReadFile(candidate.Path)
	if err != nil {
		return docFailure(candidate.Name, "extract", err)
	}

	// Extraction
	text, err := s.executeExtractStep(log, job, raw)
	if err != nil {
		return docFailure(candidate.Name, "extract", err)
	}

	// Classification - pure, cannot fail
	*job = logOutput(*job, jobModel.Classifying, log)
	docType := classify.Classify(text)

	// Retrieval against the shared reference collection
	matches, err := s.executeRetrieveStep(ctx, log, job, collectionName, text)
	if err != nil {
		return docFailure(candidate.Name, "retrieve", err)
	}

	// Reviewer call plus defensive parse; unparsable output degrades to
	// zero issues inside parseReviewResponse and is never a failure here
	result, err := s.executeReviewStep(ctx, log, job, docType, text, matches)
	if err != nil {
		return docFailure(candidate.Name, "review", err)
	}

	// Annotation works on the untouched original bytes
	annotated, err := s.executeAnnotateStep(log, job, raw, result, candidate.Name, outDir)
	if err != nil {
		return docFailure(candidate.Name, "annotate", err)
	}

	return candidateOutcome{docType: docType, result: result, annotated: annotated}
}

func (s *service) executeExtractStep(log *logger_i.Logger, job *jobModel.Job, raw []byte) (string, error) {
	*job = logOutput(*job, jobModel.Extracting, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extract", time.Since(start)) }()

	return extract.Text(raw)
}

func (s *service) executeRetrieveStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, collectionName string, text string) ([]string, error) {
	*job = logOutput(*job, jobModel.Retrieving, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	emb, err := s.embedder.GetEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.vectorDB.Search(ctx, collectionName, emb, uint64(config.RetrievalTopK))
}

func (s *service) executeReviewStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, docType string, text string, matches []string) (reviewModel.ReviewResult, error) {
	*job = logOutput(*job, jobModel.Reviewing, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_review", time.Since(start)) }()

	response, err := s.llmProvider.Review(ctx, buildReviewInstruction(docType, text, matches))
	if err != nil {
		return reviewModel.ReviewResult{}, err
	}
	return parseReviewResponse(docType, response), nil
}

func (s *service) executeAnnotateStep(log *logger_i.Logger, job *jobModel.Job, raw []byte, result reviewModel.ReviewResult, filename string, outDir string) (reviewModel.AnnotatedFile, error) {
	*job = logOutput(*job, jobModel.Annotating, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("annotate", time.Since(start)) }()

	annotated, err := annotate.Apply(raw, result)
	if err != nil {
		return reviewModel.AnnotatedFile{}, err
	}

	outName := config.ReviewedFilePrefix + filename
	outPath := filepath.Join(outDir, outName)
	if err := os.WriteFile(outPath, annotated, 0640); err != nil {
		return reviewModel.AnnotatedFile{}, err
	}
	return reviewModel.AnnotatedFile{Filename: outName, Path: outPath}, nil
}

func docFailure(document string, stage string, err error) candidateOutcome {
	return candidateOutcome{failure: &reviewModel.DocumentError{
		Document: document,
		Stage:    stage,
		Message:  err.Error(),
	}}
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessReview", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

func reviewedDir(jobId string) (string, error) {
	root, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "temporary_data", "reviewed", jobId)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
