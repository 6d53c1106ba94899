package review

import (
	"context"
	"errors"
	"time"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/checklist"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/jobModel"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/reviewModel"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/metrics"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/audit"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/embedding"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/ingest"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/llm"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/vectorDB"
	"github.com/2CentsCapitalHR/adgm-review-api/pkg/logger_i"
)

// Service is the public contract the worker calls. The private struct
// behind it holds the external collaborators (vector index, reviewer
// model, embedder) so the worker never touches them directly, and tests
// swap them for mocks through the constructor.
type Service interface {
	ProcessReview(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		logger:      logger_i.NewLogger("Review Service :"),
	}
}

// ProcessReview runs one review job end to end: build the reference index
// once, then extract -> classify -> retrieve -> review -> annotate each
// candidate strictly in upload order, then aggregate. A candidate whose
// pipeline fails is recorded in the report and skipped; the run keeps
// going. Only preconditions and the reference ingest fail the whole job.
func (s *service) ProcessReview(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("review_run", time.Since(start)) }()

	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, config.ReviewJobTimeout)
	defer cancel()

	payload := jobt.JobPayload
	if len(payload.ReferenceFiles) == 0 || len(payload.CandidateFiles) == 0 {
		return s.jobError(jobt, errors.New("reference and candidate uploads are both required"), "MISSING_UPLOADS", false)
	}

	required, ok := checklist.Required(payload.Process)
	if !ok {
		return s.jobError(jobt, errors.New("unknown process: "+payload.Process), "UNKNOWN_PROCESS", false)
	}

	// Reference index: built exactly once, shared by every candidate.
	collectionName := config.ReferenceCollectionPrefix + jobt.Id
	if err := s.executeIngestStep(processContext, inMethodLogger, &jobt, collectionName); err != nil {
		return s.jobError(jobt, err, "INGESTION_FAILURE", true)
	}
	defer s.dropCollection(collectionName, inMethodLogger)

	outDir, err := reviewedDir(jobt.Id)
	if err != nil {
		return s.jobError(jobt, err, "STORAGE_FAILURE", true)
	}

	report := reviewModel.AggregateReport{
		Process:           payload.Process,
		DocumentsUploaded: len(payload.CandidateFiles),
		RequiredDocuments: len(required),
		IssuesFound:       []reviewModel.IssueEntry{},
	}

	var detected []string
	var reviewedFiles []reviewModel.AnnotatedFile

	for _, candidate := range payload.CandidateFiles {
		if processContext.Err() != nil {
			return s.jobError(jobt, processContext.Err(), "RUN_TIMEOUT", true)
		}

		outcome := s.reviewCandidate(processContext, inMethodLogger, &jobt, collectionName, candidate, outDir)
		if outcome.failure != nil {
			inMethodLogger.Warn("Candidate failed, continuing run", "document", candidate.Name, "stage", outcome.failure.Stage)
			report.DocumentErrors = append(report.DocumentErrors, *outcome.failure)
			continue
		}

		detected = append(detected, outcome.docType)
		for _, issue := range outcome.result.Issues {
			report.IssuesFound = append(report.IssuesFound, reviewModel.IssueEntry{
				Document:   outcome.docType,
				Section:    issue.Section,
				Issue:      issue.Issue,
				Severity:   issue.Severity,
				Suggestion: issue.Suggestion,
			})
		}
		reviewedFiles = append(reviewedFiles, outcome.annotated)
	}

	jobt.CurrentStep = jobModel.Aggregating
	if missing, absent := audit.FirstMissing(detected, required); absent {
		report.MissingDocument = &missing
	}

	jobt.JobPayload.Report = &report
	jobt.JobPayload.ReviewedFiles = reviewedFiles
	jobt.CurrentStep = jobModel.Complete

	inMethodLogger.Info("Review run complete",
		"documents", report.DocumentsUploaded,
		"issues", len(report.IssuesFound),
		"failed_documents", len(report.DocumentErrors),
	)
	return jobt
}

func (s *service) executeIngestStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, collectionName string) error {
	*job = logOutput(*job, jobModel.Ingesting, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("reference_ingestion", time.Since(start)) }()

	return ingest.BuildReferenceIndex(ctx, collectionName, job.JobPayload.ReferenceFiles, s.embedder, s.vectorDB)
}

// dropCollection is best effort cleanup; the run context may already be
// dead, so deletion gets its own deadline.
func (s *service) dropCollection(collectionName string, log *logger_i.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), config.QdrantConnectionTimeout)
	defer cancel()
	if err := s.vectorDB.DeleteCollection(ctx, collectionName); err != nil {
		log.Error("Failed to drop run collection", "collection", collectionName, "error", err)
	}
}
