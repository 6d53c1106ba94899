package review_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/checklist"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/jobModel"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review"
)

func writeCandidate(t *testing.T, dir string, name string, paragraphs ...string) jobModel.StoredFile {
	t.Helper()
	w := docx.New().WithDefaultTheme()
	for _, text := range paragraphs {
		w.AddParagraph().AddText(text)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("failed to build candidate docx: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return jobModel.StoredFile{Name: name, Path: path}
}

func writeReference(t *testing.T, dir string, name string, content string) jobModel.StoredFile {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return jobModel.StoredFile{Name: name, Path: path}
}

func newTestJob(t *testing.T, payload jobModel.JobPayload) jobModel.Job {
	t.Helper()
	t.Cleanup(func() { os.RemoveAll("temporary_data") })
	return jobModel.Job{
		Id:         "test-job",
		TraceId:    "test-trace",
		JobType:    jobModel.JobTypeReview,
		JobPayload: payload,
	}
}

func testContext() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func TestProcessReview_Success(t *testing.T) {
	dir := t.TempDir()
	refs := []jobModel.StoredFile{
		writeReference(t, dir, "adgm_guidance.txt", "Companies must appoint directors and keep registers."),
	}
	candidates := []jobModel.StoredFile{
		writeCandidate(t, dir, "aoa.docx",
			"ARTICLES OF ASSOCIATION",
			"Section 2: Directors and their duties",
		),
		writeCandidate(t, dir, "moa.docx",
			"MEMORANDUM OF ASSOCIATION",
			"The subscribers wish to form a company.",
		),
	}

	mVec := &MockVectorDB{}
	mLLM := &MockLLM{
		OnReview: func(ctx context.Context, instruction string) (string, error) {
			return `{"issues":[{"section":"Section 2","issue":"Duties incomplete","severity":"High","suggestion":"Align with ADGM regulations"}]}`, nil
		},
	}

	s := review.NewService(mVec, mLLM, &MockEmbedder{})
	job := newTestJob(t, jobModel.JobPayload{
		Process:        checklist.DefaultProcess,
		ReferenceFiles: refs,
		CandidateFiles: candidates,
	})

	result := s.ProcessReview(testContext(), job)

	if result.Status == jobModel.JobStatusError {
		t.Fatalf("run failed: %+v", result.Error)
	}
	if result.CurrentStep != jobModel.Complete {
		t.Errorf("CurrentStep = %v; want %v", result.CurrentStep, jobModel.Complete)
	}

	report := result.JobPayload.Report
	if report == nil {
		t.Fatal("report missing")
	}
	if report.Process != checklist.DefaultProcess {
		t.Errorf("Process = %q", report.Process)
	}
	if report.DocumentsUploaded != 2 || report.RequiredDocuments != 5 {
		t.Errorf("counts = %d uploaded, %d required", report.DocumentsUploaded, report.RequiredDocuments)
	}

	// Only the articles and the memorandum were submitted; the first
	// checklist entry not covered is the incorporation application.
	if report.MissingDocument == nil {
		t.Fatal("expected a missing document")
	}
	if *report.MissingDocument != checklist.IncorporationApplication {
		t.Errorf("MissingDocument = %q; want %q", *report.MissingDocument, checklist.IncorporationApplication)
	}

	// One issue per candidate, flattened in candidate order, each tagged
	// with its classified type.
	if len(report.IssuesFound) != 2 {
		t.Fatalf("got %d issues, want 2", len(report.IssuesFound))
	}
	if report.IssuesFound[0].Document != checklist.ArticlesOfAssociation {
		t.Errorf("first issue document = %q", report.IssuesFound[0].Document)
	}
	if report.IssuesFound[1].Document != checklist.MemorandumOfAssociation {
		t.Errorf("second issue document = %q", report.IssuesFound[1].Document)
	}
	if report.IssuesFound[0].Suggestion != "Align with ADGM regulations" {
		t.Errorf("issue suggestion = %q", report.IssuesFound[0].Suggestion)
	}

	if len(result.JobPayload.ReviewedFiles) != 2 {
		t.Fatalf("got %d reviewed files, want 2", len(result.JobPayload.ReviewedFiles))
	}
	for i, want := range []string{"reviewed_aoa.docx", "reviewed_moa.docx"} {
		file := result.JobPayload.ReviewedFiles[i]
		if file.Filename != want {
			t.Errorf("reviewed file %d = %q; want %q", i, file.Filename, want)
		}
		if _, err := os.Stat(file.Path); err != nil {
			t.Errorf("reviewed file not on disk: %v", err)
		}
	}

	// The run's collection must be dropped afterwards.
	wantCollection := config.ReferenceCollectionPrefix + job.Id
	dropped := false
	for _, name := range mVec.DeletedCollections {
		if name == wantCollection {
			dropped = true
		}
	}
	if !dropped {
		t.Errorf("collection %q was not dropped; deleted: %v", wantCollection, mVec.DeletedCollections)
	}
}

func TestProcessReview_AllRequiredPresent(t *testing.T) {
	dir := t.TempDir()
	refs := []jobModel.StoredFile{
		writeReference(t, dir, "ref.txt", "reference material"),
	}
	candidates := []jobModel.StoredFile{
		writeCandidate(t, dir, "aoa.docx", "ARTICLES OF ASSOCIATION"),
		writeCandidate(t, dir, "moa.docx", "MEMORANDUM OF ASSOCIATION"),
		writeCandidate(t, dir, "application.docx", "INCORPORATION APPLICATION"),
		writeCandidate(t, dir, "ubo.docx", "UBO DECLARATION"),
		writeCandidate(t, dir, "register.docx", "REGISTER OF MEMBERS"),
	}

	s := review.NewService(&MockVectorDB{}, &MockLLM{}, &MockEmbedder{})
	job := newTestJob(t, jobModel.JobPayload{
		Process:        checklist.DefaultProcess,
		ReferenceFiles: refs,
		CandidateFiles: candidates,
	})

	result := s.ProcessReview(testContext(), job)

	if result.Status == jobModel.JobStatusError {
		t.Fatalf("run failed: %+v", result.Error)
	}
	report := result.JobPayload.Report
	if report == nil {
		t.Fatal("report missing")
	}
	if report.MissingDocument != nil {
		t.Errorf("MissingDocument = %q; want none", *report.MissingDocument)
	}
	if len(report.DocumentErrors) != 0 {
		t.Errorf("unexpected document errors: %+v", report.DocumentErrors)
	}
}

func TestProcessReview_Preconditions(t *testing.T) {
	dir := t.TempDir()
	ref := writeReference(t, dir, "ref.txt", "reference")
	candidate := writeCandidate(t, dir, "aoa.docx", "ARTICLES OF ASSOCIATION")

	tests := []struct {
		name        string
		payload     jobModel.JobPayload
		expectedErr string
	}{
		{
			name: "No_References",
			payload: jobModel.JobPayload{
				Process:        checklist.DefaultProcess,
				CandidateFiles: []jobModel.StoredFile{candidate},
			},
			expectedErr: "MISSING_UPLOADS",
		},
		{
			name: "No_Candidates",
			payload: jobModel.JobPayload{
				Process:        checklist.DefaultProcess,
				ReferenceFiles: []jobModel.StoredFile{ref},
			},
			expectedErr: "MISSING_UPLOADS",
		},
		{
			name: "Unknown_Process",
			payload: jobModel.JobPayload{
				Process:        "Branch Registration",
				ReferenceFiles: []jobModel.StoredFile{ref},
				CandidateFiles: []jobModel.StoredFile{candidate},
			},
			expectedErr: "UNKNOWN_PROCESS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := review.NewService(&MockVectorDB{}, &MockLLM{}, &MockEmbedder{})
			result := s.ProcessReview(testContext(), newTestJob(t, tt.payload))

			if result.Status != jobModel.JobStatusError {
				t.Fatal("expected the run to fail")
			}
			if result.Error.Message != tt.expectedErr {
				t.Errorf("Error.Message = %q; want %q", result.Error.Message, tt.expectedErr)
			}
			if result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error.Code = %d", result.Error.Code)
			}
		})
	}
}

func TestProcessReview_IngestionFailure(t *testing.T) {
	dir := t.TempDir()
	refs := []jobModel.StoredFile{writeReference(t, dir, "ref.txt", "reference")}
	candidates := []jobModel.StoredFile{writeCandidate(t, dir, "aoa.docx", "ARTICLES OF ASSOCIATION")}

	mVec := &MockVectorDB{
		OnCreateCollection: func(ctx context.Context, name string) error {
			return errors.New("connection refused")
		},
	}

	s := review.NewService(mVec, &MockLLM{}, &MockEmbedder{})
	result := s.ProcessReview(testContext(), newTestJob(t, jobModel.JobPayload{
		Process:        checklist.DefaultProcess,
		ReferenceFiles: refs,
		CandidateFiles: candidates,
	}))

	if result.Status != jobModel.JobStatusError {
		t.Fatal("expected the run to fail")
	}
	if result.Error.Message != "INGESTION_FAILURE" {
		t.Errorf("Error.Message = %q", result.Error.Message)
	}
	if !result.Error.Retry {
		t.Error("ingest failures should be retryable")
	}
}

func TestProcessReview_DocumentIsolation(t *testing.T) {
	dir := t.TempDir()
	refs := []jobModel.StoredFile{writeReference(t, dir, "ref.txt", "reference")}

	brokenPath := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(brokenPath, []byte("not a docx"), 0644); err != nil {
		t.Fatal(err)
	}
	candidates := []jobModel.StoredFile{
		{Name: "broken.docx", Path: brokenPath},
		writeCandidate(t, dir, "aoa.docx", "ARTICLES OF ASSOCIATION"),
	}

	s := review.NewService(&MockVectorDB{}, &MockLLM{}, &MockEmbedder{})
	result := s.ProcessReview(testContext(), newTestJob(t, jobModel.JobPayload{
		Process:        checklist.DefaultProcess,
		ReferenceFiles: refs,
		CandidateFiles: candidates,
	}))

	if result.Status == jobModel.JobStatusError {
		t.Fatalf("one bad document must not fail the run: %+v", result.Error)
	}
	report := result.JobPayload.Report
	if report == nil {
		t.Fatal("report missing")
	}
	if len(report.DocumentErrors) != 1 {
		t.Fatalf("got %d document errors, want 1: %+v", len(report.DocumentErrors), report.DocumentErrors)
	}
	docErr := report.DocumentErrors[0]
	if docErr.Document != "broken.docx" || docErr.Stage != "extract" {
		t.Errorf("document error = %+v", docErr)
	}
	if len(result.JobPayload.ReviewedFiles) != 1 {
		t.Errorf("got %d reviewed files, want 1", len(result.JobPayload.ReviewedFiles))
	}
	if report.DocumentsUploaded != 2 {
		t.Errorf("DocumentsUploaded = %d; want 2", report.DocumentsUploaded)
	}
}

func TestProcessReview_ReviewerFailureIsolated(t *testing.T) {
	dir := t.TempDir()
	refs := []jobModel.StoredFile{writeReference(t, dir, "ref.txt", "reference")}
	candidates := []jobModel.StoredFile{
		writeCandidate(t, dir, "moa.docx", "MEMORANDUM OF ASSOCIATION"),
		writeCandidate(t, dir, "aoa.docx", "ARTICLES OF ASSOCIATION"),
	}

	mLLM := &MockLLM{
		OnReview: func(ctx context.Context, instruction string) (string, error) {
			if strings.Contains(instruction, "MEMORANDUM") {
				return "", errors.New("provider down")
			}
			return `{"issues":[]}`, nil
		},
	}

	s := review.NewService(&MockVectorDB{}, mLLM, &MockEmbedder{})
	result := s.ProcessReview(testContext(), newTestJob(t, jobModel.JobPayload{
		Process:        checklist.DefaultProcess,
		ReferenceFiles: refs,
		CandidateFiles: candidates,
	}))

	if result.Status == jobModel.JobStatusError {
		t.Fatalf("one reviewer failure must not fail the run: %+v", result.Error)
	}
	report := result.JobPayload.Report
	if len(report.DocumentErrors) != 1 {
		t.Fatalf("got %d document errors, want 1", len(report.DocumentErrors))
	}
	if report.DocumentErrors[0].Stage != "review" {
		t.Errorf("stage = %q; want review", report.DocumentErrors[0].Stage)
	}
	if len(result.JobPayload.ReviewedFiles) != 1 {
		t.Errorf("got %d reviewed files, want 1", len(result.JobPayload.ReviewedFiles))
	}
}

func TestProcessReview_UnparsableReviewerOutput(t *testing.T) {
	dir := t.TempDir()
	refs := []jobModel.StoredFile{writeReference(t, dir, "ref.txt", "reference")}
	candidates := []jobModel.StoredFile{
		writeCandidate(t, dir, "aoa.docx", "ARTICLES OF ASSOCIATION"),
	}

	mLLM := &MockLLM{
		OnReview: func(ctx context.Context, instruction string) (string, error) {
			return "The document looks fine to me.", nil
		},
	}

	s := review.NewService(&MockVectorDB{}, mLLM, &MockEmbedder{})
	result := s.ProcessReview(testContext(), newTestJob(t, jobModel.JobPayload{
		Process:        checklist.DefaultProcess,
		ReferenceFiles: refs,
		CandidateFiles: candidates,
	}))

	if result.Status == jobModel.JobStatusError {
		t.Fatalf("unparsable output must degrade, not fail: %+v", result.Error)
	}
	report := result.JobPayload.Report
	if len(report.IssuesFound) != 0 {
		t.Errorf("got %d issues, want 0", len(report.IssuesFound))
	}
	if len(report.DocumentErrors) != 0 {
		t.Errorf("unexpected document errors: %+v", report.DocumentErrors)
	}
	if len(result.JobPayload.ReviewedFiles) != 1 {
		t.Errorf("annotated copy should still be produced, got %d", len(result.JobPayload.ReviewedFiles))
	}
}
