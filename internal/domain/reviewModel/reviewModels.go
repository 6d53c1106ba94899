package reviewModel

// Issue is one flagged concern as returned by the reviewer. Every field is
// optional - the reviewer is a language model and nothing about its output
// shape can be assumed.
type Issue struct {
	Section    string `json:"section"`
	Issue      string `json:"issue"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion"`
}

// ReviewResult is the parsed reviewer output for one candidate document.
type ReviewResult struct {
	Document string  `json:"document"`
	Issues   []Issue `json:"issues"`
}

// IssueEntry is an Issue tagged with the classified type of the document it
// came from, flattened into the aggregate report.
type IssueEntry struct {
	Document   string `json:"document"`
	Section    string `json:"section"`
	Issue      string `json:"issue"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion"`
}

// DocumentError records a candidate document whose pipeline failed. The run
// continues past it; the report carries the failure instead of the whole job
// aborting.
type DocumentError struct {
	Document string `json:"document"`
	Stage    string `json:"stage"`
	Message  string `json:"message"`
}

// AggregateReport is the final output of one review run.
type AggregateReport struct {
	Process           string          `json:"process"`
	DocumentsUploaded int             `json:"documents_uploaded"`
	RequiredDocuments int             `json:"required_documents"`
	MissingDocument   *string         `json:"missing_document"`
	IssuesFound       []IssueEntry    `json:"issues_found"`
	DocumentErrors    []DocumentError `json:"document_errors,omitempty"`
}

// ExtractedDocument pairs a candidate's untouched original bytes with the
// text pulled out of them. Annotation re-parses Raw; Text is never mutated
// after extraction.
type ExtractedDocument struct {
	Name    string
	Raw     []byte
	Text    string
	DocType string
}

// AnnotatedFile points at an annotated copy written to disk.
type AnnotatedFile struct {
	Filename string `json:"filename"`
	Path     string `json:"-"`
}
