package checklist

// UnknownDocumentType is returned by the classifier when no keyword matches.
const UnknownDocumentType = "Unknown Document Type"

const DefaultProcess = "Company Incorporation"

// Document type labels. The classifier, the checklists and the auditor all
// draw from this one set - a label spelled differently in any of them would
// silently never match.
const (
	ArticlesOfAssociation     = "Articles of Association"
	MemorandumOfAssociation   = "Memorandum of Association"
	IncorporationApplication  = "Incorporation Application Form"
	UBODeclaration            = "UBO Declaration Form"
	RegisterMembersDirectors  = "Register of Members and Directors"
)

type KeywordEntry struct {
	Label    string
	Keywords []string
}

// DocTypeKeywords maps a document type to the lowercase substrings that
// identify it. Declaration order is the classifier tie-break: the first
// entry whose keywords match wins.
var DocTypeKeywords = []KeywordEntry{
	{ArticlesOfAssociation, []string{"articles of association", "aoa", "articles"}},
	{MemorandumOfAssociation, []string{"memorandum of association", "moa", "memorandum"}},
	{IncorporationApplication, []string{"incorporation application"}},
	{UBODeclaration, []string{"ubo declaration"}},
	{RegisterMembersDirectors, []string{"register of members", "register of directors"}},
}

// Checklists maps a process name to its required document types, in the
// order the auditor reports them missing.
var Checklists = map[string][]string{
	DefaultProcess: {
		ArticlesOfAssociation,
		MemorandumOfAssociation,
		IncorporationApplication,
		UBODeclaration,
		RegisterMembersDirectors,
	},
}

func Required(process string) ([]string, bool) {
	required, ok := Checklists[process]
	return required, ok
}
