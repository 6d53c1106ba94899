package audit

// FirstMissing returns the first required document type, in the required
// set's declared order, that appears nowhere in the detected sequence.
// This is a presence check only: submitting one type twice never hides the
// absence of a different type, but it also does not flag over-submission.
func FirstMissing(detected []string, required []string) (string, bool) {
	seen := make(map[string]struct{}, len(detected))
	for _, label := range detected {
		seen[label] = struct{}{}
	}
	for _, label := range required {
		if _, ok := seen[label]; !ok {
			return label, true
		}
	}
	return "", false
}
