package entities

// CheckName identifies one independent check of a run.
type CheckName string

const (
	CheckFilesExist        CheckName = "files_exist"
	CheckTranslationParity CheckName = "translation_parity"
	CheckMarkupReferences  CheckName = "markup_references"
	CheckRequiredElements  CheckName = "required_elements"
)

// CheckResult is the outcome of a single check. Err is nil when it passed.
type CheckResult struct {
	Name             CheckName
	Err              error
	MissingFiles     []string
	MissingLanguages []string
	Discrepancies    []Discrepancy
	Dangling         []MarkupReference
	MissingMarkers   []string
}

func (r CheckResult) Passed() bool { return r.Err == nil }

// Report collects the results of a run, in execution order.
type Report struct {
	SiteDir      string
	Source       string
	BaseLanguage string
	Languages    []string
	Checks       []CheckResult
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed() {
			return false
		}
	}
	return true
}

// Failed returns the failed checks.
func (r *Report) Failed() []CheckResult {
	var out []CheckResult
	for _, c := range r.Checks {
		if !c.Passed() {
			out = append(out, c)
		}
	}
	return out
}

// Check returns the result named name.
func (r *Report) Check(name CheckName) (CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}
