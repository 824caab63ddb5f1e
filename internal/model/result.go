package model

// Severity grades a violation. Only errors make a result invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation is a single broken business rule.
type Violation struct {
	Code        string   `json:"code"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	InvolvedIDs []string `json:"involved_ids"`
}

// ValidationResult is returned by every validator.
type ValidationResult struct {
	IsValid    bool        `json:"is_valid"`
	Violations []Violation `json:"violations"`
}

// NewValidationResult derives IsValid from the given violations.
func NewValidationResult(violations ...Violation) ValidationResult {
	if violations == nil {
		violations = []Violation{}
	}
	return ValidationResult{
		IsValid:    !hasError(violations),
		Violations: violations,
	}
}

// MergeResults concatenates the violations of all results and re-derives validity.
func MergeResults(results ...ValidationResult) ValidationResult {
	merged := []Violation{}
	for _, r := range results {
		merged = append(merged, r.Violations...)
	}
	return NewValidationResult(merged...)
}

// Errors returns only the error-severity violations.
func (r ValidationResult) Errors() []Violation {
	return r.filter(SeverityError)
}

// Warnings returns only the warning-severity violations.
func (r ValidationResult) Warnings() []Violation {
	return r.filter(SeverityWarning)
}

// HasCode reports whether any violation carries the given rule code.
func (r ValidationResult) HasCode(code string) bool {
	for _, v := range r.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func (r ValidationResult) filter(s Severity) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == s {
			out = append(out, v)
		}
	}
	return out
}

func hasError(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}
