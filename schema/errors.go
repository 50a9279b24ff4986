package schema

import (
	"fmt"
	"strings"
)

// FetchError reports a failed read of a leaderboard table.
type FetchError struct {
	Variant Variant
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load %s leaderboard: %v", e.Variant.Title, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SubmitError reports a failed insert into a leaderboard table.
type SubmitError struct {
	Variant Variant
	Err     error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("failed to submit %s score: %v", e.Variant.Title, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// FieldProblem is one rejected field of a submission.
type FieldProblem struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every malformed field of a submission.
type ValidationError struct {
	Variant  Variant
	Problems []FieldProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = fmt.Sprintf("%s (%s)", p.Field, p.Reason)
	}
	return fmt.Sprintf("invalid %s submission: %s", e.Variant.Title, strings.Join(parts, ", "))
}

// Fields returns the offending field names in form order.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		out[i] = p.Field
	}
	return out
}
