package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	cause := errors.New("connection refused")

	fetch := &FetchError{Variant: RAG, Err: cause}
	assert.Equal(t, "failed to load RAG Evaluation leaderboard: connection refused", fetch.Error())
	assert.ErrorIs(t, fetch, cause)

	submit := &SubmitError{Variant: Models, Err: cause}
	assert.Contains(t, submit.Error(), "Model Comparison")
	assert.ErrorIs(t, submit, cause)

	var wrapped error = &ValidationError{Variant: Models, Problems: []FieldProblem{
		{Field: "model", Reason: "required"},
		{Field: "bbh", Reason: "must be between 0 and 100"},
	}}
	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, []string{"model", "bbh"}, ve.Fields())
	assert.Equal(t, "invalid Model Comparison submission: model (required), bbh (must be between 0 and 100)", ve.Error())
}
