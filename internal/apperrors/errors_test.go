package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("submit: %w", RemoteAnalysis("analysis service returned 502", nil))

	assert.True(t, errors.Is(err, ErrRemoteAnalysis))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, KindRemoteAnalysis, KindOf(err))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := RemoteAnalysis("analysis request failed", cause)

	assert.Equal(t, "analysis request failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindValidation))
}
