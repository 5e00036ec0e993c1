package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindDetection(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidation(Validation("bad input")))
	assert.True(t, IsDuplicate(Duplicate("login taken")))
	assert.True(t, IsNotFound(NotFound("no such film")))

	assert.False(t, IsNotFound(Validation("bad input")))
	assert.False(t, IsValidation(errors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("update film: %w", NotFound("film with id = %d not found", 7))
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "film with id = 7 not found")
}
