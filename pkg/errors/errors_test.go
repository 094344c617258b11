package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorWrapsUnknown(t *testing.T) {
	err := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestCloneMatchesTemplate(t *testing.T) {
	err := fmt.Errorf("query users: %w", Clone(ErrGateway, "session terminated"))
	assert.True(t, errors.Is(err, ErrGateway))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "session terminated", FromError(err).Message)
}

func TestInvalidCarriesField(t *testing.T) {
	err := Invalid("sort", "incorrect value")
	assert.Equal(t, "sort", err.Field)
	assert.True(t, errors.Is(err, ErrValidation))
}
