package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughWrappedDomainError(t *testing.T) {
	base := NewNotFound("Contact")
	wrapped := fmt.Errorf("lookup: %w", base)

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, "Contact not found", de.Message)
}

func TestToDomainError_UnknownErrorBecomesInternal(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	require.NotNil(t, de)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "Internal server error", de.Message)
	assert.EqualError(t, de.Err, "boom")
}

func TestToDomainError_SQLNoRowsIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(sql.ErrNoRows))
	assert.Nil(t, ToDomainError(nil))
}

func TestNewValidationError_CarriesViolations(t *testing.T) {
	err := NewValidationError("Validation failed", []FieldViolation{{Field: "name", Reason: "too short"}})
	de := ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Len(t, de.Violations, 1)
}

func TestNewPersistenceError_HidesCause(t *testing.T) {
	cause := errors.New("duplicate key")
	de := ToDomainError(NewPersistenceError(cause))
	assert.Equal(t, "Internal server error", de.Message)
	assert.ErrorIs(t, de, cause)
}
