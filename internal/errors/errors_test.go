package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewError("bad input").WithHint("fix it").Mark(ErrValidation), http.StatusBadRequest},
		{"not found", NewError("missing").Mark(ErrNotFound), http.StatusNotFound},
		{"already exists", NewError("dup").Mark(ErrAlreadyExists), http.StatusConflict},
		{"database", WithError(errors.New("conn reset")).Mark(ErrDatabase), http.StatusInternalServerError},
		{"rate limited", NewError("slow down").Mark(ErrTooManyRequests), http.StatusTooManyRequests},
		{"unmarked", errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestBuilderKeepsHintsAndMarks(t *testing.T) {
	err := NewErrorf("student %s not found", "stu_1").
		WithHint("Student not found").
		WithReportableDetails(map[string]any{"student_id": "stu_1"}).
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, errors.GetAllHints(err), "Student not found")
	assert.Equal(t, "student stu_1 not found", err.Error())
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := WithError(errors.New("connection refused")).
		WithMessagef("bucket:%s", "invoices").
		WithHint("Failed to upload invoice").
		Mark(ErrHTTPClient)
	wrapped := fmt.Errorf("archive: %w", base)

	assert.True(t, Is(wrapped, ErrHTTPClient))
	assert.False(t, Is(wrapped, ErrDatabase))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromErr(wrapped))
	assert.Equal(t, []string{"Failed to upload invoice"}, errors.GetAllHints(wrapped))
	assert.Contains(t, wrapped.Error(), "bucket:invoices")
}

func TestKindsAreDistinct(t *testing.T) {
	kinds := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation, ErrInvalidOperation,
		ErrHTTPClient, ErrDatabase, ErrSystem, ErrTooManyRequests,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			assert.Equal(t, i == j, errors.Is(NewError("x").Mark(a), b), "%v vs %v", a, b)
		}
	}
	assert.Equal(t, "not_found: resource not found", ErrNotFound.Error())
}
