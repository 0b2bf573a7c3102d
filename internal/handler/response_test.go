package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"assurdoc/internal/domain"
	"assurdoc/internal/handler"
	"assurdoc/internal/queue"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no documents", domain.ErrNoDocuments, http.StatusBadRequest, "NO_DOCUMENTS"},
		{"analysis not found", domain.ErrAnalysisNotFound, http.StatusNotFound, "ANALYSIS_NOT_FOUND"},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
		{"insurer not found", domain.ErrInsurerNotFound, http.StatusNotFound, "INSURER_NOT_FOUND"},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
		{"invalid avis filter", domain.ErrInvalidAvisFilter, http.StatusBadRequest, "INVALID_AVIS_FILTER"},
		{"file too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"unsupported file type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"queue full", queue.ErrQueueFull, http.StatusServiceUnavailable, "QUEUE_FULL"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_WrappedErrorsStillMatch(t *testing.T) {
	wrapped := errors.Join(errors.New("scan.txt"), domain.ErrFileTooLarge)
	status, code, _ := handler.MapDomainError(wrapped)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Equal(t, "FILE_TOO_LARGE", code)
}
