package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rcbc-digital/enquiry-mail/internal/errors"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccess(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, Success(c, map[string]string{"key": "value"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"key":"value"`)
}

func TestCreated(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, Created(c, map[string]int{"id": 1}))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBadRequest(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, BadRequest(c, "field is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "field is required")
	assert.Contains(t, rec.Body.String(), apperrors.CodeInvalidInput)
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, apperrors.CodeNotFound},
		{"invalid input", apperrors.ErrInvalidInput, http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"no sender address", apperrors.ErrNoSenderAddress, http.StatusUnprocessableEntity, apperrors.CodeNoSenderAddress},
		{"no active member", fmt.Errorf("%w with email address: a@b.com", apperrors.ErrNoActiveMember), http.StatusUnprocessableEntity, apperrors.CodeNoActiveMember},
		{"unsupported type", apperrors.ErrUnsupportedFileType, http.StatusBadRequest, apperrors.CodeUnsupportedType},
		{"file too large", apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, apperrors.CodeFileTooLarge},
		{"parsing", fmt.Errorf("%w: truncated", apperrors.ErrParsing), http.StatusUnprocessableEntity, apperrors.CodeParsingError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, apperrors.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext()

			require.NoError(t, Error(c, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestNotFound(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, NotFound(c, "enquiry not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "enquiry not found")
}

func TestInternalError(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, InternalError(c, "something broke"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeInternalError)
}
