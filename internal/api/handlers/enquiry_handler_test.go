package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcbc-digital/enquiry-mail/internal/models"
	"github.com/rcbc-digital/enquiry-mail/internal/repository"
)

func TestEnquiryHandler_Get(t *testing.T) {
	db := newHandlerTestDB(t)
	require.NoError(t, db.Create(&models.Member{FullName: "John Smith", Email: "john@example.com", IsActive: true}).Error)

	repo := repository.NewEnquiryRepository(db)
	enquiry := &models.Enquiry{Title: "Blocked drain", MemberID: 1, Status: models.EnquiryStatusNew}
	require.NoError(t, repo.CreateWithHistory(context.Background(), enquiry, nil))

	handler := NewEnquiryHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blocked drain")
}

func TestEnquiryHandler_Get_InvalidID(t *testing.T) {
	handler := NewEnquiryHandler(repository.NewEnquiryRepository(newHandlerTestDB(t)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnquiryHandler_Get_NotFound(t *testing.T) {
	handler := NewEnquiryHandler(repository.NewEnquiryRepository(newHandlerTestDB(t)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnquiryHandler_GetByReference(t *testing.T) {
	db := newHandlerTestDB(t)
	require.NoError(t, db.Create(&models.Member{FullName: "John Smith", Email: "john@example.com", IsActive: true}).Error)

	repo := repository.NewEnquiryRepository(db)
	enquiry := &models.Enquiry{Title: "Missed bin collection", MemberID: 1, Status: models.EnquiryStatusNew}
	require.NoError(t, repo.CreateWithHistory(context.Background(), enquiry, nil))

	handler := NewEnquiryHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("reference")
	c.SetParamValues(enquiry.Reference)

	require.NoError(t, handler.GetByReference(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missed bin collection")
}
