package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validateTestHandler() http.Handler {
	return ValidateFilters(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestValidateFiltersPassesCleanQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?dateRange=last7days&branch=Porto", nil)
	rec := httptest.NewRecorder()

	validateTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateFiltersRejectsUnknownDateRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?dateRange=yesterday", nil)
	rec := httptest.NewRecorder()

	validateTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string `json:"error"`
		Fields []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body.Error)
	assert.Len(t, body.Fields, 1)
	assert.Equal(t, "dateRange", body.Fields[0].Field)
}

func TestValidateFiltersRejectsOversizedParam(t *testing.T) {
	long := strings.Repeat("a", 101)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?branch="+long, nil)
	rec := httptest.NewRecorder()

	validateTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
