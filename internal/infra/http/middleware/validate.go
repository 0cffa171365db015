package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gfranca7/branchboard/internal/usecase"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateFilters enforces the strict filter rules in front of the
// dashboard routes: unrecognized date ranges and oversized values are hard
// 400s here, instead of the permissive fallback the normalizer applies.
func ValidateFilters(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errs := usecase.ValidateFilterParams(r.URL.Query())
		if len(errs) > 0 {
			RecordValidationFailure()

			fields := make([]fieldError, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, fieldError{Field: e.Field, Message: e.Message})
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error":  "validation_failed",
				"fields": fields,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
