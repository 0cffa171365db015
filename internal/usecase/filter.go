package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gfranca7/branchboard/internal/entity"
)

const maxParamLength = 100

var validDateRanges = map[string]bool{
	entity.DateRangeLast7Days:  true,
	entity.DateRangeLast30Days: true,
	entity.DateRangeLast90Days: true,
	entity.DateRangeLastYear:   true,
	entity.DateRangeAll:        true,
}

// ParseFilter normalizes raw query parameters into a Filter. It is
// deliberately permissive: an unrecognized dateRange falls back to "all"
// rather than erroring. Strict rejection belongs to the validation
// middleware in front of the handler.
func ParseFilter(q url.Values) entity.Filter {
	dateRange := strings.TrimSpace(q.Get("dateRange"))
	if !validDateRanges[dateRange] {
		dateRange = entity.DateRangeAll
	}

	return entity.Filter{
		DateRange: dateRange,
		Branch:    SanitizeParam(q.Get("branch")),
		Agent:     SanitizeParam(q.Get("agent")),
		Product:   SanitizeParam(q.Get("product")),
		Segment:   SanitizeParam(q.Get("segment")),
		Campaign:  SanitizeParam(q.Get("campaign")),
	}
}

// SanitizeParam trims, caps at 100 characters, and strips characters with
// markup significance so the value is safe to echo back.
func SanitizeParam(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxParamLength {
		s = s[:maxParamLength]
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<', '>', '"', '\'', '&', '`':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidateFilterParams applies the strict rules used by the validation
// middleware: an unrecognized dateRange or an oversized string field is a
// hard 400, not a silent fallback.
func ValidateFilterParams(q url.Values) []ValidationError {
	var errs []ValidationError

	if dr := strings.TrimSpace(q.Get("dateRange")); dr != "" && !validDateRanges[dr] {
		errs = append(errs, ValidationError{"dateRange", "must be one of last7days, last30days, last90days, lastYear, all"})
	}

	for _, field := range []string{"branch", "agent", "product", "segment", "campaign"} {
		if len(strings.TrimSpace(q.Get(field))) > maxParamLength {
			errs = append(errs, ValidationError{field, fmt.Sprintf("must not exceed %d characters", maxParamLength)})
		}
	}

	return errs
}
