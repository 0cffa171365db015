package usecase

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gfranca7/branchboard/internal/entity"
)

func TestParseFilterNormalizesValues(t *testing.T) {
	q := url.Values{}
	q.Set("dateRange", "last30days")
	q.Set("branch", "  Lisbon Central  ")
	q.Set("agent", "Maria <script>alert(1)</script>")
	q.Set("product", strings.Repeat("x", 150))

	f := ParseFilter(q)

	assert.Equal(t, entity.DateRangeLast30Days, f.DateRange)
	assert.Equal(t, "Lisbon Central", f.Branch)
	assert.Equal(t, "Maria scriptalert(1)/script", f.Agent)
	assert.Len(t, f.Product, 100)
}

func TestParseFilterUnknownDateRangeFallsBackToAll(t *testing.T) {
	q := url.Values{}
	q.Set("dateRange", "lastCentury")

	f := ParseFilter(q)

	assert.Equal(t, entity.DateRangeAll, f.DateRange)
}

func TestCanonicalKeyIsOrderIndependent(t *testing.T) {
	a := entity.Filter{DateRange: "last7days", Branch: "Porto", Agent: "Rui"}
	b := entity.Filter{Agent: "Rui", DateRange: "last7days", Branch: "Porto"}

	assert.Equal(t, a.CanonicalKey(), b.CanonicalKey())
	assert.Equal(t, "agent=Rui&branch=Porto&dateRange=last7days", a.CanonicalKey())
}

func TestCanonicalKeyOmitsEmptyFields(t *testing.T) {
	f := entity.Filter{DateRange: "all"}

	assert.Equal(t, "dateRange=all", f.CanonicalKey())
}

func TestFilterSinceBounds(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		dateRange string
		days      int
		bounded   bool
	}{
		{entity.DateRangeLast7Days, 7, true},
		{entity.DateRangeLast30Days, 30, true},
		{entity.DateRangeLast90Days, 90, true},
		{entity.DateRangeLastYear, 365, true},
		{entity.DateRangeAll, 0, false},
	}

	for _, c := range cases {
		since, bounded := entity.Filter{DateRange: c.dateRange}.Since(now)
		assert.Equal(t, c.bounded, bounded, c.dateRange)
		if c.bounded {
			assert.Equal(t, now.AddDate(0, 0, -c.days), since, c.dateRange)
		}
	}
}

func TestValidateFilterParamsStrictMode(t *testing.T) {
	q := url.Values{}
	q.Set("dateRange", "yesterday")
	q.Set("branch", strings.Repeat("b", 101))

	errs := ValidateFilterParams(q)

	assert.Len(t, errs, 2)
	assert.Equal(t, "dateRange", errs[0].Field)
	assert.Equal(t, "branch", errs[1].Field)
}

func TestValidateFilterParamsAcceptsValidInput(t *testing.T) {
	q := url.Values{}
	q.Set("dateRange", "last7days")
	q.Set("branch", "Porto")

	assert.Empty(t, ValidateFilterParams(q))
}

func TestSanitizeParamStripsMarkup(t *testing.T) {
	assert.Equal(t, "scriptxss/script", SanitizeParam(`<script>"xss"</script>`))
	assert.Equal(t, "OReilly", SanitizeParam("O'Reilly"))
}
