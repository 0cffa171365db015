package entity

import (
	"sort"
	"strings"
	"time"
)

const (
	DateRangeLast7Days  = "last7days"
	DateRangeLast30Days = "last30days"
	DateRangeLast90Days = "last90days"
	DateRangeLastYear   = "lastYear"
	DateRangeAll        = "all"
)

// Filter is the canonical, already-sanitized query shape. It is never
// persisted; it only scopes lead queries and keys the dashboard cache.
type Filter struct {
	DateRange string `json:"date_range"`
	Branch    string `json:"branch,omitempty"`
	Agent     string `json:"agent,omitempty"`
	Product   string `json:"product,omitempty"`
	Segment   string `json:"segment,omitempty"`
	Campaign  string `json:"campaign,omitempty"`
}

// CanonicalKey encodes the filter as sorted name=value pairs so that
// logically identical filters always map to the same cache entry,
// regardless of parameter order on the wire.
func (f Filter) CanonicalKey() string {
	fields := map[string]string{
		"agent":     f.Agent,
		"branch":    f.Branch,
		"campaign":  f.Campaign,
		"dateRange": f.DateRange,
		"product":   f.Product,
		"segment":   f.Segment,
	}

	names := make([]string, 0, len(fields))
	for name, value := range fields {
		if value != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+fields[name])
	}
	return strings.Join(pairs, "&")
}

// Since returns the lower creation-time bound implied by the date range.
// The second return is false for "all", which imposes no bound.
func (f Filter) Since(now time.Time) (time.Time, bool) {
	switch f.DateRange {
	case DateRangeLast7Days:
		return now.AddDate(0, 0, -7), true
	case DateRangeLast30Days:
		return now.AddDate(0, 0, -30), true
	case DateRangeLast90Days:
		return now.AddDate(0, 0, -90), true
	case DateRangeLastYear:
		return now.AddDate(0, 0, -365), true
	default:
		return time.Time{}, false
	}
}

// BucketWidth is the period width used for time-series bucketing.
func (f Filter) BucketWidth() time.Duration {
	switch f.DateRange {
	case DateRangeLast7Days:
		return 24 * time.Hour
	case DateRangeLast30Days:
		return 4 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}
