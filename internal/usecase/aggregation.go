package usecase

import (
	"fmt"
	"math"
	"time"

	"github.com/gfranca7/branchboard/internal/entity"
)

const (
	defaultPeriods = 7

	// Synthetic revenue target: 110% of realized revenue, since no
	// independent plan data exists in this version.
	revenueTargetFactor = 1.10

	hoursPerDay = 24
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeKPIs derives the headline numbers from a lead set. All divisions
// guard against empty denominators; rounding happens only here, at the
// boundary.
func ComputeKPIs(leads []entity.Lead) entity.KPISet {
	total := len(leads)

	var sold int
	var revenue float64
	var contactDays float64
	var contacted int

	for i := range leads {
		l := &leads[i]
		if l.IsSold() {
			sold++
			revenue += l.Revenue
		}
		if l.IsContacted() {
			contacted++
			contactDays += l.ContactedAt.Sub(l.CreatedAt).Hours() / hoursPerDay
		}
	}

	kpis := entity.KPISet{TotalLeads: total}
	if total > 0 {
		kpis.ConversionRate = round2(float64(sold) / float64(total) * 100)
	}
	if contacted > 0 {
		kpis.TurnAroundDays = round2(contactDays / float64(contacted))
	}
	kpis.TotalRevenue = round2(revenue)

	return kpis
}

// ComputeStatusDistribution counts leads per status and expresses each as a
// percentage of the whole.
func ComputeStatusDistribution(leads []entity.Lead) []entity.StatusCount {
	counts := make(map[string]int)
	var order []string
	for i := range leads {
		status := leads[i].Status
		if _, seen := counts[status]; !seen {
			order = append(order, status)
		}
		counts[status]++
	}

	total := len(leads)
	dist := make([]entity.StatusCount, 0, len(order))
	for _, status := range order {
		count := counts[status]
		var pct float64
		if total > 0 {
			pct = round2(float64(count) / float64(total) * 100)
		}
		dist = append(dist, entity.StatusCount{
			Status:     status,
			Count:      count,
			Percentage: pct,
		})
	}
	return dist
}

type bucket struct {
	label string
	start time.Time
	end   time.Time
}

// makeBuckets partitions the time axis into n contiguous right-open
// intervals of the given width, ending at now, oldest first. Labels are
// reverse ordinals: the oldest bucket shown is "1st", the most recent "7th".
func makeBuckets(now time.Time, width time.Duration, n int) []bucket {
	buckets := make([]bucket, n)
	for i := 0; i < n; i++ {
		end := now.Add(-time.Duration(n-i-1) * width)
		buckets[i] = bucket{
			label: ordinal(i + 1),
			start: end.Add(-width),
			end:   end,
		}
	}
	return buckets
}

func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// ComputeLeadsOverTime buckets lead creation into periods and reports count
// and conversion rate per period.
func ComputeLeadsOverTime(leads []entity.Lead, now time.Time, width time.Duration, periods int) []entity.LeadsPeriod {
	if periods <= 0 {
		periods = defaultPeriods
	}
	buckets := makeBuckets(now, width, periods)

	series := make([]entity.LeadsPeriod, len(buckets))
	for i, b := range buckets {
		var count, sold int
		for j := range leads {
			created := leads[j].CreatedAt
			if (created.Equal(b.start) || created.After(b.start)) && created.Before(b.end) {
				count++
				if leads[j].IsSold() {
					sold++
				}
			}
		}

		var rate float64
		if count > 0 {
			rate = round2(float64(sold) / float64(count) * 100)
		}
		series[i] = entity.LeadsPeriod{
			Period:         b.label,
			Count:          count,
			ConversionRate: rate,
		}
	}
	return series
}

// ComputeRevenueOverTime buckets sold revenue into periods. Target is a
// fixed 110% of realized revenue per bucket.
func ComputeRevenueOverTime(leads []entity.Lead, now time.Time, width time.Duration, periods int) []entity.RevenuePeriod {
	if periods <= 0 {
		periods = defaultPeriods
	}
	buckets := makeBuckets(now, width, periods)

	series := make([]entity.RevenuePeriod, len(buckets))
	for i, b := range buckets {
		var revenue float64
		for j := range leads {
			if !leads[j].IsSold() {
				continue
			}
			created := leads[j].CreatedAt
			if (created.Equal(b.start) || created.After(b.start)) && created.Before(b.end) {
				revenue += leads[j].Revenue
			}
		}
		series[i] = entity.RevenuePeriod{
			Period:  b.label,
			Revenue: round2(revenue),
			Target:  round2(revenue * revenueTargetFactor),
		}
	}
	return series
}
