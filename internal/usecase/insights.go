package usecase

import (
	"fmt"

	"github.com/gfranca7/branchboard/internal/entity"
)

const (
	// Recommended calling windows are always presented inside business
	// hours, 08:00-12:00, even when the measured best hour falls outside.
	businessWindowStart = 8
	businessWindowEnd   = 12

	defaultBestHour = 9

	// Estimates never go negative: 2% is the minimum uplift quoted.
	minImprovementPct = 2.0

	responseTimeThresholdDays = 7.0
	lowConversionThresholdPct = 5.0
)

const (
	MetricTurnAround = "turn_around_time"
	MetricConversion = "conversion_rate"

	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// BuildHourlyCallStats buckets contacted leads by hour of day of their
// contact timestamp and computes the per-hour sale success rate.
func BuildHourlyCallStats(leads []entity.Lead) []entity.HourlyCallStat {
	var totals, successes [24]int
	for i := range leads {
		l := &leads[i]
		if !l.IsContacted() {
			continue
		}
		hour := l.ContactedAt.Hour()
		totals[hour]++
		if l.IsSold() {
			successes[hour]++
		}
	}

	var stats []entity.HourlyCallStat
	for hour := 0; hour < 24; hour++ {
		if totals[hour] == 0 {
			continue
		}
		stats = append(stats, entity.HourlyCallStat{
			Hour:        hour,
			Total:       totals[hour],
			Success:     successes[hour],
			SuccessRate: round2(float64(successes[hour]) / float64(totals[hour]) * 100),
		})
	}
	return stats
}

// AnalyzeCallWindow picks the best-performing contact hour (ties go to the
// earliest hour) and derives the recommended calling window, clamped to the
// 08-12 business range. With no contacted leads it defaults to hour 9 at 0%.
func AnalyzeCallWindow(stats []entity.HourlyCallStat) entity.CallAnalysis {
	bestHour := defaultBestHour
	bestRate := 0.0
	found := false

	for _, s := range stats {
		if !found || s.SuccessRate > bestRate {
			found = true
			bestHour = s.Hour
			bestRate = s.SuccessRate
		}
	}

	start := bestHour - 1
	if start < businessWindowStart {
		start = businessWindowStart
	}
	end := bestHour + 3
	if end > businessWindowEnd {
		end = businessWindowEnd
	}

	return entity.CallAnalysis{
		BestHour:        bestHour,
		BestSuccessRate: bestRate,
		WindowStart:     start,
		WindowEnd:       end,
		Hourly:          stats,
	}
}

// GenerateInsights turns the hourly analysis and current KPIs into
// natural-language recommendations with quantified uplift. The two baseline
// insights are always emitted; threshold-triggered ones are additive.
func GenerateInsights(kpis entity.KPISet, analysis entity.CallAnalysis) []entity.Insight {
	meanRate := meanSuccessRate(analysis.Hourly)

	tatUplift := relativeImprovement(analysis.BestSuccessRate, meanRate)
	convUplift := relativeImprovement(analysis.BestSuccessRate, kpis.ConversionRate)

	insights := []entity.Insight{
		{
			ID:    "call-window-tat",
			Title: "Contact leads during the peak window",
			Description: fmt.Sprintf(
				"Calls placed around %02d:00 succeed at %.2f%% versus an hourly average of %.2f%%. Concentrating first contact between %02d:00 and %02d:00 could reduce turn-around time by an estimated %.2f%%.",
				analysis.BestHour, analysis.BestSuccessRate, meanRate,
				analysis.WindowStart, analysis.WindowEnd, tatUplift),
			Improvement: tatUplift,
			Metric:      MetricTurnAround,
			Priority:    PriorityMedium,
		},
		{
			ID:    "call-window-conversion",
			Title: "Shift calls toward the best-converting hour",
			Description: fmt.Sprintf(
				"Leads contacted at %02d:00 convert at %.2f%% against a current overall rate of %.2f%%. Scheduling within %02d:00-%02d:00 could lift conversion by an estimated %.2f%%.",
				analysis.BestHour, analysis.BestSuccessRate, kpis.ConversionRate,
				analysis.WindowStart, analysis.WindowEnd, convUplift),
			Improvement: convUplift,
			Metric:      MetricConversion,
			Priority:    PriorityMedium,
		},
	}

	if kpis.TurnAroundDays > responseTimeThresholdDays {
		insights = append(insights, entity.Insight{
			ID:    "reduce-response-time",
			Title: "Reduce first-response time",
			Description: fmt.Sprintf(
				"Average turn-around is %.2f days. Responding within 48 hours typically improves close rates by around 20%%.",
				kpis.TurnAroundDays),
			Improvement: 20,
			Metric:      MetricTurnAround,
			Priority:    PriorityHigh,
		})
	}

	if kpis.ConversionRate < lowConversionThresholdPct {
		insights = append(insights, entity.Insight{
			ID:    "boost-conversions",
			Title: "Boost conversion with lead qualification",
			Description: fmt.Sprintf(
				"Conversion sits at %.2f%%. Tighter lead qualification and structured follow-up typically recover around 15%%.",
				kpis.ConversionRate),
			Improvement: 15,
			Metric:      MetricConversion,
			Priority:    PriorityHigh,
		})
	}

	return insights
}

// DefaultInsights is the fallback pair used when insight generation fails.
// The request still succeeds with these in place.
func DefaultInsights() []entity.Insight {
	return []entity.Insight{
		{
			ID:          "call-window-tat",
			Title:       "Contact leads during the peak window",
			Description: "Concentrating first contact between 08:00 and 12:00 could reduce turn-around time by an estimated 2.00%.",
			Improvement: minImprovementPct,
			Metric:      MetricTurnAround,
			Priority:    PriorityMedium,
		},
		{
			ID:          "call-window-conversion",
			Title:       "Shift calls toward the best-converting hour",
			Description: "Scheduling calls within 08:00-12:00 could lift conversion by an estimated 2.00%.",
			Improvement: minImprovementPct,
			Metric:      MetricConversion,
			Priority:    PriorityMedium,
		},
	}
}

func meanSuccessRate(stats []entity.HourlyCallStat) float64 {
	if len(stats) == 0 {
		return 0
	}
	var sum float64
	for _, s := range stats {
		sum += s.SuccessRate
	}
	return round2(sum / float64(len(stats)))
}

// relativeImprovement is the percentage difference of best over baseline,
// floored at the 2% minimum so messaging stays actionable.
func relativeImprovement(best, baseline float64) float64 {
	if baseline <= 0 || best <= baseline {
		return minImprovementPct
	}
	return round2((best - baseline) / baseline * 100)
}
