package usecase

import (
	"sort"
	"strings"

	"github.com/gfranca7/branchboard/internal/entity"
)

// Composite score weights. Fixed business policy in this version, not
// user-configurable. Revenue, conversion, volume and inverted turn-around
// are normalized onto comparable magnitudes before weighting.
const (
	weightRevenue    = 0.4
	weightConversion = 0.3
	weightLeadCount  = 0.2
	weightTurnAround = 0.1
)

// Score blends heterogeneous metrics into a single comparable number.
// Lower turn-around is better, so it enters inverted.
func Score(revenue, conversionRate float64, leadCount int, turnAroundDays float64) float64 {
	var tatComponent float64
	if turnAroundDays > 0 {
		tatComponent = 100 / turnAroundDays
	}
	return weightRevenue*(revenue/1000) +
		weightConversion*(conversionRate*10) +
		weightLeadCount*(float64(leadCount)/10) +
		weightTurnAround*tatComponent
}

// GroupMetrics rolls leads up per entity (branch or agent, selected by the
// key function), preserving first-seen order so that score ties keep a
// stable, deterministic ranking.
func GroupMetrics(leads []entity.Lead, key func(*entity.Lead) string) []entity.EntityMetrics {
	type accumulator struct {
		revenue     float64
		sold        int
		total       int
		contacted   int
		contactDays float64
	}

	accs := make(map[string]*accumulator)
	var order []string

	for i := range leads {
		l := &leads[i]
		name := key(l)
		if name == "" {
			continue
		}
		acc, ok := accs[name]
		if !ok {
			acc = &accumulator{}
			accs[name] = acc
			order = append(order, name)
		}
		acc.total++
		if l.IsSold() {
			acc.sold++
			acc.revenue += l.Revenue
		}
		if l.IsContacted() {
			acc.contacted++
			acc.contactDays += l.ContactedAt.Sub(l.CreatedAt).Hours() / hoursPerDay
		}
	}

	metrics := make([]entity.EntityMetrics, 0, len(order))
	for _, name := range order {
		acc := accs[name]
		var conv, tat float64
		if acc.total > 0 {
			conv = float64(acc.sold) / float64(acc.total) * 100
		}
		if acc.contacted > 0 {
			tat = acc.contactDays / float64(acc.contacted)
		}
		metrics = append(metrics, entity.EntityMetrics{
			Name:           name,
			Revenue:        acc.revenue,
			ConversionRate: conv,
			LeadCount:      acc.total,
			TurnAroundDays: tat,
			Score:          Score(acc.revenue, conv, acc.total, tat),
		})
	}
	return metrics
}

// SortByScore orders entities by score descending. The sort is stable:
// ties keep the original collection order, with no secondary tiebreak.
func SortByScore(entities []entity.EntityMetrics) []entity.EntityMetrics {
	sorted := make([]entity.EntityMetrics, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

// Rank locates the selected entity (case-insensitive exact name match) in a
// score-descending ordering. With no entities to rank against, it returns
// the sentinel position 1 of 1 with score 0 rather than an error; the same
// sentinel covers a selected name absent from the set.
func Rank(entities []entity.EntityMetrics, selected string) entity.RankResult {
	if len(entities) == 0 {
		return entity.RankResult{Position: 1, Total: 1, Score: 0}
	}

	sorted := SortByScore(entities)
	for i := range sorted {
		if strings.EqualFold(sorted[i].Name, selected) {
			return entity.RankResult{
				Position: i + 1,
				Total:    len(sorted),
				Score:    round2(sorted[i].Score),
			}
		}
	}
	return entity.RankResult{Position: 1, Total: 1, Score: 0}
}

// CountryRollup aggregates across all branches. Revenue and lead counts are
// summed; conversion rate and turn-around are unweighted means across
// branches, not lead-weighted. That simplification is policy.
func CountryRollup(branches []entity.EntityMetrics) entity.CountrySummary {
	var summary entity.CountrySummary
	if len(branches) == 0 {
		return summary
	}

	var convSum, tatSum float64
	for i := range branches {
		summary.TotalRevenue += branches[i].Revenue
		summary.TotalLeads += branches[i].LeadCount
		convSum += branches[i].ConversionRate
		tatSum += branches[i].TurnAroundDays
	}

	n := float64(len(branches))
	summary.TotalRevenue = round2(summary.TotalRevenue)
	summary.AvgConversionRate = round2(convSum / n)
	summary.AvgTurnAroundDays = round2(tatSum / n)
	return summary
}

// roundMetrics produces the presentation copy of a metrics slice, rounded
// to two decimals at the boundary.
func roundMetrics(entities []entity.EntityMetrics) []entity.EntityMetrics {
	out := make([]entity.EntityMetrics, len(entities))
	for i, m := range entities {
		m.Revenue = round2(m.Revenue)
		m.ConversionRate = round2(m.ConversionRate)
		m.TurnAroundDays = round2(m.TurnAroundDays)
		m.Score = round2(m.Score)
		out[i] = m
	}
	return out
}
