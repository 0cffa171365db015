package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gfranca7/branchboard/internal/entity"
)

func TestScoreBlendsWeightedComponents(t *testing.T) {
	// 0.4*(2000/1000) + 0.3*(50*10) + 0.2*(20/10) + 0.1*(100/4)
	score := Score(2000, 50, 20, 4)

	assert.InDelta(t, 153.7, score, 0.0001)
}

func TestScoreZeroTurnAroundContributesNothing(t *testing.T) {
	score := Score(1000, 10, 10, 0)

	// 0.4*1 + 0.3*100 + 0.2*1 + 0
	assert.InDelta(t, 30.6, score, 0.0001)
}

func branchMetrics() []entity.EntityMetrics {
	return []entity.EntityMetrics{
		{Name: "Lisbon", Revenue: 5000, ConversionRate: 20, LeadCount: 50, TurnAroundDays: 2, Score: Score(5000, 20, 50, 2)},
		{Name: "Porto", Revenue: 8000, ConversionRate: 10, LeadCount: 80, TurnAroundDays: 5, Score: Score(8000, 10, 80, 5)},
		{Name: "Faro", Revenue: 1000, ConversionRate: 5, LeadCount: 10, TurnAroundDays: 10, Score: Score(1000, 5, 10, 10)},
	}
}

func TestRankIsDeterministic(t *testing.T) {
	entities := branchMetrics()

	first := Rank(entities, "Lisbon")
	second := Rank(entities, "Lisbon")

	assert.Equal(t, first, second)
	assert.Equal(t, 3, first.Total)
}

func TestRankMatchesCaseInsensitively(t *testing.T) {
	entities := branchMetrics()

	assert.Equal(t, Rank(entities, "lisbon").Position, Rank(entities, "LISBON").Position)
}

func TestRankIncreasingRevenueNeverLowersPosition(t *testing.T) {
	entities := branchMetrics()
	before := Rank(entities, "Faro").Position

	boosted := branchMetrics()
	boosted[2].Revenue = 50000
	boosted[2].Score = Score(50000, 5, 10, 10)
	after := Rank(boosted, "Faro").Position

	assert.LessOrEqual(t, after, before)
}

func TestRankZeroEntitiesReturnsSentinel(t *testing.T) {
	rank := Rank(nil, "Anywhere")

	assert.Equal(t, entity.RankResult{Position: 1, Total: 1, Score: 0}, rank)
}

func TestSortByScoreTiesKeepCollectionOrder(t *testing.T) {
	entities := []entity.EntityMetrics{
		{Name: "A", Score: 10},
		{Name: "B", Score: 10},
		{Name: "C", Score: 20},
	}

	sorted := SortByScore(entities)

	assert.Equal(t, "C", sorted[0].Name)
	assert.Equal(t, "A", sorted[1].Name)
	assert.Equal(t, "B", sorted[2].Name)
}

func TestGroupMetricsRollsUpPerEntity(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contacted := now.Add(-24 * time.Hour)

	leads := []entity.Lead{
		{BranchName: "Lisbon", Status: entity.StatusSold, Revenue: 1000, CreatedAt: now.Add(-48 * time.Hour), ContactedAt: &contacted},
		{BranchName: "Lisbon", Status: entity.StatusOpen, CreatedAt: now},
		{BranchName: "Porto", Status: entity.StatusOpen, CreatedAt: now},
	}

	metrics := GroupMetrics(leads, func(l *entity.Lead) string { return l.BranchName })

	assert.Len(t, metrics, 2)
	lisbon := metrics[0]
	assert.Equal(t, "Lisbon", lisbon.Name)
	assert.Equal(t, 2, lisbon.LeadCount)
	assert.Equal(t, 1000.0, lisbon.Revenue)
	assert.Equal(t, 50.0, lisbon.ConversionRate)
	assert.Equal(t, 1.0, lisbon.TurnAroundDays)
}

func TestCountryRollupUnweightedAverages(t *testing.T) {
	branches := []entity.EntityMetrics{
		{Name: "Lisbon", Revenue: 1000, ConversionRate: 40, LeadCount: 100, TurnAroundDays: 2},
		{Name: "Porto", Revenue: 3000, ConversionRate: 10, LeadCount: 10, TurnAroundDays: 4},
	}

	summary := CountryRollup(branches)

	assert.Equal(t, 4000.00, summary.TotalRevenue)
	assert.Equal(t, 110, summary.TotalLeads)
	// Unweighted mean across branches, not lead-weighted.
	assert.Equal(t, 25.00, summary.AvgConversionRate)
	assert.Equal(t, 3.00, summary.AvgTurnAroundDays)
}

func TestCountryRollupEmpty(t *testing.T) {
	assert.Equal(t, entity.CountrySummary{}, CountryRollup(nil))
}
