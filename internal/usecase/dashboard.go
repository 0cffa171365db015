package usecase

import (
	"context"
	"log"
	"time"

	"github.com/gfranca7/branchboard/internal/entity"
)

const (
	// Dashboard results stay fresh for 5 minutes; dimensional values move
	// far slower and get 10.
	DefaultDashboardTTL = 300 * time.Second
	DefaultOptionsTTL   = 10 * time.Minute

	dashboardKeyPrefix = "dashboard:"
	optionsCacheKey    = "dashboard:options"
)

// DashboardUseCase composes the filtered lead set into KPIs, period series,
// rankings and insights, memoizing the result per canonical filter key.
//
// Concurrent misses for the same key may both recompute and both write;
// recomputation is idempotent and last-write-wins is safe for this
// read-mostly workload, so there is no single-flight deduplication.
type DashboardUseCase struct {
	Leads        LeadRepositoryInterface
	Cache        CacheInterface
	DashboardTTL time.Duration
	OptionsTTL   time.Duration
	Now          func() time.Time
}

func NewDashboardUseCase(leads LeadRepositoryInterface, cache CacheInterface) *DashboardUseCase {
	return &DashboardUseCase{
		Leads:        leads,
		Cache:        cache,
		DashboardTTL: DefaultDashboardTTL,
		OptionsTTL:   DefaultOptionsTTL,
		Now:          time.Now,
	}
}

// Execute returns the composed dashboard for a filter. A persistence
// failure aborts the request; any internal insight failure degrades to
// defaults so a dashboard is always returned when data access succeeds.
func (uc *DashboardUseCase) Execute(ctx context.Context, f entity.Filter) (*entity.DashboardResult, error) {
	key := dashboardKeyPrefix + f.CanonicalKey()

	if uc.Cache != nil {
		if v, ok := uc.Cache.Get(key); ok {
			if result, ok := v.(*entity.DashboardResult); ok {
				return result, nil
			}
		}
	}

	leads, err := uc.Leads.FindByFilter(ctx, f)
	if err != nil {
		return nil, err
	}

	result := uc.compute(leads, f)
	dashboardComputes.Inc()

	if uc.Cache != nil {
		uc.Cache.SetWithTTL(key, result, uc.DashboardTTL)
	}
	return result, nil
}

// Options returns the distinct filterable values in the lead population.
func (uc *DashboardUseCase) Options(ctx context.Context) (*entity.FilterOptions, error) {
	if uc.Cache != nil {
		if v, ok := uc.Cache.Get(optionsCacheKey); ok {
			if opts, ok := v.(*entity.FilterOptions); ok {
				return opts, nil
			}
		}
	}

	opts, err := uc.Leads.DistinctOptions(ctx)
	if err != nil {
		return nil, err
	}

	if uc.Cache != nil {
		uc.Cache.SetWithTTL(optionsCacheKey, opts, uc.OptionsTTL)
	}
	return opts, nil
}

func (uc *DashboardUseCase) compute(leads []entity.Lead, f entity.Filter) *entity.DashboardResult {
	now := uc.Now()
	width := f.BucketWidth()

	kpis := ComputeKPIs(leads)
	branches := GroupMetrics(leads, func(l *entity.Lead) string { return l.BranchName })
	agents := GroupMetrics(leads, func(l *entity.Lead) string { return l.AgentName })

	result := &entity.DashboardResult{
		KPIs:               kpis,
		StatusDistribution: ComputeStatusDistribution(leads),
		LeadsOverTime:      ComputeLeadsOverTime(leads, now, width, defaultPeriods),
		RevenueOverTime:    ComputeRevenueOverTime(leads, now, width, defaultPeriods),
		Branches:           roundMetrics(SortByScore(branches)),
		Agents:             roundMetrics(SortByScore(agents)),
		Country:            CountryRollup(branches),
	}

	if f.Branch != "" {
		rank := Rank(branches, f.Branch)
		result.BranchRank = &rank
	}
	if f.Agent != "" {
		rank := Rank(agents, f.Agent)
		result.AgentRank = &rank
	}

	result.CallAnalysis, result.Insights = uc.safeInsights(leads, kpis)
	return result
}

// safeInsights shields the request from any failure inside the insight
// generator: it logs, counts the fallback, and substitutes the documented
// defaults instead of failing the response.
func (uc *DashboardUseCase) safeInsights(leads []entity.Lead, kpis entity.KPISet) (analysis entity.CallAnalysis, insights []entity.Insight) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR insight generation failed, serving defaults: %v", r)
			insightFallbacks.Inc()
			analysis = AnalyzeCallWindow(nil)
			insights = DefaultInsights()
		}
	}()

	stats := BuildHourlyCallStats(leads)
	analysis = AnalyzeCallWindow(stats)
	insights = GenerateInsights(kpis, analysis)
	return analysis, insights
}
