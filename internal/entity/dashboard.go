package entity

type KPISet struct {
	TotalLeads     int     `json:"total_leads"`
	ConversionRate float64 `json:"conversion_rate"`
	TurnAroundDays float64 `json:"turn_around_days"`
	TotalRevenue   float64 `json:"total_revenue"`
}

type StatusCount struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type LeadsPeriod struct {
	Period         string  `json:"period"`
	Count          int     `json:"count"`
	ConversionRate float64 `json:"conversion_rate"`
}

type RevenuePeriod struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Target  float64 `json:"target"`
}

// EntityMetrics is the per-branch (or per-agent) roll-up the ranking
// engine scores and sorts.
type EntityMetrics struct {
	Name           string  `json:"name"`
	Revenue        float64 `json:"revenue"`
	ConversionRate float64 `json:"conversion_rate"`
	LeadCount      int     `json:"lead_count"`
	TurnAroundDays float64 `json:"turn_around_days"`
	Score          float64 `json:"score"`
}

type RankResult struct {
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Score    float64 `json:"score"`
}

type CountrySummary struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalLeads        int     `json:"total_leads"`
	AvgConversionRate float64 `json:"avg_conversion_rate"`
	AvgTurnAroundDays float64 `json:"avg_turn_around_days"`
}

type HourlyCallStat struct {
	Hour        int     `json:"hour"`
	Total       int     `json:"total"`
	Success     int     `json:"success"`
	SuccessRate float64 `json:"success_rate"`
}

// CallAnalysis summarizes when contacts convert best. The recommended
// window is always presented inside business hours (08-12).
type CallAnalysis struct {
	BestHour        int              `json:"best_hour"`
	BestSuccessRate float64          `json:"best_success_rate"`
	WindowStart     int              `json:"window_start"`
	WindowEnd       int              `json:"window_end"`
	Hourly          []HourlyCallStat `json:"hourly"`
}

type Insight struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Improvement float64 `json:"improvement"`
	Metric      string  `json:"metric"`
	Priority    string  `json:"priority"`
}

type FilterOptions struct {
	Branches  []string `json:"branches"`
	Agents    []string `json:"agents"`
	Products  []string `json:"products"`
	Segments  []string `json:"segments"`
	Campaigns []string `json:"campaigns"`
}

type DashboardResult struct {
	KPIs               KPISet          `json:"kpis"`
	StatusDistribution []StatusCount   `json:"status_distribution"`
	LeadsOverTime      []LeadsPeriod   `json:"leads_over_time"`
	RevenueOverTime    []RevenuePeriod `json:"revenue_over_time"`
	Branches           []EntityMetrics `json:"branches"`
	Agents             []EntityMetrics `json:"agents"`
	BranchRank         *RankResult     `json:"branch_rank,omitempty"`
	AgentRank          *RankResult     `json:"agent_rank,omitempty"`
	Country            CountrySummary  `json:"country"`
	CallAnalysis       CallAnalysis    `json:"call_analysis"`
	Insights           []Insight       `json:"insights"`
}
