package entity

// DigestReport is the per-branch summary mailed to agents on a schedule.
type DigestReport struct {
	ReportID   string     `json:"report_id"`
	BranchName string     `json:"branch_name"`
	Period     string     `json:"period"`
	KPIs       KPISet     `json:"kpis"`
	Rank       RankResult `json:"rank"`
	TopInsight Insight    `json:"top_insight"`
}
