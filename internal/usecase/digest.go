package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gfranca7/branchboard/internal/entity"
)

// DigestWorker periodically mails each branch's agents a performance
// summary built from the last-30-days dashboard. Every failure is logged
// and skipped; the worker never takes the process down.
type DigestWorker struct {
	Dashboard  *DashboardUseCase
	Dimensions DimensionRepositoryInterface
	Mailer     DigestMailer
	Interval   time.Duration
}

func NewDigestWorker(dashboard *DashboardUseCase, dims DimensionRepositoryInterface, mailer DigestMailer, interval time.Duration) *DigestWorker {
	return &DigestWorker{
		Dashboard:  dashboard,
		Dimensions: dims,
		Mailer:     mailer,
		Interval:   interval,
	}
}

func (w *DigestWorker) Start(ctx context.Context) {
	log.Printf("📬 Digest worker started (every %s)", w.Interval)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Digest worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce builds and sends one digest round.
func (w *DigestWorker) RunOnce(ctx context.Context) {
	branches, err := w.Dimensions.FindBranches(ctx)
	if err != nil {
		log.Printf("ERROR digest: listing branches: %v", err)
		return
	}

	for _, branch := range branches {
		filter := entity.Filter{
			DateRange: entity.DateRangeLast30Days,
			Branch:    branch.Name,
		}

		result, err := w.Dashboard.Execute(ctx, filter)
		if err != nil {
			log.Printf("ERROR digest: dashboard for branch %s: %v", branch.Name, err)
			continue
		}

		report := entity.DigestReport{
			ReportID:   uuid.NewString(),
			BranchName: branch.Name,
			Period:     filter.DateRange,
			KPIs:       result.KPIs,
		}
		if result.BranchRank != nil {
			report.Rank = *result.BranchRank
		}
		if len(result.Insights) > 0 {
			report.TopInsight = result.Insights[0]
		}

		agents, err := w.Dimensions.FindAgents(ctx, branch.Name)
		if err != nil {
			log.Printf("ERROR digest: listing agents for branch %s: %v", branch.Name, err)
			continue
		}

		for _, agent := range agents {
			if agent.Email == "" {
				continue
			}
			if err := w.Mailer.SendDigest(agent.Email, agent.Name, report); err != nil {
				log.Printf("ERROR digest: mail to %s: %v", agent.Email, err)
			}
		}
	}
}
