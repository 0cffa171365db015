package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gfranca7/branchboard/internal/entity"
	"github.com/gfranca7/branchboard/internal/usecase"
)

type LeadRepository struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db, Now: time.Now}
}

// FindByFilter returns denormalized lead rows matching the filter. Equality
// predicates combine with AND; the date range becomes a created_at lower
// bound. Failures surface as retryable DataAccessErrors.
func (r *LeadRepository) FindByFilter(ctx context.Context, f entity.Filter) ([]entity.Lead, error) {
	query := `
		SELECT l.id, l.branch_id, b.name, l.agent_id, a.name, l.status,
		       COALESCE(l.product, ''), COALESCE(l.segment, ''), COALESCE(l.campaign, ''),
		       l.revenue, l.created_at, l.contacted_at, l.converted_at
		FROM leads l
		JOIN branches b ON b.id = l.branch_id
		JOIN agents a ON a.id = l.agent_id
		WHERE 1=1
	`

	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if since, bounded := f.Since(r.Now()); bounded {
		query += " AND l.created_at >= " + next(since)
	}
	if f.Branch != "" {
		query += " AND b.name = " + next(f.Branch)
	}
	if f.Agent != "" {
		query += " AND a.name = " + next(f.Agent)
	}
	if f.Product != "" {
		query += " AND l.product = " + next(f.Product)
	}
	if f.Segment != "" {
		query += " AND l.segment = " + next(f.Segment)
	}
	if f.Campaign != "" {
		query += " AND l.campaign = " + next(f.Campaign)
	}

	query += " ORDER BY l.created_at"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &usecase.DataAccessError{Op: "lead query", Err: err}
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		var l entity.Lead
		var contacted, converted sql.NullTime
		if err := rows.Scan(
			&l.ID, &l.BranchID, &l.BranchName, &l.AgentID, &l.AgentName,
			&l.Status, &l.Product, &l.Segment, &l.Campaign,
			&l.Revenue, &l.CreatedAt, &contacted, &converted,
		); err != nil {
			return nil, &usecase.DataAccessError{Op: "lead scan", Err: err}
		}
		if contacted.Valid {
			t := contacted.Time
			l.ContactedAt = &t
		}
		if converted.Valid {
			t := converted.Time
			l.ConvertedAt = &t
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, &usecase.DataAccessError{Op: "lead iteration", Err: err}
	}

	return leads, nil
}

// DistinctOptions lists the distinct filterable values currently present in
// the lead population.
func (r *LeadRepository) DistinctOptions(ctx context.Context) (*entity.FilterOptions, error) {
	opts := &entity.FilterOptions{}

	queries := []struct {
		dest  *[]string
		query string
	}{
		{&opts.Branches, `SELECT DISTINCT b.name FROM leads l JOIN branches b ON b.id = l.branch_id ORDER BY b.name`},
		{&opts.Agents, `SELECT DISTINCT a.name FROM leads l JOIN agents a ON a.id = l.agent_id ORDER BY a.name`},
		{&opts.Products, `SELECT DISTINCT product FROM leads WHERE product IS NOT NULL AND product <> '' ORDER BY product`},
		{&opts.Segments, `SELECT DISTINCT segment FROM leads WHERE segment IS NOT NULL AND segment <> '' ORDER BY segment`},
		{&opts.Campaigns, `SELECT DISTINCT campaign FROM leads WHERE campaign IS NOT NULL AND campaign <> '' ORDER BY campaign`},
	}

	for _, q := range queries {
		values, err := r.queryStrings(ctx, q.query)
		if err != nil {
			return nil, err
		}
		*q.dest = values
	}

	return opts, nil
}

func (r *LeadRepository) queryStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, &usecase.DataAccessError{Op: "options query", Err: err}
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &usecase.DataAccessError{Op: "options scan", Err: err}
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &usecase.DataAccessError{Op: "options iteration", Err: err}
	}
	return values, nil
}
