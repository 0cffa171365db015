package database

import (
	"context"
	"database/sql"

	"github.com/gfranca7/branchboard/internal/entity"
	"github.com/gfranca7/branchboard/internal/usecase"
)

type DimensionRepository struct {
	DB *sql.DB
}

func NewDimensionRepository(db *sql.DB) *DimensionRepository {
	return &DimensionRepository{DB: db}
}

func (r *DimensionRepository) FindBranches(ctx context.Context) ([]entity.Branch, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM branches ORDER BY name`)
	if err != nil {
		return nil, &usecase.DataAccessError{Op: "branch query", Err: err}
	}
	defer rows.Close()

	var branches []entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, &usecase.DataAccessError{Op: "branch scan", Err: err}
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &usecase.DataAccessError{Op: "branch iteration", Err: err}
	}
	return branches, nil
}

// FindAgents returns the agents of one branch, or all agents when
// branchName is empty.
func (r *DimensionRepository) FindAgents(ctx context.Context, branchName string) ([]entity.Agent, error) {
	query := `
		SELECT a.id, a.name, a.branch_id, COALESCE(a.email, '')
		FROM agents a
		JOIN branches b ON b.id = a.branch_id
	`
	var args []any
	if branchName != "" {
		query += ` WHERE b.name = $1`
		args = append(args, branchName)
	}
	query += ` ORDER BY a.name`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &usecase.DataAccessError{Op: "agent query", Err: err}
	}
	defer rows.Close()

	var agents []entity.Agent
	for rows.Next() {
		var a entity.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.BranchID, &a.Email); err != nil {
			return nil, &usecase.DataAccessError{Op: "agent scan", Err: err}
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &usecase.DataAccessError{Op: "agent iteration", Err: err}
	}
	return agents, nil
}
