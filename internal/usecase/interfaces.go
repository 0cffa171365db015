package usecase

import (
	"context"
	"time"

	"github.com/gfranca7/branchboard/internal/entity"
)

type LeadRepositoryInterface interface {
	FindByFilter(ctx context.Context, f entity.Filter) ([]entity.Lead, error)
	DistinctOptions(ctx context.Context) (*entity.FilterOptions, error)
}

type DimensionRepositoryInterface interface {
	FindBranches(ctx context.Context) ([]entity.Branch, error)
	FindAgents(ctx context.Context, branchName string) ([]entity.Agent, error)
}

type CacheInterface interface {
	Get(key string) (any, bool)
	SetWithTTL(key string, value any, ttl time.Duration)
}

type DigestMailer interface {
	SendDigest(to, recipientName string, report entity.DigestReport) error
}
