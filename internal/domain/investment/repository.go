package investment

import (
	"context"
	"time"
)

type PlanRepository interface {
	Create(ctx context.Context, p *Plan) error
	GetByPlanID(ctx context.Context, planID string) (*Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
}

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	GetByInvestmentID(ctx context.Context, investmentID string) (*Investment, error)
	GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*Investment, error)
	Save(ctx context.Context, inv *Investment) error
	ListByUserID(ctx context.Context, userID string, status Status) ([]Investment, error)
	ListActive(ctx context.Context) ([]Investment, error)
	ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]Investment, error)
}
