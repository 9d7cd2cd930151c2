package mysql

import (
	"context"
	"errors"
	"time"

	investmentDomain "finvault-backend/internal/domain/investment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvestmentPlanRepository struct{ db *gorm.DB }

func NewInvestmentPlanRepository(db *gorm.DB) *InvestmentPlanRepository {
	return &InvestmentPlanRepository{db: db}
}

func (r *InvestmentPlanRepository) Create(ctx context.Context, p *investmentDomain.Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *InvestmentPlanRepository) GetByPlanID(ctx context.Context, planID string) (*investmentDomain.Plan, error) {
	var out investmentDomain.Plan
	res := r.db.WithContext(ctx).Where("plan_id = ?", planID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, investmentDomain.ErrPlanNotFound
	}
	return &out, res.Error
}

func (r *InvestmentPlanRepository) ListActive(ctx context.Context) ([]investmentDomain.Plan, error) {
	var out []investmentDomain.Plan
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("min_amount ASC").Find(&out).Error
	return out, err
}

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *investmentDomain.Investment) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvestmentRepository) Save(ctx context.Context, inv *investmentDomain.Investment) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvestmentRepository) GetByInvestmentID(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := r.db.WithContext(ctx).Where("investment_id = ?", investmentID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, investmentDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *InvestmentRepository) GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("investment_id = ?", investmentID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, investmentDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *InvestmentRepository) ListByUserID(ctx context.Context, userID string, status investmentDomain.Status) ([]investmentDomain.Investment, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []investmentDomain.Investment
	err := q.Order("id DESC").Find(&out).Error
	return out, err
}

func (r *InvestmentRepository) ListActive(ctx context.Context) ([]investmentDomain.Investment, error) {
	var out []investmentDomain.Investment
	err := r.db.WithContext(ctx).
		Where("status = ?", investmentDomain.StatusActive).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *InvestmentRepository) ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]investmentDomain.Investment, error) {
	var out []investmentDomain.Investment
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date > ? AND end_date <= ?", investmentDomain.StatusActive, from, to).
		Order("end_date ASC").
		Find(&out).Error
	return out, err
}
