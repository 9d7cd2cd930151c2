package mysql

import (
	"context"
	"errors"

	loanDomain "finvault-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanProductRepository struct{ db *gorm.DB }

func NewLoanProductRepository(db *gorm.DB) *LoanProductRepository {
	return &LoanProductRepository{db: db}
}

func (r *LoanProductRepository) Create(ctx context.Context, p *loanDomain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *LoanProductRepository) GetByProductID(ctx context.Context, productID string) (*loanDomain.Product, error) {
	var out loanDomain.Product
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrProductNotFound
	}
	return &out, res.Error
}

func (r *LoanProductRepository) ListActive(ctx context.Context) ([]loanDomain.Product, error) {
	var out []loanDomain.Product
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("min_amount ASC").Find(&out).Error
	return out, err
}

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

// GetByLoanIDForUpdate locks the loan row up-front so status transitions and
// balance math never race.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) ListByUserID(ctx context.Context, userID string, status loanDomain.Status) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []loanDomain.Loan
	err := q.Order("id DESC").Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id ASC").Find(&out).Error
	return out, err
}
