package loan

import "context"

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByProductID(ctx context.Context, productID string) (*Product, error)
	ListActive(ctx context.Context) ([]Product, error)
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	ListByUserID(ctx context.Context, userID string, status Status) ([]Loan, error)
	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
}
