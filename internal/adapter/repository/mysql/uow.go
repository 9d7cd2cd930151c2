package mysql

import (
	"context"

	loanDomain "finvault-backend/internal/domain/loan"
	"finvault-backend/internal/domain/uow"
	walletDomain "finvault-backend/internal/domain/wallet"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Wallets:       &WalletRepository{db: tx},
		Transactions:  &TransactionRepository{db: tx},
		Investments:   &InvestmentRepository{db: tx},
		Plans:         &InvestmentPlanRepository{db: tx},
		Loans:         &LoanRepository{db: tx},
		Products:      &LoanProductRepository{db: tx},
		Notifications: &NotificationRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinWalletTx(ctx context.Context, userID string, fn func(r uow.Repos, w *walletDomain.Wallet) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the wallet row up-front to prevent races
		w, err := r.Wallets.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		return fn(r, w)
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
