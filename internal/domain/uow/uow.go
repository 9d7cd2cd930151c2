package uow

import (
	"context"

	"finvault-backend/internal/domain/investment"
	"finvault-backend/internal/domain/loan"
	"finvault-backend/internal/domain/notification"
	"finvault-backend/internal/domain/wallet"
)

// Repos bundles transaction-bound repositories. Inside WithinTx every
// repository writes through the same database transaction.
type Repos struct {
	Wallets       wallet.Repository
	Transactions  wallet.TransactionRepository
	Investments   investment.Repository
	Plans         investment.PlanRepository
	Loans         loan.Repository
	Products      loan.ProductRepository
	Notifications notification.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the wallet row first, then pass it in
	WithinWalletTx(ctx context.Context, userID string, fn func(r Repos, w *wallet.Wallet) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
