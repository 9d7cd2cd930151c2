package wallet

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, w *Wallet) error
	GetByWalletID(ctx context.Context, walletID string) (*Wallet, error)
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	// ForUpdate variants lock the row for the duration of the surrounding
	// transaction; read-modify-write of Balance goes through these.
	GetByWalletIDForUpdate(ctx context.Context, walletID string) (*Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Wallet, error)
	Save(ctx context.Context, w *Wallet) error
}

type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Transaction, error)
	GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*Transaction, error)
	GetByReference(ctx context.Context, reference string) (*Transaction, error)
	Save(ctx context.Context, t *Transaction) error
	ListByWalletID(ctx context.Context, walletID string, typ TransactionType, limit, offset int) ([]Transaction, error)
	ListCompletedByWalletID(ctx context.Context, walletID string) ([]Transaction, error)
	ListPendingDepositsBefore(ctx context.Context, cutoff time.Time) ([]Transaction, error)
}
