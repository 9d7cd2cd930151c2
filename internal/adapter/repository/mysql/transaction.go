package mysql

import (
	"context"
	"errors"
	"time"

	walletDomain "finvault-backend/internal/domain/wallet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *walletDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) Save(ctx context.Context, t *walletDomain.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*walletDomain.Transaction, error) {
	var out walletDomain.Transaction
	res := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, walletDomain.ErrTransactionNotFound
	}
	return &out, res.Error
}

// GetByTransactionIDForUpdate locks the transaction row so that two concurrent
// approvals observe each other's status change.
func (r *TransactionRepository) GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*walletDomain.Transaction, error) {
	var out walletDomain.Transaction
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("transaction_id = ?", transactionID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, walletDomain.ErrTransactionNotFound
	}
	return &out, res.Error
}

func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*walletDomain.Transaction, error) {
	var out walletDomain.Transaction
	res := r.db.WithContext(ctx).Where("reference = ?", reference).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, walletDomain.ErrTransactionNotFound
	}
	return &out, res.Error
}

func (r *TransactionRepository) ListByWalletID(ctx context.Context, walletID string, typ walletDomain.TransactionType, limit, offset int) ([]walletDomain.Transaction, error) {
	q := r.db.WithContext(ctx).Where("wallet_id = ?", walletID)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []walletDomain.Transaction
	err := q.Offset(offset).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *TransactionRepository) ListCompletedByWalletID(ctx context.Context, walletID string) ([]walletDomain.Transaction, error) {
	var out []walletDomain.Transaction
	err := r.db.WithContext(ctx).
		Where("wallet_id = ? AND status = ?", walletID, walletDomain.StatusCompleted).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *TransactionRepository) ListPendingDepositsBefore(ctx context.Context, cutoff time.Time) ([]walletDomain.Transaction, error) {
	var out []walletDomain.Transaction
	err := r.db.WithContext(ctx).
		Where("type = ? AND status = ? AND created_at < ?", walletDomain.TypeDeposit, walletDomain.StatusPending, cutoff).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
