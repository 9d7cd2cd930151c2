package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"finvault-backend/internal/domain/audit"
	"finvault-backend/internal/domain/notification"
	"finvault-backend/internal/domain/uow"
	walletDomain "finvault-backend/internal/domain/wallet"
	"finvault-backend/pkg/id"
	"finvault-backend/pkg/money"

	"github.com/google/uuid"
)

// Usecase is the wallet ledger: it owns every balance mutation in the system.
// The investment and loan engines post their movements through Post inside
// their own units of work; nothing else touches wallet.Balance.
type Usecase struct {
	uow          uow.UnitOfWork
	wallets      walletDomain.Repository
	transactions walletDomain.TransactionRepository
	notifier     notification.Dispatcher
	auditor      audit.Recorder
}

func NewUsecase(u uow.UnitOfWork, wallets walletDomain.Repository, transactions walletDomain.TransactionRepository, notifier notification.Dispatcher, auditor audit.Recorder) *Usecase {
	return &Usecase{uow: u, wallets: wallets, transactions: transactions, notifier: notifier, auditor: auditor}
}

// PostInput describes one ledger movement. Amount is an unsigned magnitude;
// the direction comes from Type. Hold leaves the transaction pending for a
// later Approve/Reject instead of completing it immediately.
type PostInput struct {
	UserID       string
	WalletID     string
	Amount       float64
	Type         walletDomain.TransactionType
	Description  string
	Reference    string
	InvestmentID string
	LoanID       string
	Hold         bool
}

// Post writes one movement on transaction-bound repos. The caller must already
// be inside a unit of work; the wallet row is locked here and the balance
// change commits or rolls back together with the transaction row. Completed
// debits re-check solvency under the lock.
func Post(ctx context.Context, r uow.Repos, in PostInput) (*walletDomain.Transaction, error) {
	if !in.Type.Valid() {
		return nil, walletDomain.ErrUnknownType
	}
	amount := money.Round2(math.Abs(in.Amount))
	if amount <= 0 {
		return nil, walletDomain.ErrNonPositiveAmount
	}

	w, err := r.Wallets.GetByWalletIDForUpdate(ctx, in.WalletID)
	if err != nil {
		return nil, err
	}

	reference := in.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	txn := &walletDomain.Transaction{
		TransactionID: id.NewID32(),
		UserID:        in.UserID,
		WalletID:      w.WalletID,
		InvestmentID:  in.InvestmentID,
		LoanID:        in.LoanID,
		Type:          in.Type,
		Amount:        amount,
		Status:        walletDomain.StatusPending,
		Description:   in.Description,
		Reference:     reference,
	}

	if !in.Hold {
		if err := applyDelta(ctx, r, w, txn); err != nil {
			return nil, err
		}
	}
	if err := r.Transactions.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// applyDelta flips the transaction to completed and mutates the locked wallet.
// Exactly one call per transaction lifetime.
func applyDelta(ctx context.Context, r uow.Repos, w *walletDomain.Wallet, txn *walletDomain.Transaction) error {
	if txn.Type.Direction() < 0 && w.Balance < txn.Amount {
		return &walletDomain.InsufficientBalanceError{Available: w.Balance, Requested: txn.Amount}
	}
	w.Balance = money.Round2(w.Balance + float64(txn.Type.Direction())*txn.Amount)
	if err := r.Wallets.Save(ctx, w); err != nil {
		return err
	}
	txn.Status = walletDomain.StatusCompleted
	return nil
}

// CreateTransaction runs Post in its own unit of work.
func (s *Usecase) CreateTransaction(ctx context.Context, in PostInput) (*walletDomain.Transaction, error) {
	var out *walletDomain.Transaction
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		txn, err := Post(ctx, r, in)
		if err != nil {
			return err
		}
		out = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, in.UserID, "transaction.create", out)
	return out, nil
}

// ApproveTransaction completes a pending transaction and applies the balance
// delta, exactly once. A non-pending transaction is not approvable: the call
// is a no-op and returns (nil, nil).
func (s *Usecase) ApproveTransaction(ctx context.Context, transactionID string) (*walletDomain.Transaction, error) {
	var out *walletDomain.Transaction
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		txn, err := r.Transactions.GetByTransactionIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn.Status != walletDomain.StatusPending {
			return nil
		}
		w, err := r.Wallets.GetByWalletIDForUpdate(ctx, txn.WalletID)
		if err != nil {
			return err
		}
		if err := applyDelta(ctx, r, w, txn); err != nil {
			return err
		}
		if err := r.Transactions.Save(ctx, txn); err != nil {
			return err
		}
		out = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out != nil {
		s.audit(ctx, out.UserID, "transaction.approve", out)
	}
	return out, nil
}

// RejectTransaction moves a pending transaction to rejected without touching
// the balance (no credit or debit ever happened for it). Non-pending rows are
// a no-op, returning (nil, nil).
func (s *Usecase) RejectTransaction(ctx context.Context, transactionID, reason string) (*walletDomain.Transaction, error) {
	var out *walletDomain.Transaction
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		txn, err := r.Transactions.GetByTransactionIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn.Status != walletDomain.StatusPending {
			return nil
		}
		txn.Status = walletDomain.StatusRejected
		txn.RejectionReason = reason
		if err := r.Transactions.Save(ctx, txn); err != nil {
			return err
		}
		out = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out != nil {
		s.audit(ctx, out.UserID, "transaction.reject", out)
	}
	return out, nil
}

// ExternalDepositInput comes from the crypto provider boundary after signature
// verification; the core trusts it.
type ExternalDepositInput struct {
	UserID            string
	Amount            float64
	Currency          string
	ExternalReference string
}

// RecordExternalDeposit turns a confirmed provider deposit into a completed
// deposit transaction. The reference lookup runs inside the wallet transaction,
// after the row lock, so concurrent redeliveries of the same external reference
// serialize and all return the first recorded transaction instead of crediting
// again.
func (s *Usecase) RecordExternalDeposit(ctx context.Context, in ExternalDepositInput) (*walletDomain.Transaction, error) {
	var out *walletDomain.Transaction
	var replayed bool
	err := s.uow.WithinWalletTx(ctx, in.UserID, func(r uow.Repos, w *walletDomain.Wallet) error {
		if in.ExternalReference != "" {
			existing, err := r.Transactions.GetByReference(ctx, in.ExternalReference)
			switch {
			case err == nil:
				out, replayed = existing, true
				return nil
			case !errors.Is(err, walletDomain.ErrTransactionNotFound):
				return err
			}
		}
		txn, err := Post(ctx, r, PostInput{
			UserID:      in.UserID,
			WalletID:    w.WalletID,
			Amount:      in.Amount,
			Type:        walletDomain.TypeDeposit,
			Description: fmt.Sprintf("Crypto deposit %.2f %s", in.Amount, in.Currency),
			Reference:   in.ExternalReference,
		})
		if err != nil {
			return err
		}
		out = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		return out, nil
	}
	s.notify(ctx, in.UserID, "Deposit Received", fmt.Sprintf("Your deposit of %.2f %s has been credited to your wallet.", out.Amount, in.Currency))
	s.audit(ctx, in.UserID, "transaction.external_deposit", out)
	return out, nil
}

// BatchResult aggregates a scheduler-driven sweep.
type BatchResult struct {
	Processed int
	Failed    int
}

// CancelStaleDeposits expires pending deposit transactions older than maxAge.
// Each row is its own unit of work; one failure never aborts the sweep.
func (s *Usecase) CancelStaleDeposits(ctx context.Context, maxAge time.Duration) (BatchResult, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	stale, err := s.transactions.ListPendingDepositsBefore(ctx, cutoff)
	if err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	for i := range stale {
		txnID := stale[i].TransactionID
		err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
			txn, err := r.Transactions.GetByTransactionIDForUpdate(ctx, txnID)
			if err != nil {
				return err
			}
			if txn.Status != walletDomain.StatusPending {
				return nil
			}
			txn.Status = walletDomain.StatusCancelled
			txn.RejectionReason = "deposit expired"
			return r.Transactions.Save(ctx, txn)
		})
		if err != nil {
			log.Printf("ledger: cancel stale deposit %s: %v", txnID, err)
			res.Failed++
			continue
		}
		res.Processed++
		s.notify(ctx, stale[i].UserID, "Deposit Order Expired",
			fmt.Sprintf("Your deposit order of %.2f has expired. Please create a new order if you still wish to deposit.", stale[i].Amount))
	}
	return res, nil
}

func (s *Usecase) GetWallet(ctx context.Context, walletID string) (*walletDomain.Wallet, error) {
	return s.wallets.GetByWalletID(ctx, walletID)
}

func (s *Usecase) GetWalletByUserID(ctx context.Context, userID string) (*walletDomain.Wallet, error) {
	return s.wallets.GetByUserID(ctx, userID)
}

func (s *Usecase) ListWalletTransactions(ctx context.Context, walletID string, typ walletDomain.TransactionType, limit, offset int) ([]walletDomain.Transaction, error) {
	return s.transactions.ListByWalletID(ctx, walletID, typ, limit, offset)
}

// CreateWallet provisions the one-per-user wallet at registration time.
func (s *Usecase) CreateWallet(ctx context.Context, userID, currency string) (*walletDomain.Wallet, error) {
	if currency == "" {
		currency = "USD"
	}
	w := &walletDomain.Wallet{WalletID: id.NewID32(), UserID: userID, Currency: currency}
	if err := s.wallets.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Usecase) notify(ctx context.Context, userID, title, message string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, title, message)
	}
}

func (s *Usecase) audit(ctx context.Context, userID, action string, txn *walletDomain.Transaction) {
	if s.auditor == nil {
		return
	}
	details := fmt.Sprintf(`{"type":%q,"amount":%.2f,"status":%q}`, txn.Type, txn.Amount, txn.Status)
	if err := s.auditor.Record(ctx, userID, action, "transaction", txn.TransactionID, details); err != nil {
		log.Printf("ledger: audit %s for transaction %s: %v", action, txn.TransactionID, err)
	}
}
