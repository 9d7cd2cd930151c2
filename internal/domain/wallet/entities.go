package wallet

import (
	"time"
)

// TransactionType decides the direction of the balance mutation. Amounts are
// stored as unsigned magnitudes; the sign is derived from the type.
type TransactionType string

const (
	TypeDeposit     TransactionType = "deposit"
	TypeWithdrawal  TransactionType = "withdrawal"
	TypeInvestment  TransactionType = "investment"
	TypeLoanPayment TransactionType = "loan_payment"
	TypeInterest    TransactionType = "interest"
)

// Direction returns +1 for credit types and -1 for debit types.
func (t TransactionType) Direction() int {
	switch t {
	case TypeDeposit, TypeInterest:
		return +1
	case TypeWithdrawal, TypeInvestment, TypeLoanPayment:
		return -1
	}
	return 0
}

func (t TransactionType) Valid() bool { return t.Direction() != 0 }

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
	StatusRejected  TransactionStatus = "rejected"
)

// Wallet is the single per-user balance row. Only the ledger mutates Balance,
// always inside a transaction that also writes the movement that caused it.
type Wallet struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	WalletID  string    `gorm:"size:32;uniqueIndex:ux_wallets_wallet_id" json:"wallet_id"`
	UserID    string    `gorm:"size:32;uniqueIndex:ux_wallets_user_id" json:"user_id"`
	Balance   float64   `gorm:"type:decimal(18,2)" json:"balance"`
	Currency  string    `gorm:"size:3;default:'USD'" json:"currency"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string { return "wallets" }

// Transaction is one immutable ledger movement. Rows are never deleted; a
// rejected or failed row stays behind as the audit trail of the attempt.
type Transaction struct {
	ID              uint64            `gorm:"primaryKey;column:id" json:"-"`
	TransactionID   string            `gorm:"size:32;uniqueIndex:ux_transactions_transaction_id" json:"transaction_id"`
	UserID          string            `gorm:"size:32;index:idx_transactions_user" json:"user_id"`
	WalletID        string            `gorm:"size:32;index:idx_transactions_wallet" json:"wallet_id"`
	InvestmentID    string            `gorm:"size:32;index:idx_transactions_investment" json:"investment_id,omitempty"`
	LoanID          string            `gorm:"size:32;index:idx_transactions_loan" json:"loan_id,omitempty"`
	Type            TransactionType   `gorm:"type:enum('deposit','withdrawal','investment','loan_payment','interest')" json:"type"`
	Amount          float64           `gorm:"type:decimal(18,2)" json:"amount"`
	Status          TransactionStatus `gorm:"type:enum('pending','completed','failed','cancelled','rejected');default:'pending'" json:"status"`
	Description     string            `gorm:"type:text" json:"description,omitempty"`
	Reference       string            `gorm:"size:128;index:idx_transactions_reference" json:"reference,omitempty"`
	RejectionReason string            `gorm:"size:255" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }
