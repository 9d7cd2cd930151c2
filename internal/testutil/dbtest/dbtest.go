// Package dbtest opens in-memory sqlite databases with sqlite-safe mirrors of
// the MySQL schema. The domain models carry enum column types sqlite cannot
// migrate, so tests migrate these mirrors and run the real repositories on top.
package dbtest

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type walletSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	WalletID  string    `gorm:"size:32;uniqueIndex;column:wallet_id"`
	UserID    string    `gorm:"size:32;uniqueIndex;column:user_id"`
	Balance   float64   `gorm:"column:balance"`
	Currency  string    `gorm:"size:3;column:currency"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (walletSQLite) TableName() string { return "wallets" }

type transactionSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	TransactionID   string    `gorm:"size:32;uniqueIndex;column:transaction_id"`
	UserID          string    `gorm:"size:32;column:user_id"`
	WalletID        string    `gorm:"size:32;column:wallet_id"`
	InvestmentID    string    `gorm:"size:32;column:investment_id"`
	LoanID          string    `gorm:"size:32;column:loan_id"`
	Type            string    `gorm:"type:text;column:type"` // no enum
	Amount          float64   `gorm:"column:amount"`
	Status          string    `gorm:"type:text;column:status"` // no enum
	Description     string    `gorm:"column:description"`
	Reference       string    `gorm:"size:128;column:reference"`
	RejectionReason string    `gorm:"size:255;column:rejection_reason"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (transactionSQLite) TableName() string { return "transactions" }

type planSQLite struct {
	ID            uint64    `gorm:"primaryKey;column:id"`
	PlanID        string    `gorm:"size:32;uniqueIndex;column:plan_id"`
	Name          string    `gorm:"size:128;column:name"`
	Description   string    `gorm:"column:description"`
	MinAmount     float64   `gorm:"column:min_amount"`
	MaxAmount     float64   `gorm:"column:max_amount"`
	ROIPercentage float64   `gorm:"column:roi_percentage"`
	DurationDays  int       `gorm:"column:duration_days"`
	IsActive      bool      `gorm:"column:is_active"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (planSQLite) TableName() string { return "investment_plans" }

type investmentSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	InvestmentID   string    `gorm:"size:32;uniqueIndex;column:investment_id"`
	UserID         string    `gorm:"size:32;column:user_id"`
	PlanID         string    `gorm:"size:32;column:plan_id"`
	Amount         float64   `gorm:"column:amount"`
	Status         string    `gorm:"type:text;column:status"` // no enum
	StartDate      time.Time `gorm:"column:start_date"`
	EndDate        time.Time `gorm:"column:end_date"`
	ExpectedReturn float64   `gorm:"column:expected_return"`
	CurrentValue   float64   `gorm:"column:current_value"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (investmentSQLite) TableName() string { return "investments" }

type productSQLite struct {
	ID            uint64    `gorm:"primaryKey;column:id"`
	ProductID     string    `gorm:"size:32;uniqueIndex;column:product_id"`
	Name          string    `gorm:"size:128;column:name"`
	Description   string    `gorm:"column:description"`
	MinAmount     float64   `gorm:"column:min_amount"`
	MaxAmount     float64   `gorm:"column:max_amount"`
	InterestRate  float64   `gorm:"column:interest_rate"`
	MinTermMonths int       `gorm:"column:min_term_months"`
	MaxTermMonths int       `gorm:"column:max_term_months"`
	IsActive      bool      `gorm:"column:is_active"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (productSQLite) TableName() string { return "loan_products" }

type loanSQLite struct {
	ID              uint64     `gorm:"primaryKey;column:id"`
	LoanID          string     `gorm:"size:32;uniqueIndex;column:loan_id"`
	UserID          string     `gorm:"size:32;column:user_id"`
	ProductID       string     `gorm:"size:32;column:product_id"`
	Amount          float64    `gorm:"column:amount"`
	InterestRate    float64    `gorm:"column:interest_rate"`
	TermMonths      int        `gorm:"column:term_months"`
	Status          string     `gorm:"type:text;column:status"` // no enum
	ApplicationDate time.Time  `gorm:"column:application_date"`
	ApprovalDate    *time.Time `gorm:"column:approval_date"`
	StartDate       *time.Time `gorm:"column:start_date"`
	EndDate         *time.Time `gorm:"column:end_date"`
	TotalRepayment  float64    `gorm:"column:total_repayment"`
	MonthlyPayment  float64    `gorm:"column:monthly_payment"`
	RemainingAmount float64    `gorm:"column:remaining_amount"`
	RejectionReason string     `gorm:"size:255;column:rejection_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type notificationSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	NotificationID string    `gorm:"size:32;uniqueIndex;column:notification_id"`
	UserID         string    `gorm:"size:32;column:user_id"`
	Title          string    `gorm:"size:128;column:title"`
	Message        string    `gorm:"column:message"`
	Read           bool      `gorm:"column:read"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (notificationSQLite) TableName() string { return "notifications" }

type auditSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	EntryID    string    `gorm:"size:32;uniqueIndex;column:entry_id"`
	UserID     string    `gorm:"size:32;column:user_id"`
	Action     string    `gorm:"size:64;column:action"`
	EntityType string    `gorm:"size:32;column:entity_type"`
	EntityID   string    `gorm:"size:32;column:entity_id"`
	Details    string    `gorm:"column:details"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (auditSQLite) TableName() string { return "audit_entries" }

// Open returns an in-memory sqlite database with all tables migrated.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A second pooled connection would see its own empty :memory: database.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(
		&walletSQLite{},
		&transactionSQLite{},
		&planSQLite{},
		&investmentSQLite{},
		&productSQLite{},
		&loanSQLite{},
		&notificationSQLite{},
		&auditSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
