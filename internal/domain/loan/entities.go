package loan

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusRejected  Status = "rejected"
	StatusClosed    Status = "closed"
	StatusDefaulted Status = "defaulted"
)

// Product is an admin-managed loan template. Read-only for the engine.
type Product struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	ProductID     string    `gorm:"size:32;uniqueIndex:ux_loan_products_product_id" json:"product_id"`
	Name          string    `gorm:"size:128" json:"name"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	MinAmount     float64   `gorm:"type:decimal(18,2)" json:"min_amount"`
	MaxAmount     float64   `gorm:"type:decimal(18,2)" json:"max_amount"`
	InterestRate  float64   `gorm:"type:decimal(6,2)" json:"interest_rate"`
	MinTermMonths int       `json:"min_term_months"`
	MaxTermMonths int       `json:"max_term_months"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "loan_products" }

// Loan carries flat interest fixed at application time. RemainingAmount grows
// with monthly interest and shrinks with payments; it must reach exactly zero
// before the loan closes.
type Loan struct {
	ID              uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string     `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID          string     `gorm:"size:32;index:idx_loans_user" json:"user_id"`
	ProductID       string     `gorm:"size:32;index:idx_loans_product" json:"product_id"`
	Amount          float64    `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate    float64    `gorm:"type:decimal(6,2)" json:"interest_rate"`
	TermMonths      int        `json:"term_months"`
	Status          Status     `gorm:"type:enum('pending','active','rejected','closed','defaulted');default:'pending'" json:"status"`
	ApplicationDate time.Time  `json:"application_date"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	TotalRepayment  float64    `gorm:"type:decimal(18,2)" json:"total_repayment"`
	MonthlyPayment  float64    `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	RemainingAmount float64    `gorm:"type:decimal(18,2)" json:"remaining_amount"`
	RejectionReason string     `gorm:"size:255" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
