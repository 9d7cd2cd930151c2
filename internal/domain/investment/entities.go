package investment

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Plan is an admin-managed template. The engine only reads it.
type Plan struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	PlanID        string    `gorm:"size:32;uniqueIndex:ux_investment_plans_plan_id" json:"plan_id"`
	Name          string    `gorm:"size:128" json:"name"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	MinAmount     float64   `gorm:"type:decimal(18,2)" json:"min_amount"`
	MaxAmount     float64   `gorm:"type:decimal(18,2)" json:"max_amount"`
	ROIPercentage float64   `gorm:"column:roi_percentage;type:decimal(6,2)" json:"roi_percentage"`
	DurationDays  int       `json:"duration_days"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Plan) TableName() string { return "investment_plans" }

// Investment accrues a flat daily return on the original principal.
// CurrentValue only moves while the status is active; completion freezes it at
// the amount paid out.
type Investment struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	InvestmentID   string    `gorm:"size:32;uniqueIndex:ux_investments_investment_id" json:"investment_id"`
	UserID         string    `gorm:"size:32;index:idx_investments_user" json:"user_id"`
	PlanID         string    `gorm:"size:32;index:idx_investments_plan" json:"plan_id"`
	Amount         float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Status         Status    `gorm:"type:enum('active','completed','cancelled');default:'active'" json:"status"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	ExpectedReturn float64   `gorm:"type:decimal(18,2)" json:"expected_return"`
	CurrentValue   float64   `gorm:"type:decimal(18,2)" json:"current_value"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Investment) TableName() string { return "investments" }
