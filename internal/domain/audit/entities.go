package audit

import (
	"context"
	"time"
)

// Entry is one traceability row written after a ledger mutation. It is not part
// of the mutation's own correctness; a failed write is logged and dropped.
type Entry struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	EntryID    string    `gorm:"size:32;uniqueIndex:ux_audit_entries_entry_id" json:"entry_id"`
	UserID     string    `gorm:"size:32;index:idx_audit_entries_user" json:"user_id"`
	Action     string    `gorm:"size:64" json:"action"`
	EntityType string    `gorm:"size:32" json:"entity_type"`
	EntityID   string    `gorm:"size:32;index:idx_audit_entries_entity" json:"entity_id"`
	Details    string    `gorm:"type:text" json:"details,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "audit_entries" }

type Recorder interface {
	Record(ctx context.Context, userID, action, entityType, entityID, details string) error
}
