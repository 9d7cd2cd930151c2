package mysql

import (
	"context"

	auditDomain "finvault-backend/internal/domain/audit"
	"finvault-backend/pkg/id"

	"gorm.io/gorm"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Record(ctx context.Context, userID, action, entityType, entityID, details string) error {
	return r.db.WithContext(ctx).Create(&auditDomain.Entry{
		EntryID:    id.NewID32(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}).Error
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
