package postgres

import (
	"context"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal/audit"

	auditDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, attempt *auditDatamodel.AccessAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}
