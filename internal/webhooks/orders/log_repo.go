package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
)

// LogRepository appends webhook audit rows. They are never updated or
// deleted by the application.
type LogRepository interface {
	Create(ctx context.Context, entry *models.WebhookLog) error
	ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.WebhookLog, error)
}

type logRepository struct {
	db *gorm.DB
}

// NewLogRepository builds a webhook log repository bound to the provided DB.
func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Create(ctx context.Context, entry *models.WebhookLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *logRepository) ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.WebhookLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var rows []models.WebhookLog
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
