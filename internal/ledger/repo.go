package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a ledger repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*TransactionList, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Transaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &TransactionList{Transactions: rows}
	if len(rows) > limit {
		list.Transactions = rows[:limit]
		last := list.Transactions[limit-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		list.NextCursor = &next
	}
	return list, nil
}

func (r *repository) ListAll(ctx context.Context, tenantID uuid.UUID) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) DeleteByOrderSerial(ctx context.Context, tenantID uuid.UUID, serial string) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_serial = ?", tenantID, serial).
		Delete(&models.Transaction{}).Error
}
