package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

// Repository persists the append-only transaction ledger. Rows are never
// updated; the only removal path is the order-deletion purge.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, txn *models.Transaction) error
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*TransactionList, error)
	ListAll(ctx context.Context, tenantID uuid.UUID) ([]models.Transaction, error)
	DeleteByOrderSerial(ctx context.Context, tenantID uuid.UUID, serial string) error
}

// TransactionList is one page of ledger rows plus the next-page cursor.
type TransactionList struct {
	Transactions []models.Transaction `json:"transactions"`
	NextCursor   *string              `json:"next_cursor,omitempty"`
}

// RecordTransactionInput is one new ledger entry before persistence.
type RecordTransactionInput struct {
	TenantID    uuid.UUID
	Type        enums.TransactionType
	Amount      decimal.Decimal
	Description string
	OrderSerial string
}
