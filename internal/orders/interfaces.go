package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

// Repository defines persistence operations for the order tables and their
// admin mirror. Primary writes are authoritative; the Mirror* methods are
// invoked best-effort after the primary commit.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindByID(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
	FindBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (*models.Order, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*OrderList, error)
	UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status enums.OrderStatus) error
	DeleteOrder(ctx context.Context, tenantID, orderID uuid.UUID) error

	CreateMirror(ctx context.Context, order *models.Order, items []models.OrderItem) error
	UpdateMirrorStatus(ctx context.Context, tenantID uuid.UUID, serial string, status enums.OrderStatus) error
	DeleteMirror(ctx context.Context, tenantID uuid.UUID, serial string) error
}
