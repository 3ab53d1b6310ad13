package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
)

// Repository persists customer and workshop payment rows. Rows are
// historical facts and never mutated after insert.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCustomerPayment(ctx context.Context, payment *models.CustomerPayment) error
	CreateWorkshopPayment(ctx context.Context, payment *models.WorkshopPayment) error
	ListCustomerPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]models.CustomerPayment, error)
	ListWorkshopPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]models.WorkshopPayment, error)
	SumCountedCustomerPayments(ctx context.Context, tenantID, orderID uuid.UUID) (decimal.Decimal, error)
}

// RecordCustomerPaymentInput is one incoming customer payment.
type RecordCustomerPaymentInput struct {
	TenantID uuid.UUID
	OrderID  uuid.UUID
	Amount   decimal.Decimal
	Status   enums.CustomerPaymentStatus
}

// RecordWorkshopPaymentInput is one incoming workshop payment.
type RecordWorkshopPaymentInput struct {
	TenantID uuid.UUID
	OrderID  uuid.UUID
	Amount   decimal.Decimal
	Status   enums.WorkshopPaymentStatus
}
