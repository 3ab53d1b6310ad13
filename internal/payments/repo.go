package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCustomerPayment(ctx context.Context, payment *models.CustomerPayment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) CreateWorkshopPayment(ctx context.Context, payment *models.WorkshopPayment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) ListCustomerPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]models.CustomerPayment, error) {
	var rows []models.CustomerPayment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListWorkshopPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]models.WorkshopPayment, error) {
	var rows []models.WorkshopPayment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumCountedCustomerPayments folds the counted rows in Go so the sum follows
// the same decimal arithmetic as the rest of the money path.
func (r *repository) SumCountedCustomerPayments(ctx context.Context, tenantID, orderID uuid.UUID) (decimal.Decimal, error) {
	rows, err := r.ListCustomerPayments(ctx, tenantID, orderID)
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, row := range rows {
		if row.Status.CountsTowardBalance() {
			sum = sum.Add(row.Amount)
		}
	}
	return sum, nil
}
