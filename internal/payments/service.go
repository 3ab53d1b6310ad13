package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/internal/ledger"
	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderFinder interface {
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
}

// Service records payments against orders. A counted customer payment
// (Paid or Partial) can never exceed what is still owed on the order, and
// its ledger income row commits in the same transaction as the payment.
type Service interface {
	RecordCustomerPayment(ctx context.Context, input RecordCustomerPaymentInput) (*models.CustomerPayment, error)
	RecordWorkshopPayment(ctx context.Context, input RecordWorkshopPaymentInput) (*models.WorkshopPayment, error)
	ListCustomerPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]models.CustomerPayment, error)
	ListWorkshopPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]models.WorkshopPayment, error)
}

type service struct {
	repo       Repository
	ledgerRepo ledger.Repository
	orders     orderFinder
	tx         txRunner
}

// NewService builds the payments service.
func NewService(repo Repository, ledgerRepo ledger.Repository, orders orderFinder, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order finder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, ledgerRepo: ledgerRepo, orders: orders, tx: tx}, nil
}

func (s *service) RecordCustomerPayment(ctx context.Context, input RecordCustomerPaymentInput) (*models.CustomerPayment, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid customer payment status %q", input.Status))
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAmount, "payment amount must be positive")
	}

	order, err := s.orders.Get(ctx, input.TenantID, input.OrderID)
	if err != nil {
		return nil, err
	}

	payment := &models.CustomerPayment{
		TenantID:    input.TenantID,
		OrderID:     input.OrderID,
		OrderSerial: order.Serial,
		Amount:      input.Amount,
		Status:      input.Status,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if input.Status.CountsTowardBalance() {
			paid, err := repo.SumCountedCustomerPayments(ctx, input.TenantID, input.OrderID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum customer payments")
			}
			remaining := order.Total.Sub(paid)
			if input.Amount.GreaterThan(remaining) {
				return pkgerrors.New(pkgerrors.CodeInvalidAmount,
					fmt.Sprintf("payment %s exceeds remaining balance %s", input.Amount, remaining))
			}
		}

		if err := repo.CreateCustomerPayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist customer payment")
		}

		if input.Status.CountsTowardBalance() {
			income := &models.Transaction{
				TenantID:    input.TenantID,
				Type:        enums.TransactionTypeIncome,
				Amount:      input.Amount,
				Description: fmt.Sprintf("customer payment for order %s", order.Serial),
				OrderSerial: order.Serial,
			}
			if err := s.ledgerRepo.WithTx(tx).Create(ctx, income); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment income")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) RecordWorkshopPayment(ctx context.Context, input RecordWorkshopPaymentInput) (*models.WorkshopPayment, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid workshop payment status %q", input.Status))
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAmount, "payment amount must be positive")
	}

	order, err := s.orders.Get(ctx, input.TenantID, input.OrderID)
	if err != nil {
		return nil, err
	}

	payment := &models.WorkshopPayment{
		TenantID:    input.TenantID,
		OrderID:     input.OrderID,
		OrderSerial: order.Serial,
		Amount:      input.Amount,
		Status:      input.Status,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreateWorkshopPayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist workshop payment")
		}

		if input.Status == enums.WorkshopPaymentStatusPaid {
			expense := &models.Transaction{
				TenantID:    input.TenantID,
				Type:        enums.TransactionTypeExpense,
				Amount:      input.Amount,
				Description: fmt.Sprintf("workshop payment for order %s", order.Serial),
				OrderSerial: order.Serial,
			}
			if err := s.ledgerRepo.WithTx(tx).Create(ctx, expense); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment expense")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) ListCustomerPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]models.CustomerPayment, error) {
	rows, err := s.repo.ListCustomerPayments(ctx, tenantID, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer payments")
	}
	return rows, nil
}

func (s *service) ListWorkshopPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]models.WorkshopPayment, error) {
	rows, err := s.repo.ListWorkshopPayments(ctx, tenantID, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list workshop payments")
	}
	return rows, nil
}
