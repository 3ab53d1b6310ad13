package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

// Service exposes the tenant cash ledger. Entries are append-only: income
// raises the balance, expense lowers it, and the balance itself is always
// recomputed from the rows so the fold stays order-independent.
type Service interface {
	Record(ctx context.Context, input RecordTransactionInput) (*models.Transaction, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*TransactionList, error)
	Balance(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	PurgeByOrderSerial(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, serial string) error
}

type service struct {
	repo Repository
}

// NewService builds the ledger service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, input RecordTransactionInput) (*models.Transaction, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction type %q", input.Type))
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAmount, "transaction amount must be positive")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	txn := &models.Transaction{
		TenantID:    input.TenantID,
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
		OrderSerial: input.OrderSerial,
	}
	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist transaction")
	}
	return txn, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*TransactionList, error) {
	list, err := s.repo.List(ctx, tenantID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return list, nil
}

// Balance folds the tenant's rows into income minus expense. Rows with an
// unknown type count as zero rather than aborting the fold.
func (s *service) Balance(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	rows, err := s.repo.ListAll(ctx, tenantID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transactions")
	}

	balance := decimal.Zero
	for _, row := range rows {
		switch row.Type {
		case enums.TransactionTypeIncome:
			balance = balance.Add(row.Amount)
		case enums.TransactionTypeExpense:
			balance = balance.Sub(row.Amount)
		}
	}
	return balance, nil
}

func (s *service) PurgeByOrderSerial(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, serial string) error {
	if strings.TrimSpace(serial) == "" {
		return nil
	}
	return s.repo.WithTx(tx).DeleteByOrderSerial(ctx, tenantID, serial)
}
