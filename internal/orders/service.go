package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/internal/finance"
	"github.com/omarkhalil/framecraft-backend/internal/serial"
	"github.com/omarkhalil/framecraft-backend/pkg/db"
	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// TransactionPurger removes the ledger transactions referencing an order
// serial when the order itself is deleted.
type TransactionPurger interface {
	PurgeByOrderSerial(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, serial string) error
}

// Service is the single entry point every order mutation goes through. It
// owns the primary-authoritative, mirror-best-effort policy: the order and
// its items commit transactionally, the admin mirror is replayed afterwards
// and a mirror failure is logged, never surfaced.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*OrderList, error)
	UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, tenantID, orderID uuid.UUID) error
}

type service struct {
	repo         Repository
	tx           txRunner
	serials      serial.Generator
	transactions TransactionPurger
	logg         *logger.Logger
	now          func() time.Time
}

// NewService builds the order coordinator with the required dependencies.
func NewService(repo Repository, tx txRunner, serials serial.Generator, transactions TransactionPurger, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if serials == nil {
		return nil, fmt.Errorf("serial generator required")
	}
	if transactions == nil {
		return nil, fmt.Errorf("transaction purger required")
	}
	return &service{
		repo:         repo,
		tx:           tx,
		serials:      serials,
		transactions: transactions,
		logg:         logg,
		now:          time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if err := ValidateCreateOrder(input); err != nil {
		return nil, err
	}

	source := input.Source
	if !source.IsValid() {
		source = enums.OrderSourceDashboard
	}

	finItems := make([]finance.Item, 0, len(input.Items))
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		fin := finance.Item{
			Quantity:     in.Quantity,
			Cost:         in.Cost,
			Price:        in.Price,
			ItemDiscount: in.ItemDiscount,
		}
		finItems = append(finItems, fin)
		items = append(items, models.OrderItem{
			ProductType:  in.ProductType,
			Size:         in.Size,
			Quantity:     in.Quantity,
			Cost:         in.Cost,
			Price:        in.Price,
			ItemDiscount: in.ItemDiscount,
			LineTotal:    finance.LineTotal(fin),
			LineProfit:   finance.LineProfit(fin),
		})
	}

	order := &models.Order{
		TenantID:       input.TenantID,
		CustomerName:   input.CustomerName,
		Phone:          input.Phone,
		Email:          input.Email,
		DeliveryMethod: input.DeliveryMethod,
		Address:        input.Address,
		Governorate:    input.Governorate,
		PaymentMethod:  input.PaymentMethod,
		ShippingCost:   input.ShippingCost,
		Discount:       input.Discount,
		Deposit:        input.Deposit,
		Total:          finance.OrderTotal(finItems, input.ShippingCost, input.Discount, input.Deposit),
		Profit:         finance.ProfitNetOfShipping(finItems, input.ShippingCost),
		Status:         enums.OrderStatusPending,
		Source:         source,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		nextSerial, err := s.serials.WithTx(tx).Next(ctx, input.TenantID, s.now())
		if err != nil {
			return err
		}
		order.Serial = nextSerial

		if err := repo.CreateOrder(ctx, order); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order serial already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	if err := s.repo.CreateMirror(ctx, order, items); err != nil {
		s.logMirrorFailure(ctx, order.TenantID, order.Serial, "mirror_create", err)
	}

	return order, nil
}

func (s *service) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*OrderList, error) {
	list, err := s.repo.List(ctx, tenantID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	order, err := s.Get(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, tenantID, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = status

	if err := s.repo.UpdateMirrorStatus(ctx, tenantID, order.Serial, status); err != nil {
		s.logMirrorFailure(ctx, tenantID, order.Serial, "mirror_status", err)
	}

	return order, nil
}

func (s *service) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	order, err := s.Get(ctx, tenantID, orderID)
	if err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteOrder(ctx, tenantID, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		if err := s.transactions.PurgeByOrderSerial(ctx, tx, tenantID, order.Serial); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge order transactions")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.repo.DeleteMirror(ctx, tenantID, order.Serial); err != nil {
		s.logMirrorFailure(ctx, tenantID, order.Serial, "mirror_delete", err)
	}

	return nil
}

func (s *service) logMirrorFailure(ctx context.Context, tenantID uuid.UUID, serial, stage string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"tenant_id":    tenantID.String(),
		"order_serial": serial,
		"stage":        stage,
	})
	s.logg.Error(ctx, "admin mirror write failed, primary kept", err)
}
