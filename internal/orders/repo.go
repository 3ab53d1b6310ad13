package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit("Items").Create(order).Error
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND serial = ?", tenantID, serial).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*OrderList, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Preload("Items").
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

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	list := &OrderList{Orders: orders}
	if len(orders) > limit {
		list.Orders = orders[:limit]
		last := list.Orders[limit-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		list.NextCursor = &next
	}
	return list, nil
}

func (r *repository) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status enums.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteOrder(ctx context.Context, tenantID, orderID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		Delete(&models.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateMirror(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	mirror := mirrorFromOrder(order)
	if err := r.db.WithContext(ctx).Omit("Items").Create(mirror).Error; err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}
	mirrorItems := make([]models.AdminOrderItem, 0, len(items))
	for _, item := range items {
		mirrorItems = append(mirrorItems, models.AdminOrderItem{
			ID:           uuid.New(),
			AdminOrderID: mirror.ID,
			ProductType:  item.ProductType,
			Size:         item.Size,
			Quantity:     item.Quantity,
			Cost:         item.Cost,
			Price:        item.Price,
			ItemDiscount: item.ItemDiscount,
			LineTotal:    item.LineTotal,
			LineProfit:   item.LineProfit,
		})
	}
	return r.db.WithContext(ctx).Create(&mirrorItems).Error
}

func (r *repository) UpdateMirrorStatus(ctx context.Context, tenantID uuid.UUID, serial string, status enums.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.AdminOrder{}).
		Where("tenant_id = ? AND serial = ?", tenantID, serial).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteMirror(ctx context.Context, tenantID uuid.UUID, serial string) error {
	var mirror models.AdminOrder
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND serial = ?", tenantID, serial).
		First(&mirror).Error
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("admin_order_id = ?", mirror.ID).
		Delete(&models.AdminOrderItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&mirror).Error
}

func mirrorFromOrder(order *models.Order) *models.AdminOrder {
	return &models.AdminOrder{
		ID:             uuid.New(),
		TenantID:       order.TenantID,
		Serial:         order.Serial,
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		Email:          order.Email,
		DeliveryMethod: order.DeliveryMethod,
		Address:        order.Address,
		Governorate:    order.Governorate,
		PaymentMethod:  order.PaymentMethod,
		ShippingCost:   order.ShippingCost,
		Discount:       order.Discount,
		Deposit:        order.Deposit,
		Total:          order.Total,
		Profit:         order.Profit,
		Status:         order.Status,
		Source:         order.Source,
	}
}
