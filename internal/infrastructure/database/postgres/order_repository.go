package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainOrder "storefront/internal/domain/order"
	"storefront/internal/infrastructure/database/postgres/models"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domainOrder.Order) error {
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
	if o.Status == "" {
		o.Status = domainOrder.StatusProcessing
	}

	dbModel := toOrderModel(o)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	o.ID = dbModel.ID
	o.CreatedAt = dbModel.CreatedAt
	o.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*domainOrder.Order, error) {
	var dbModel models.OrderModel
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainOrder.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return toOrderEntity(&dbModel), nil
}

func (r *OrderRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domainOrder.Order, error) {
	var dbModels []models.OrderModel
	if err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}

	orders := make([]*domainOrder.Order, 0, len(dbModels))
	for i := range dbModels {
		orders = append(orders, toOrderEntity(&dbModels[i]))
	}
	return orders, nil
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*domainOrder.Order, error) {
	var dbModels []models.OrderModel
	if err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*domainOrder.Order, 0, len(dbModels))
	for i := range dbModels {
		orders = append(orders, toOrderEntity(&dbModels[i]))
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, o *domainOrder.Order) error {
	o.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":       string(o.Status),
			"delivered_at": o.DeliveredAt,
			"updated_at":   o.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainOrder.ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", orderID).
		Delete(&models.OrderModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainOrder.ErrOrderNotFound
	}

	return nil
}

func toOrderModel(o *domainOrder.Order) *models.OrderModel {
	m := &models.OrderModel{
		ID:                 o.ID,
		UserID:             o.UserID,
		ShippingAddress:    o.ShippingInfo.Address,
		ShippingCity:       o.ShippingInfo.City,
		ShippingPostalCode: o.ShippingInfo.PostalCode,
		ShippingCountry:    o.ShippingInfo.Country,
		ShippingPhoneNo:    o.ShippingInfo.PhoneNo,
		ItemsPrice:         o.ItemsPrice,
		TaxPrice:           o.TaxPrice,
		ShippingPrice:      o.ShippingPrice,
		TotalPrice:         o.TotalPrice,
		PaymentID:          o.PaymentID,
		PaymentStatus:      o.PaymentStatus,
		PaidAt:             o.PaidAt,
		Status:             string(o.Status),
		DeliveredAt:        o.DeliveredAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}

	for _, item := range o.Items {
		m.Items = append(m.Items, models.OrderItemModel{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
		})
	}

	return m
}

func toOrderEntity(m *models.OrderModel) *domainOrder.Order {
	o := &domainOrder.Order{
		ID:     m.ID,
		UserID: m.UserID,
		ShippingInfo: domainOrder.ShippingInfo{
			Address:    m.ShippingAddress,
			City:       m.ShippingCity,
			PostalCode: m.ShippingPostalCode,
			Country:    m.ShippingCountry,
			PhoneNo:    m.ShippingPhoneNo,
		},
		ItemsPrice:    m.ItemsPrice,
		TaxPrice:      m.TaxPrice,
		ShippingPrice: m.ShippingPrice,
		TotalPrice:    m.TotalPrice,
		PaymentID:     m.PaymentID,
		PaymentStatus: m.PaymentStatus,
		PaidAt:        m.PaidAt,
		Status:        domainOrder.Status(m.Status),
		DeliveredAt:   m.DeliveredAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	for _, item := range m.Items {
		o.Items = append(o.Items, domainOrder.Item{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
		})
	}

	return o
}
