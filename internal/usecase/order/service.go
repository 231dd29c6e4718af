package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainOrder "storefront/internal/domain/order"
	domainProduct "storefront/internal/domain/product"
	domainUser "storefront/internal/domain/user"
	"storefront/internal/logger"
	appErrors "storefront/pkg/errors"
	"storefront/pkg/utils"
)

type Service struct {
	orderRepo   domainOrder.Repository
	productRepo domainProduct.Repository
}

func NewService(orderRepo domainOrder.Repository, productRepo domainProduct.Repository) *Service {
	return &Service{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*OrderResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	now := time.Now()
	o := &domainOrder.Order{
		UserID: userID,
		ShippingInfo: domainOrder.ShippingInfo{
			Address:    req.ShippingInfo.Address,
			City:       req.ShippingInfo.City,
			PostalCode: req.ShippingInfo.PostalCode,
			Country:    req.ShippingInfo.Country,
			PhoneNo:    req.ShippingInfo.PhoneNo,
		},
		ItemsPrice:    req.ItemsPrice,
		TaxPrice:      req.TaxPrice,
		ShippingPrice: req.ShippingPrice,
		TotalPrice:    req.TotalPrice,
		PaymentID:     req.PaymentID,
		PaymentStatus: req.PaymentStatus,
		PaidAt:        &now,
		Status:        domainOrder.StatusProcessing,
	}
	for _, item := range req.Items {
		o.Items = append(o.Items, domainOrder.Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
		})
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("Order created",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("total_price", o.TotalPrice),
		zap.String("event", "order_created"),
	)

	return ToOrderResponse(o), nil
}

// Get returns the order when the requester owns it or is an admin.
func (s *Service) Get(ctx context.Context, requester *domainUser.User, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainOrder.ErrOrderNotFound) {
			return nil, appErrors.ErrOrderNotFound
		}
		return nil, err
	}

	if o.UserID != requester.ID && !requester.IsAdmin() {
		return nil, appErrors.ErrForbidden
	}

	return ToOrderResponse(o), nil
}

func (s *Service) MyOrders(ctx context.Context, userID uuid.UUID) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, ToOrderResponse(o))
	}
	return responses, nil
}

func (s *Service) GetAll(ctx context.Context) (*AdminListResponse, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &AdminListResponse{}
	for _, o := range orders {
		resp.TotalAmount += o.TotalPrice
		resp.Orders = append(resp.Orders, ToOrderResponse(o))
	}
	return resp, nil
}

// UpdateStatus advances an order. Delivering decrements stock for every
// item and stamps the delivery time; a delivered order is final.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *UpdateStatusRequest) (*OrderResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	newStatus := domainOrder.Status(req.Status)
	if !newStatus.Valid() {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid order status", domainOrder.ErrInvalidStatus)
	}

	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainOrder.ErrOrderNotFound) {
			return nil, appErrors.ErrOrderNotFound
		}
		return nil, err
	}

	if o.Status == domainOrder.StatusDelivered {
		return nil, appErrors.ErrOrderDelivered
	}

	if newStatus == domainOrder.StatusDelivered {
		for _, item := range o.Items {
			if err := s.productRepo.UpdateStock(ctx, item.ProductID, -item.Quantity); err != nil {
				logger.Error("Failed to decrement stock for delivered order",
					zap.String("order_id", o.ID.String()),
					zap.String("product_id", item.ProductID.String()),
					zap.Error(err),
				)
			}
		}
		now := time.Now()
		o.DeliveredAt = &now
	}
	o.Status = newStatus

	if err := s.orderRepo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)),
		zap.String("event", "order_status_updated"),
	)

	return ToOrderResponse(o), nil
}

func (s *Service) Delete(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, domainOrder.ErrOrderNotFound) {
			return appErrors.ErrOrderNotFound
		}
		return err
	}

	return nil
}
