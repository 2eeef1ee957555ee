package service

import (
	"context"
	"fmt"
	"time"

	"licenseshop/internal/model"
	"licenseshop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Create creates a new pending order from an item snapshot. Item prices and
// names arrive denormalized from the cart and are stored as-is so later
// catalog edits never alter the order. The total is recomputed server-side.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(ctx, req); err != nil {
		return nil, err
	}

	var total int64
	for _, item := range req.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	if req.TotalAmount != 0 && req.TotalAmount != total {
		s.logger.Warn().
			Int64("claimed_total", req.TotalAmount).
			Int64("computed_total", total).
			Msg("order total mismatch, using computed total")
	}

	createdAt := now()
	order := &model.Order{
		ID:            uuid.New(),
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Items:         req.Items,
		TotalAmount:   total,
		Status:        model.OrderStatusPending,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Int64("total_amount", order.TotalAmount).
		Msg("order created")

	return order, nil
}

// GetByID retrieves an order by its ID.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// GetAll retrieves orders, newest first, with pagination.
func (s *orderService) GetAll(ctx context.Context, limit, offset int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get orders")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order through its lifecycle. Pending orders may be
// completed or cancelled; completed and cancelled are terminal. Completing
// an order stamps ExpiresAt with the license validity window.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !order.Status.CanTransition(status) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(order.Status)).
			Str("to", string(status)).
			Msg("rejected status transition")
		return nil, model.ErrInvalidTransition
	}

	var expiresAt *time.Time
	if status == model.OrderStatusCompleted {
		t := now().Add(model.LicenseValidity)
		expiresAt = &t
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status, expiresAt); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	order.UpdatedAt = now()
	if expiresAt != nil {
		order.ExpiresAt = expiresAt
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return order, nil
}

// validateOrderRequest validates the order request before persistence.
func (s *orderService) validateOrderRequest(ctx context.Context, req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Order request is required")
	}
	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID == 0 {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("Item %d: product ID is required", i))
		}
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Int64("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}

		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Error().Err(err).Int64("product_id", item.ProductID).Msg("failed to validate product")
			return fmt.Errorf("failed to validate products: %w", err)
		}
		if product == nil {
			return model.ErrProductNotFound
		}
	}
	return nil
}
