package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"cakeshop/internal/model"
	"cakeshop/internal/repository"

	"github.com/rs/zerolog"
)

// centTolerance absorbs float rounding when checking the totals identity.
const centTolerance = 0.005

// orderService implements OrderService. It owns the transaction around
// multi-statement order writes: either every row lands or none do.
type orderService struct {
	repo   repository.OrderRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		repo:   repo,
		logger: logger.With().Str("service", "order").Logger(),
		now:    time.Now,
	}
}

// generateOrderNumber builds "ORD" + yymmdd + a 4-digit random suffix.
// It does not guarantee uniqueness; the unique constraint on order_number
// rejects the losing insert when two calls collide.
func generateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD%s%04d", now.Format("060102"), rand.Intn(10000))
}

// validateCreate rejects a payload before any write happens.
func validateCreate(payload *model.OrderCreate) error {
	if payload.CustomerName == "" {
		return model.NewValidationError("customer name is required")
	}
	if len(payload.Items) == 0 {
		return model.NewValidationError("order must contain at least one item")
	}
	for i, item := range payload.Items {
		if item.ProductName == "" {
			return model.NewValidationError(fmt.Sprintf("item %d: product name is required", i))
		}
		if item.Quantity <= 0 {
			return model.NewValidationError(fmt.Sprintf("item %d: quantity must be greater than zero", i))
		}
		if item.UnitPrice < 0 {
			return model.NewValidationError(fmt.Sprintf("item %d: unit price cannot be negative", i))
		}
	}

	if payload.OrderStatus != "" && !model.OrderStatus(payload.OrderStatus).Valid() {
		return model.NewValidationError("invalid order status")
	}
	if payload.PaymentStatus != "" && !model.PaymentStatus(payload.PaymentStatus).Valid() {
		return model.NewValidationError("invalid payment status")
	}

	want := payload.Subtotal + payload.TaxAmount + payload.DeliveryFee - payload.DiscountAmount
	if math.Abs(payload.TotalAmount-want) > centTolerance {
		return model.NewValidationError("total amount does not match subtotal plus charges minus discount")
	}
	return nil
}

// Create atomically writes the order row and its line items in one
// transaction. On any failure the whole transaction rolls back and the
// failure propagates; no partial order is ever visible.
func (s *orderService) Create(ctx context.Context, payload model.OrderCreate) (*model.Order, error) {
	if err := validateCreate(&payload); err != nil {
		return nil, err
	}

	now := s.now()
	order := &model.Order{
		OrderNumber:     payload.OrderNumber,
		CustomerID:      payload.CustomerID,
		CustomerName:    payload.CustomerName,
		CustomerEmail:   payload.CustomerEmail,
		CustomerPhone:   payload.CustomerPhone,
		DeliveryAddress: payload.DeliveryAddress,
		OrderDate:       now,
		DeliveryDate:    payload.DeliveryDate,
		DeliveryTime:    payload.DeliveryTime,
		Subtotal:        payload.Subtotal,
		TaxAmount:       payload.TaxAmount,
		DeliveryFee:     payload.DeliveryFee,
		DiscountAmount:  payload.DiscountAmount,
		TotalAmount:     payload.TotalAmount,
		PaymentMethod:   payload.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		OrderStatus:     model.OrderStatusPending,
		Notes:           payload.Notes,
	}
	if order.OrderNumber == "" {
		order.OrderNumber = generateOrderNumber(now)
	}
	if payload.OrderDate != nil {
		order.OrderDate = *payload.OrderDate
	}
	if payload.OrderStatus != "" {
		order.OrderStatus = model.OrderStatus(payload.OrderStatus)
	}
	if payload.PaymentStatus != "" {
		order.PaymentStatus = model.PaymentStatus(payload.PaymentStatus)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.repo.CreateOrder(ctx, tx, order); err != nil {
		return nil, model.NewTransactionError("failed to create order", err)
	}

	items := make([]model.OrderItem, len(payload.Items))
	for i, item := range payload.Items {
		items[i] = model.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  float64(item.Quantity) * item.UnitPrice,
			Notes:       item.Notes,
		}
	}

	if err = s.repo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, model.NewTransactionError("failed to create order items", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, model.NewTransactionError("failed to commit order", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Int("item_count", len(items)).
		Msg("order created")

	return s.repo.GetByID(ctx, order.ID)
}

// Delete atomically removes the order's line items and then the order row.
// Either both deletes land or neither does.
func (s *orderService) Delete(ctx context.Context, id int64) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.repo.DeleteOrderItems(ctx, tx, id); err != nil {
		return model.NewTransactionError("failed to delete order items", err)
	}

	var existed bool
	if existed, err = s.repo.DeleteOrder(ctx, tx, id); err != nil {
		return model.NewTransactionError("failed to delete order", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return model.NewTransactionError("failed to commit order delete", err)
	}

	if !existed {
		return model.NewNotFoundError("order not found")
	}

	s.logger.Info().Int64("order_id", id).Msg("order deleted")
	return nil
}

func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return orders, total, nil
}

func (s *orderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if o == nil {
		return nil, model.NewNotFoundError("order not found")
	}
	return o, nil
}

// Update writes only the supplied order fields. Statuses, when present, are
// validated against their enumerations before any write.
func (s *orderService) Update(ctx context.Context, id int64, payload model.OrderUpdate) (*model.Order, error) {
	if payload.OrderStatus != nil && !model.OrderStatus(*payload.OrderStatus).Valid() {
		return nil, model.NewValidationError("invalid order status")
	}
	if payload.PaymentStatus != nil && !model.PaymentStatus(*payload.PaymentStatus).Valid() {
		return nil, model.NewValidationError("invalid payment status")
	}

	o, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, model.NewNotFoundError("order not found")
	}
	return o, nil
}

// UpdateStatus persists a new order status after validating it. Any
// enumerated value may follow any other; there is no transition graph.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	if !model.OrderStatus(status).Valid() {
		return nil, model.NewValidationError("invalid order status")
	}
	return s.Update(ctx, id, model.OrderUpdate{OrderStatus: &status})
}

// UpdatePaymentStatus persists a new payment status after validating it.
func (s *orderService) UpdatePaymentStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	if !model.PaymentStatus(status).Valid() {
		return nil, model.NewValidationError("invalid payment status")
	}
	return s.Update(ctx, id, model.OrderUpdate{PaymentStatus: &status})
}

func (s *orderService) Statistics(ctx context.Context) (*model.OrderStatistics, error) {
	return s.repo.Statistics(ctx)
}
