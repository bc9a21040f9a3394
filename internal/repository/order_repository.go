package repository

import (
	"context"
	"fmt"
	"strings"

	"cakeshop/internal/model"
	"cakeshop/internal/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var orderQueryDef = query.Definition{
	SearchColumns: []string{"o.customer_name", "o.customer_email", "o.customer_phone"},
	SortColumns: map[string]string{
		"order_number": "o.order_number",
		"order_date":   "o.order_date",
		"total_amount": "o.total_amount",
		"created_at":   "o.created_at",
	},
	DefaultSortBy: "order_date",
	DefaultOrder:  "DESC",
}

const orderColumns = `
	o.id, o.order_number, o.customer_id, o.customer_name, o.customer_email,
	o.customer_phone, o.delivery_address, o.order_date, o.delivery_date,
	o.delivery_time, o.subtotal, o.tax_amount, o.delivery_fee,
	o.discount_amount, o.total_amount, o.payment_method, o.payment_status,
	o.order_status, o.notes, o.created_at, o.updated_at
`

const orderItemColumns = `
	id, order_id, product_id, product_name, quantity, unit_price, total_price, notes
`

// orderRepository implements OrderRepository using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.CustomerEmail,
		&o.CustomerPhone, &o.DeliveryAddress, &o.OrderDate, &o.DeliveryDate,
		&o.DeliveryTime, &o.Subtotal, &o.TaxAmount, &o.DeliveryFee,
		&o.DiscountAmount, &o.TotalAmount, &o.PaymentMethod, &o.PaymentStatus,
		&o.OrderStatus, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func orderConditions(qb *query.Builder, filter model.OrderFilter) {
	if filter.CustomerID != nil {
		qb.Equal("o.customer_id", *filter.CustomerID)
	}
	if filter.Status != nil {
		qb.Equal("o.order_status", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		qb.Equal("o.payment_status", *filter.PaymentStatus)
	}
	if filter.DateFrom != nil {
		qb.AtLeast("o.order_date::date", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		qb.AtMost("o.order_date::date", *filter.DateTo)
	}
	qb.Search(filter.Search, orderQueryDef.SearchColumns...)
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, model.NewConnectionError("failed to begin transaction", err)
	}
	return tx, nil
}

// CreateOrder inserts the order row within the transaction and sets the
// generated ID on the order. An order_number collision surfaces as a
// conflict from the unique constraint, never silently.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	sql := `
		INSERT INTO orders (
			order_number, customer_id, customer_name, customer_email,
			customer_phone, delivery_address, order_date, delivery_date,
			delivery_time, subtotal, tax_amount, delivery_fee, discount_amount,
			total_amount, payment_method, payment_status, order_status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, sql,
		order.OrderNumber, order.CustomerID, order.CustomerName, order.CustomerEmail,
		order.CustomerPhone, order.DeliveryAddress, order.OrderDate, order.DeliveryDate,
		order.DeliveryTime, order.Subtotal, order.TaxAmount, order.DeliveryFee,
		order.DiscountAmount, order.TotalAmount, order.PaymentMethod,
		order.PaymentStatus, order.OrderStatus, order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to create order")
		return translateError(err, "order number already exists")
	}

	r.logger.Debug().Int64("order_id", order.ID).Str("order_number", order.OrderNumber).Msg("order created")
	return nil
}

// CreateOrderItems batch-inserts line items within the transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	sql := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, total_price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(sql, item.OrderID, item.ProductID, item.ProductName,
			item.Quantity, item.UnitPrice, item.TotalPrice, item.Notes)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range items {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", items[i].OrderID).
				Str("product_name", items[i].ProductName).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().Int("count", len(items)).Msg("order items created")
	return nil
}

// DeleteOrderItems removes all line items of an order within the transaction.
func (r *orderRepository) DeleteOrderItems(ctx context.Context, tx pgx.Tx, orderID int64) error {
	_, err := tx.Exec(ctx, "DELETE FROM order_items WHERE order_id = $1", orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to delete order items")
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	return nil
}

// DeleteOrder removes the order row within the transaction.
func (r *orderRepository) DeleteOrder(ctx context.Context, tx pgx.Tx, orderID int64) (bool, error) {
	tag, err := tx.Exec(ctx, "DELETE FROM orders WHERE id = $1", orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByID retrieves an order with its items, or nil when it does not exist.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	sql := "SELECT " + orderColumns + " FROM orders o WHERE o.id = $1"

	o, err := scanOrder(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.itemsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	return o, nil
}

// List retrieves orders matching the filter, each with its items attached.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	qb := query.NewBuilder()
	orderConditions(qb, filter)

	sql := "SELECT " + orderColumns + " FROM orders o" + qb.Where() +
		orderQueryDef.OrderBy(filter.SortBy, filter.SortOrder) +
		qb.Pagination(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, sql, qb.Args()...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	// non-nil so an empty page encodes as [] on the wire
	orders := make([]model.Order, 0)
	var ids []int64
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []model.OrderItem{}
		}
	}
	return orders, nil
}

// itemsFor loads the line items of the given orders in one query.
func (r *orderRepository) itemsFor(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	sql := "SELECT " + orderItemColumns + " FROM order_items WHERE order_id = ANY($1) ORDER BY id"

	rows, err := r.pool.Query(ctx, sql, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]model.OrderItem)
	for rows.Next() {
		var it model.OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return items, nil
}

// Count returns the number of orders matching the filter.
func (r *orderRepository) Count(ctx context.Context, filter model.OrderFilter) (int64, error) {
	qb := query.NewBuilder()
	orderConditions(qb, filter)

	sql := "SELECT COUNT(*) FROM orders o" + qb.Where()

	var total int64
	if err := r.pool.QueryRow(ctx, sql, qb.Args()...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

// Update writes only the non-nil fields of the payload. Line items are never
// touched here; they are immutable after creation.
func (r *orderRepository) Update(ctx context.Context, id int64, payload model.OrderUpdate) (*model.Order, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if payload.CustomerName != nil {
		add("customer_name", *payload.CustomerName)
	}
	if payload.CustomerEmail != nil {
		add("customer_email", *payload.CustomerEmail)
	}
	if payload.CustomerPhone != nil {
		add("customer_phone", *payload.CustomerPhone)
	}
	if payload.DeliveryAddress != nil {
		add("delivery_address", *payload.DeliveryAddress)
	}
	if payload.DeliveryDate != nil {
		add("delivery_date", *payload.DeliveryDate)
	}
	if payload.DeliveryTime != nil {
		add("delivery_time", *payload.DeliveryTime)
	}
	if payload.Subtotal != nil {
		add("subtotal", *payload.Subtotal)
	}
	if payload.TaxAmount != nil {
		add("tax_amount", *payload.TaxAmount)
	}
	if payload.DeliveryFee != nil {
		add("delivery_fee", *payload.DeliveryFee)
	}
	if payload.DiscountAmount != nil {
		add("discount_amount", *payload.DiscountAmount)
	}
	if payload.TotalAmount != nil {
		add("total_amount", *payload.TotalAmount)
	}
	if payload.PaymentMethod != nil {
		add("payment_method", *payload.PaymentMethod)
	}
	if payload.PaymentStatus != nil {
		add("payment_status", *payload.PaymentStatus)
	}
	if payload.OrderStatus != nil {
		add("order_status", *payload.OrderStatus)
	}
	if payload.Notes != nil {
		add("notes", *payload.Notes)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Statistics aggregates order counts and revenue in a single query. Sums and
// averages are COALESCEd so an empty table yields zeros, not NULLs.
func (r *orderRepository) Statistics(ctx context.Context) (*model.OrderStatistics, error) {
	sql := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE order_status = 'pending'),
			COUNT(*) FILTER (WHERE order_status = 'confirmed'),
			COUNT(*) FILTER (WHERE order_status = 'preparing'),
			COUNT(*) FILTER (WHERE order_status = 'ready'),
			COUNT(*) FILTER (WHERE order_status = 'delivered'),
			COUNT(*) FILTER (WHERE order_status = 'cancelled'),
			COALESCE(SUM(total_amount), 0),
			COALESCE(AVG(total_amount), 0),
			COUNT(*) FILTER (WHERE order_date::date = CURRENT_DATE),
			COUNT(*) FILTER (WHERE order_date >= CURRENT_DATE - INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE order_date >= CURRENT_DATE - INTERVAL '30 days')
		FROM orders
	`

	var s model.OrderStatistics
	err := r.pool.QueryRow(ctx, sql).Scan(
		&s.TotalOrders, &s.PendingOrders, &s.ConfirmedOrders, &s.PreparingOrders,
		&s.ReadyOrders, &s.DeliveredOrders, &s.CancelledOrders,
		&s.TotalRevenue, &s.AverageOrderValue,
		&s.OrdersToday, &s.OrdersThisWeek, &s.OrdersThisMonth,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order statistics")
		return nil, fmt.Errorf("failed to query order statistics: %w", err)
	}
	return &s, nil
}
