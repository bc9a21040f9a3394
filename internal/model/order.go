package model

import "time"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the enumerated order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is one of the enumerated payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Order is the aggregate root of a purchase. The customer fields are a
// snapshot captured at order time and do not track later customer edits.
type Order struct {
	ID              int64         `json:"id" db:"id"`
	OrderNumber     string        `json:"order_number" db:"order_number"`
	CustomerID      *int64        `json:"customer_id" db:"customer_id"`
	CustomerName    string        `json:"customer_name" db:"customer_name"`
	CustomerEmail   string        `json:"customer_email" db:"customer_email"`
	CustomerPhone   *string       `json:"customer_phone" db:"customer_phone"`
	DeliveryAddress *string       `json:"delivery_address" db:"delivery_address"`
	OrderDate       time.Time     `json:"order_date" db:"order_date"`
	DeliveryDate    *time.Time    `json:"delivery_date" db:"delivery_date"`
	DeliveryTime    *string       `json:"delivery_time" db:"delivery_time"`
	Subtotal        float64       `json:"subtotal" db:"subtotal"`
	TaxAmount       float64       `json:"tax_amount" db:"tax_amount"`
	DeliveryFee     float64       `json:"delivery_fee" db:"delivery_fee"`
	DiscountAmount  float64       `json:"discount_amount" db:"discount_amount"`
	TotalAmount     float64       `json:"total_amount" db:"total_amount"`
	PaymentMethod   *string       `json:"payment_method" db:"payment_method"`
	PaymentStatus   PaymentStatus `json:"payment_status" db:"payment_status"`
	OrderStatus     OrderStatus   `json:"order_status" db:"order_status"`
	Notes           *string       `json:"notes" db:"notes"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
	Items           []OrderItem   `json:"items"`
}

// OrderItem is one purchased line. ProductName and UnitPrice are snapshots of
// the product at purchase time; the row never changes after creation.
type OrderItem struct {
	ID          int64   `json:"id" db:"id"`
	OrderID     int64   `json:"-" db:"order_id"`
	ProductID   *int64  `json:"product_id" db:"product_id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Quantity    int     `json:"quantity" db:"quantity"`
	UnitPrice   float64 `json:"unit_price" db:"unit_price"`
	TotalPrice  float64 `json:"total_price" db:"total_price"`
	Notes       *string `json:"notes" db:"notes"`
}

// OrderItemCreate is one line of an order-creation payload.
type OrderItemCreate struct {
	ProductID   *int64  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Notes       *string `json:"notes"`
}

// OrderCreate is the payload for creating an order with its items.
type OrderCreate struct {
	OrderNumber     string            `json:"order_number"`
	CustomerID      *int64            `json:"customer_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   *string           `json:"customer_phone"`
	DeliveryAddress *string           `json:"delivery_address"`
	OrderDate       *time.Time        `json:"order_date"`
	DeliveryDate    *time.Time        `json:"delivery_date"`
	DeliveryTime    *string           `json:"delivery_time"`
	Subtotal        float64           `json:"subtotal"`
	TaxAmount       float64           `json:"tax_amount"`
	DeliveryFee     float64           `json:"delivery_fee"`
	DiscountAmount  float64           `json:"discount_amount"`
	TotalAmount     float64           `json:"total_amount"`
	PaymentMethod   *string           `json:"payment_method"`
	PaymentStatus   string            `json:"payment_status"`
	OrderStatus     string            `json:"order_status"`
	Notes           *string           `json:"notes"`
	Items           []OrderItemCreate `json:"items"`
}

// OrderUpdate is a partial update payload for an order's own fields.
// Line items are immutable after creation and deliberately have no field here.
type OrderUpdate struct {
	CustomerName    *string    `json:"customer_name"`
	CustomerEmail   *string    `json:"customer_email"`
	CustomerPhone   *string    `json:"customer_phone"`
	DeliveryAddress *string    `json:"delivery_address"`
	DeliveryDate    *time.Time `json:"delivery_date"`
	DeliveryTime    *string    `json:"delivery_time"`
	Subtotal        *float64   `json:"subtotal"`
	TaxAmount       *float64   `json:"tax_amount"`
	DeliveryFee     *float64   `json:"delivery_fee"`
	DiscountAmount  *float64   `json:"discount_amount"`
	TotalAmount     *float64   `json:"total_amount"`
	PaymentMethod   *string    `json:"payment_method"`
	PaymentStatus   *string    `json:"payment_status"`
	OrderStatus     *string    `json:"order_status"`
	Notes           *string    `json:"notes"`
}

// OrderFilter selects and orders order listings.
type OrderFilter struct {
	CustomerID    *int64
	Status        *string
	PaymentStatus *string
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        string
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}

// OrderStatistics is a point-in-time aggregate over the orders table.
// Sums and averages are zero on an empty table, never NULL.
type OrderStatistics struct {
	TotalOrders       int64   `json:"total_orders"`
	PendingOrders     int64   `json:"pending_orders"`
	ConfirmedOrders   int64   `json:"confirmed_orders"`
	PreparingOrders   int64   `json:"preparing_orders"`
	ReadyOrders       int64   `json:"ready_orders"`
	DeliveredOrders   int64   `json:"delivered_orders"`
	CancelledOrders   int64   `json:"cancelled_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
	OrdersToday       int64   `json:"orders_today"`
	OrdersThisWeek    int64   `json:"orders_this_week"`
	OrdersThisMonth   int64   `json:"orders_this_month"`
}
