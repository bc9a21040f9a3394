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

var customerQueryDef = query.Definition{
	SearchColumns: []string{"full_name", "email", "phone"},
	SortColumns: map[string]string{
		"full_name":  "full_name",
		"email":      "email",
		"created_at": "created_at",
		"last_login": "last_login",
	},
	DefaultSortBy: "created_at",
	DefaultOrder:  "DESC",
}

const customerColumns = `
	id, email, password, full_name, phone, address, date_of_birth, gender,
	email_verified, phone_verified, status, last_login, created_at, updated_at
`

// customerRepository implements CustomerRepository using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID, &c.Email, &c.Password, &c.FullName, &c.Phone, &c.Address,
		&c.DateOfBirth, &c.Gender, &c.EmailVerified, &c.PhoneVerified,
		&c.Status, &c.LastLogin, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func customerConditions(qb *query.Builder, filter model.CustomerFilter) {
	if filter.Status != nil {
		qb.Equal("status", *filter.Status)
	}
	qb.Search(filter.Search, customerQueryDef.SearchColumns...)
}

// List retrieves customers matching the filter.
func (r *customerRepository) List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error) {
	qb := query.NewBuilder()
	customerConditions(qb, filter)

	sql := "SELECT " + customerColumns + " FROM customers" + qb.Where() +
		customerQueryDef.OrderBy(filter.SortBy, filter.SortOrder) +
		qb.Pagination(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, sql, qb.Args()...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	// non-nil so an empty page encodes as [] on the wire
	customers := make([]model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}
	return customers, nil
}

// Count returns the number of customers matching the filter.
func (r *customerRepository) Count(ctx context.Context, filter model.CustomerFilter) (int64, error) {
	qb := query.NewBuilder()
	customerConditions(qb, filter)

	sql := "SELECT COUNT(*) FROM customers" + qb.Where()

	var total int64
	if err := r.pool.QueryRow(ctx, sql, qb.Args()...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count customers")
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return total, nil
}

// GetByID retrieves a customer by ID, or nil when it does not exist.
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail retrieves a customer by email.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.getOne(ctx, "email = $1", email)
}

// GetByPhone retrieves a customer by phone.
func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	return r.getOne(ctx, "phone = $1", phone)
}

func (r *customerRepository) getOne(ctx context.Context, cond string, arg any) (*model.Customer, error) {
	sql := "SELECT " + customerColumns + " FROM customers WHERE " + cond

	c, err := scanCustomer(r.pool.QueryRow(ctx, sql, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	return c, nil
}

// Create inserts a customer. The payload password must already be hashed.
func (r *customerRepository) Create(ctx context.Context, payload model.CustomerCreate) (*model.Customer, error) {
	sql := `
		INSERT INTO customers (email, password, full_name, phone, address, date_of_birth, gender, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, sql,
		payload.Email, payload.Password, payload.FullName, payload.Phone,
		payload.Address, payload.DateOfBirth, payload.Gender, payload.Status,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("email", payload.Email).Msg("failed to create customer")
		return nil, translateError(err, "customer email or phone already exists")
	}

	r.logger.Debug().Int64("customer_id", id).Msg("customer created")
	return r.GetByID(ctx, id)
}

// Update writes only the non-nil fields of the payload.
func (r *customerRepository) Update(ctx context.Context, id int64, payload model.CustomerUpdate) (*model.Customer, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if payload.Email != nil {
		add("email", *payload.Email)
	}
	if payload.Password != nil {
		add("password", *payload.Password)
	}
	if payload.FullName != nil {
		add("full_name", *payload.FullName)
	}
	if payload.Phone != nil {
		add("phone", *payload.Phone)
	}
	if payload.Address != nil {
		add("address", *payload.Address)
	}
	if payload.DateOfBirth != nil {
		add("date_of_birth", *payload.DateOfBirth)
	}
	if payload.Gender != nil {
		add("gender", *payload.Gender)
	}
	if payload.Status != nil {
		add("status", *payload.Status)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE customers SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to update customer")
		return nil, translateError(err, "customer email or phone already exists")
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Delete removes a customer unless they have at least one order.
func (r *customerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var hasOrders bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM orders WHERE customer_id = $1)", id).Scan(&hasOrders)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to check customer orders")
		return false, fmt.Errorf("failed to check customer orders: %w", err)
	}
	if hasOrders {
		r.logger.Warn().Int64("customer_id", id).Msg("customer delete blocked")
		return false, model.NewConflictError("cannot delete customer with orders")
	}

	tag, err := r.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to delete customer")
		return false, fmt.Errorf("failed to delete customer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// EmailExists reports whether another customer already uses the email.
func (r *customerRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

// PhoneExists reports whether another customer already uses the phone.
func (r *customerRepository) PhoneExists(ctx context.Context, phone string, excludeID int64) (bool, error) {
	if phone == "" {
		return false, nil
	}
	return r.exists(ctx, "phone", phone, excludeID)
}

func (r *customerRepository) exists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	sql := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM customers WHERE %s = $1 AND id != $2)", column)

	var found bool
	if err := r.pool.QueryRow(ctx, sql, value, excludeID).Scan(&found); err != nil {
		r.logger.Error().Err(err).Str("column", column).Msg("failed to check customer uniqueness")
		return false, fmt.Errorf("failed to check customer uniqueness: %w", err)
	}
	return found, nil
}

// UpdateLastLogin stamps the customer's last_login with the current time.
func (r *customerRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "UPDATE customers SET last_login = NOW() WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to update last login")
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// Statistics aggregates customer counts in a single query. COALESCE is not
// needed here since COUNT never returns NULL.
func (r *customerRepository) Statistics(ctx context.Context) (*model.CustomerStatistics, error) {
	sql := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'inactive'),
			COUNT(*) FILTER (WHERE email_verified),
			COUNT(*) FILTER (WHERE phone_verified),
			COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE),
			COUNT(*) FILTER (WHERE created_at >= CURRENT_DATE - INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE created_at >= CURRENT_DATE - INTERVAL '30 days')
		FROM customers
	`

	var s model.CustomerStatistics
	err := r.pool.QueryRow(ctx, sql).Scan(
		&s.TotalCustomers, &s.ActiveCustomers, &s.InactiveCustomers,
		&s.VerifiedEmails, &s.VerifiedPhones,
		&s.NewToday, &s.NewThisWeek, &s.NewThisMonth,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customer statistics")
		return nil, fmt.Errorf("failed to query customer statistics: %w", err)
	}
	return &s, nil
}
