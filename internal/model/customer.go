package model

import "time"

// Customer statuses.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Customer represents a shop customer. Password holds the bcrypt hash and is
// never serialized.
type Customer struct {
	ID            int64      `json:"id" db:"id"`
	Email         string     `json:"email" db:"email"`
	Password      string     `json:"-" db:"password"`
	FullName      string     `json:"full_name" db:"full_name"`
	Phone         *string    `json:"phone" db:"phone"`
	Address       *string    `json:"address" db:"address"`
	DateOfBirth   *time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender        *string    `json:"gender" db:"gender"`
	EmailVerified bool       `json:"email_verified" db:"email_verified"`
	PhoneVerified bool       `json:"phone_verified" db:"phone_verified"`
	Status        string     `json:"status" db:"status"`
	LastLogin     *time.Time `json:"last_login" db:"last_login"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// CustomerCreate is the payload for registering a customer. Password is the
// plaintext from the request; the service hashes it before it reaches the
// repository.
type CustomerCreate struct {
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	FullName    string     `json:"full_name"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	Status      string     `json:"status"`
}

// CustomerUpdate is a partial update payload. Nil fields are left untouched.
type CustomerUpdate struct {
	Email       *string    `json:"email"`
	Password    *string    `json:"password"`
	FullName    *string    `json:"full_name"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	Status      *string    `json:"status"`
}

// CustomerFilter selects and orders customer listings.
type CustomerFilter struct {
	Status    *string
	Search    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// CustomerStatistics is a point-in-time aggregate over the customers table.
type CustomerStatistics struct {
	TotalCustomers    int64 `json:"total_customers"`
	ActiveCustomers   int64 `json:"active_customers"`
	InactiveCustomers int64 `json:"inactive_customers"`
	VerifiedEmails    int64 `json:"verified_emails"`
	VerifiedPhones    int64 `json:"verified_phones"`
	NewToday          int64 `json:"new_today"`
	NewThisWeek       int64 `json:"new_this_week"`
	NewThisMonth      int64 `json:"new_this_month"`
}
