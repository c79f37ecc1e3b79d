package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

// User is a café customer or operator account.
type User struct {
	ID             int64           `db:"id" json:"id"`
	Username       string          `db:"username" json:"username"`
	Email          string          `db:"email" json:"email"`
	PasswordHash   string          `db:"password_hash" json:"-"`
	AccountBalance decimal.Decimal `db:"account_balance" json:"account_balance"`
	Role           string          `db:"role" json:"role"`
	IsActive       bool            `db:"is_active" json:"is_active"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}
