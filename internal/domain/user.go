package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes storefront customers from catalog administrators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the session identity held by the session store. Credentials never
// enter this layer; an external collaborator authenticates and hands over the
// user together with an opaque token.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
