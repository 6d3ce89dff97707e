package models

// Role determines which actions an identity may perform: any
// logged-in identity may edit its cart and submit orders, only an
// admin may change order status.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the current authenticated identity. It lives for the
// duration of a session and is never persisted.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
