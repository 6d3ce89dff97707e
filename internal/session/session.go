// Package session tracks who is logged in and which screen they are
// on, and routes their actions accordingly. Identity lives only for
// the process lifetime; it is never persisted.
package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"gourmet/internal/cart"
	"gourmet/internal/models"
)

// View is the active screen.
type View string

const (
	ViewLogin        View = "login"
	ViewRegister     View = "register"
	ViewMenu         View = "menu"
	ViewCart         View = "cart"
	ViewAdmin        View = "admin"
	ViewOrderSuccess View = "order-success"
)

var (
	// ErrMissingCredentials rejects a login with an empty username or
	// password. Presence is the only check performed.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrViewForbidden rejects navigation to a screen the current
	// identity may not see.
	ErrViewForbidden = errors.New("view not allowed for current identity")
)

// adminUsername/adminPassword are the reserved admin sentinel pair.
const (
	adminUsername = "admin"
	adminPassword = "admin"
)

// Authenticator maps credentials to an identity. It exists so the
// demo behavior below can be swapped for real credential checking.
type Authenticator func(username, password string) (models.User, error)

// DemoAuth accepts any non-empty credential pair: the reserved
// admin/admin sentinel yields the fixed admin identity, everything
// else yields a fresh customer identity named after the username.
// This is a placeholder, not a security design.
func DemoAuth(username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, ErrMissingCredentials
	}
	if strings.EqualFold(username, adminUsername) && password == adminPassword {
		return models.User{ID: "admin", Username: "Quản trị viên", Role: models.RoleAdmin}, nil
	}
	return models.User{ID: uuid.NewString(), Username: username, Role: models.RoleCustomer}, nil
}

// Controller holds one user's identity, active view, and cart.
type Controller struct {
	auth Authenticator

	mu   sync.Mutex
	user *models.User
	view View
	cart *cart.Cart
}

// NewController returns a logged-out controller on the login screen.
func NewController(auth Authenticator) *Controller {
	if auth == nil {
		auth = DemoAuth
	}
	return &Controller{auth: auth, view: ViewLogin, cart: cart.New()}
}

// Login authenticates and lands the identity on its home screen:
// the dashboard for an admin, the menu for a customer.
func (c *Controller) Login(username, password string) (models.User, error) {
	user, err := c.auth(username, password)
	if err != nil {
		return models.User{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = &user
	if user.Role == models.RoleAdmin {
		c.view = ViewAdmin
	} else {
		c.view = ViewMenu
	}
	return user, nil
}

// Logout clears the identity and the cart and returns to the login
// screen.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.view = ViewLogin
	c.cart.Clear()
}

// Navigate moves to view if the current identity may see it:
// login/register only while logged out, menu/cart/order-success only
// for a customer, the dashboard only for an admin.
func (c *Controller) Navigate(view View) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.allowedLocked(view) {
		return ErrViewForbidden
	}
	c.view = view
	return nil
}

func (c *Controller) allowedLocked(view View) bool {
	switch view {
	case ViewLogin, ViewRegister:
		return c.user == nil
	case ViewMenu, ViewCart, ViewOrderSuccess:
		return c.user != nil && c.user.Role == models.RoleCustomer
	case ViewAdmin:
		return c.user != nil && c.user.Role == models.RoleAdmin
	default:
		return false
	}
}

// User returns the current identity, if any.
func (c *Controller) User() (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return models.User{}, false
	}
	return *c.user, true
}

// View returns the active screen.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Cart returns the controller's cart accumulator.
func (c *Controller) Cart() *cart.Cart {
	return c.cart
}
