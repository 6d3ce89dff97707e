package session

import (
	"sync"

	"gourmet/internal/models"
)

// Manager keeps one Controller per authenticated user for the HTTP
// surface, where requests arrive stateless and the session has to be
// looked up by identity.
type Manager struct {
	auth Authenticator

	mu       sync.Mutex
	sessions map[string]*Controller
}

// NewManager builds a manager using auth (DemoAuth when nil).
func NewManager(auth Authenticator) *Manager {
	if auth == nil {
		auth = DemoAuth
	}
	return &Manager{auth: auth, sessions: make(map[string]*Controller)}
}

// Login creates a session for the supplied credentials and returns
// the identity with its controller.
func (m *Manager) Login(username, password string) (models.User, *Controller, error) {
	ctrl := NewController(m.auth)
	user, err := ctrl.Login(username, password)
	if err != nil {
		return models.User{}, nil, err
	}

	m.mu.Lock()
	m.sessions[user.ID] = ctrl
	m.mu.Unlock()
	return user, ctrl, nil
}

// Get returns the controller for userID, if a session exists.
func (m *Manager) Get(userID string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctrl, ok := m.sessions[userID]
	return ctrl, ok
}

// Logout tears down the session for userID, clearing its cart.
func (m *Manager) Logout(userID string) {
	m.mu.Lock()
	ctrl, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if ok {
		ctrl.Logout()
	}
}
