package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gourmet/internal/models"
	"gourmet/internal/recommend"
	"gourmet/internal/session"
	"gourmet/internal/storage"
	"gourmet/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := storage.NewFileRepository(filepath.Join(t.TempDir(), "gourmet_orders.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st, err := store.New(ctx, repo)
	require.NoError(t, err)

	return NewServer(st, session.NewManager(nil), recommend.New(nil), "test-secret", time.Hour)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, s *Server, username, password string) (string, models.User) {
	t.Helper()

	w := doJSON(t, s, http.MethodPost, "/api/v1/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMenuAndTablesArePublic(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dishes []models.Dish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dishes))
	assert.Len(t, dishes, 6)

	w = doJSON(t, s, http.MethodGet, "/api/v1/tables", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tables []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tables))
	assert.Contains(t, tables, "Bàn 01")
	assert.Contains(t, tables, "Mang về")
}

func TestCartRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/v1/login", "", gin.H{"username": "lan"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRoles(t *testing.T) {
	s := newTestServer(t)

	_, admin := login(t, s, "admin", "admin")
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "Quản trị viên", admin.Username)

	_, customer := login(t, s, "lan", "x")
	assert.Equal(t, models.RoleCustomer, customer.Role)
	assert.Equal(t, "lan", customer.Username)
}

func TestCustomerOrderFlow(t *testing.T) {
	s := newTestServer(t)
	token, _ := login(t, s, "lan", "x")

	// Two Phở Bò, one Bánh Mì.
	for _, dishID := range []string{"1", "1", "5"} {
		w := doJSON(t, s, http.MethodPost, "/api/v1/cart/items", token, gin.H{"dish_id": dishID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := doJSON(t, s, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cartResp struct {
		Items      []models.OrderItem `json:"items"`
		TotalPrice int64              `json:"totalPrice"`
		Count      int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Len(t, cartResp.Items, 2)
	assert.Equal(t, int64(155000), cartResp.TotalPrice)
	assert.Equal(t, 3, cartResp.Count)

	// Without a model the recommendation degrades to the fallback.
	w = doJSON(t, s, http.MethodGet, "/api/v1/cart/recommendation", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), recommend.Fallback)

	w = doJSON(t, s, http.MethodPost, "/api/v1/orders", token, gin.H{"table_number": "Bàn 01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, int64(155000), order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "lan", order.CustomerName)

	// Submission empties the cart.
	w = doJSON(t, s, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Items)
}

func TestSubmitValidation(t *testing.T) {
	s := newTestServer(t)
	token, _ := login(t, s, "lan", "x")

	// Empty cart.
	w := doJSON(t, s, http.MethodPost, "/api/v1/orders", token, gin.H{"table_number": "Bàn 01"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// No table selected.
	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", token, gin.H{"dish_id": "1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders", token, gin.H{"table_number": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown table.
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders", token, gin.H{"table_number": "Bàn 99"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAddUnknownDish(t *testing.T) {
	s := newTestServer(t)
	token, _ := login(t, s, "lan", "x")

	w := doJSON(t, s, http.MethodPost, "/api/v1/cart/items", token, gin.H{"dish_id": "999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminDashboardFlow(t *testing.T) {
	s := newTestServer(t)

	custToken, _ := login(t, s, "lan", "x")
	w := doJSON(t, s, http.MethodPost, "/api/v1/cart/items", custToken, gin.H{"dish_id": "1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders", custToken, gin.H{"table_number": "Bàn 02"})
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	// Customers may not reach the dashboard.
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders", custToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, _ := login(t, s, "admin", "admin")

	w = doJSON(t, s, http.MethodGet, "/api/v1/orders?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, order.ID, pending[0].ID)

	w = doJSON(t, s, http.MethodPut, "/api/v1/orders/"+order.ID+"/status", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":true`)

	// Idempotent: a second transition is a no-op.
	w = doJSON(t, s, http.MethodPut, "/api/v1/orders/"+order.ID+"/status", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":false`)

	w = doJSON(t, s, http.MethodGet, "/api/v1/dashboard/summary", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		PendingOrders int   `json:"pendingOrders"`
		TotalRevenue  int64 `json:"totalRevenue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 0, summary.PendingOrders)
	assert.Equal(t, int64(65000), summary.TotalRevenue)
}

func TestListOrdersRejectsUnknownFilter(t *testing.T) {
	s := newTestServer(t)
	adminToken, _ := login(t, s, "admin", "admin")

	w := doJSON(t, s, http.MethodGet, "/api/v1/orders?status=bogus", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidTokenRejected(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/v1/cart", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	s := newTestServer(t)
	token, _ := login(t, s, "lan", "x")

	w := doJSON(t, s, http.MethodPost, "/api/v1/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The token still parses but its session is gone.
	w = doJSON(t, s, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
