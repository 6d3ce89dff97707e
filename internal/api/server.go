// Package api exposes the point-of-sale actions over HTTP: login,
// menu and cart for customers, order management for the admin
// dashboard, and a websocket feed pushing order changes to any open
// dashboard view.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gourmet/internal/recommend"
	"gourmet/internal/session"
	"gourmet/internal/store"
)

// Server wires the order store, session manager, and recommendation
// collaborator to the HTTP surface.
type Server struct {
	Router *gin.Engine

	store    *store.Store
	sessions *session.Manager
	rec      *recommend.Recommender
	hub      *hub

	secret   []byte
	tokenTTL time.Duration
}

// NewServer builds the router and begins broadcasting store changes
// to websocket clients.
func NewServer(st *store.Store, sessions *session.Manager, rec *recommend.Recommender, secret string, tokenTTL time.Duration) *Server {
	s := &Server{
		Router:   gin.Default(),
		store:    st,
		sessions: sessions,
		rec:      rec,
		hub:      newHub(),
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}

	s.setupRoutes()
	go s.hub.run(st.Subscribe())
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Gourmet Express POS is running"})
	})

	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		v1.POST("/login", s.handleLogin)

		// Catalog
		v1.GET("/menu", s.handleMenu)
		v1.GET("/tables", s.handleTables)

		authed := v1.Group("", s.AuthMiddleware())
		{
			authed.POST("/logout", s.handleLogout)

			// Cart
			authed.GET("/cart", s.handleGetCart)
			authed.POST("/cart/items", s.handleAddCartItem)
			authed.PATCH("/cart/items/:id", s.handleUpdateCartItem)
			authed.GET("/cart/recommendation", s.handleRecommendation)

			// Orders
			authed.POST("/orders", s.handleSubmitOrder)

			admin := authed.Group("", s.AdminOnly())
			{
				admin.GET("/orders", s.handleListOrders)
				admin.PUT("/orders/:id/status", s.handleUpdateOrderStatus)
				admin.GET("/dashboard/summary", s.handleSummary)
			}
		}
	}
}
