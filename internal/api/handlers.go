package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gourmet/internal/catalog"
	"gourmet/internal/models"
	"gourmet/internal/session"
	"gourmet/internal/store"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, _, err := s.sessions.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (s *Server) handleLogout(c *gin.Context) {
	user := currentUser(c)
	s.sessions.Logout(user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Catalog handlers

func (s *Server) handleMenu(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Dishes())
}

func (s *Server) handleTables(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Tables())
}

// Cart handlers

func cartResponse(ctrl *session.Controller) gin.H {
	return gin.H{
		"items":      ctrl.Cart().Items(),
		"totalPrice": ctrl.Cart().TotalPrice(),
		"count":      ctrl.Cart().Count(),
	}
}

func (s *Server) handleGetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(currentSession(c)))
}

func (s *Server) handleAddCartItem(c *gin.Context) {
	var req struct {
		DishID string `json:"dish_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, ok := catalog.DishByID(req.DishID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	ctrl := currentSession(c)
	ctrl.Cart().AddDish(dish)
	c.JSON(http.StatusOK, cartResponse(ctrl))
}

func (s *Server) handleUpdateCartItem(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctrl := currentSession(c)
	ctrl.Cart().UpdateQuantity(c.Param("id"), req.Delta)
	c.JSON(http.StatusOK, cartResponse(ctrl))
}

func (s *Server) handleRecommendation(c *gin.Context) {
	names := currentSession(c).Cart().DishNames()
	tip := <-s.rec.Suggest(c.Request.Context(), names)
	c.JSON(http.StatusOK, gin.H{"suggestion": tip})
}

// Order handlers

func (s *Server) handleSubmitOrder(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TableNumber != "" && !catalog.ValidTable(req.TableNumber) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown table"})
		return
	}

	ctrl := currentSession(c)
	user := currentUser(c)

	order, err := s.store.Submit(ctrl.Cart().Items(), req.TableNumber, user.Username)
	if err != nil {
		if errors.Is(err, store.ErrEmptyCart) || errors.Is(err, store.ErrNoTable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctrl.Cart().Clear()
	if user.Role == models.RoleCustomer {
		// Best effort; the order stands regardless of the view.
		_ = ctrl.Navigate(session.ViewOrderSuccess)
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) handleListOrders(c *gin.Context) {
	filter := models.StatusFilter(c.DefaultQuery("status", string(models.FilterAll)))
	switch filter {
	case models.FilterAll, models.FilterPending, models.FilterCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}
	c.JSON(http.StatusOK, s.store.List(filter))
}

func (s *Server) handleUpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")
	updated := s.store.UpdateStatus(id)
	c.JSON(http.StatusOK, gin.H{"id": id, "updated": updated})
}

func (s *Server) handleSummary(c *gin.Context) {
	pending, revenue := s.store.Aggregate()
	c.JSON(http.StatusOK, gin.H{
		"pendingOrders": pending,
		"totalRevenue":  revenue,
	})
}
