package handlers

import (
	"net/http"

	"burger-house-api/middleware"
	"burger-house-api/models"
	"burger-house-api/service"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	Items           []service.MenuSelection `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string                  `json:"delivery_address" binding:"required"`
	ContactPhone    string                  `json:"contact_phone"`
	PaymentMethod   string                  `json:"payment_method"`
	Notes           string                  `json:"notes"`
}

type CreateReviewRequest struct {
	Rating          int    `json:"rating" binding:"required,min=1,max=5"`
	Comment         string `json:"comment"`
	ReviewedProduct string `json:"reviewed_product"`
}

type RedeemRequest struct {
	Points int `json:"points" binding:"required,min=1"`
}

// currentCustomer resolves the caller's loyalty profile, answering the
// request itself when there is none.
func (h *Handler) currentCustomer(c *gin.Context) (models.Customer, bool) {
	customer, err := h.svc.FindCustomerByUserID(middleware.GetUserID(c))
	if err != nil {
		h.fail(c, err)
		return models.Customer{}, false
	}
	return customer, true
}

// UpdateProfile replaces the caller's profile fields
func (h *Handler) UpdateProfile(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		return
	}
	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.svc.UpdateCustomer(c.Request.Context(), customer.ID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "customer": updated})
}

// PlaceOrder checks out menu products for delivery
func (h *Handler) PlaceOrder(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.svc.ItemsFromMenu(req.Items)
	if err != nil {
		h.fail(c, err)
		return
	}
	order, err := h.svc.CreateOrder(c.Request.Context(), service.OrderInput{
		CustomerID:      customer.ID,
		Items:           items,
		Source:          models.SourceOnline,
		KitchenNotes:    req.Notes,
		DeliveryAddress: req.DeliveryAddress,
		ContactPhone:    req.ContactPhone,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Order placed successfully",
		"order":          order,
		"points_earned":  order.Total.Floor().IntPart(),
		"estimated_time": order.EstimatedTime,
	})
}

// GetMyOrders returns all orders for the logged-in customer, newest first
func (h *Handler) GetMyOrders(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		return
	}
	orders := h.svc.OrdersByCustomer(customer.ID)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns one of the caller's orders
func (h *Handler) GetOrderDetail(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.OrderByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if order.CustomerID != customer.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder withdraws one of the caller's pending orders
func (h *Handler) CancelOrder(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.CancelOrder(c.Request.Context(), id, customer.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// CreateReview records a review; it stays hidden until an admin verifies it
func (h *Handler) CreateReview(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := h.svc.CreateReview(c.Request.Context(), service.ReviewInput{
		CustomerID:      customer.ID,
		Rating:          req.Rating,
		Comment:         req.Comment,
		ReviewedProduct: req.ReviewedProduct,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thanks! Your review is awaiting verification", "review": review})
}

// RedeemPoints spends the caller's loyalty points
func (h *Handler) RedeemPoints(c *gin.Context) {
	customer, ok := h.currentCustomer(c)
	if !ok {
		return
	}
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.svc.RedeemPoints(c.Request.Context(), customer.ID, req.Points)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Points redeemed",
		"redeemed":       req.Points,
		"loyalty_points": updated.LoyaltyPoints,
	})
}
