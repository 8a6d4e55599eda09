package handlers

import (
	"net/http"

	"burger-house-api/models"
	"burger-house-api/service"
	"burger-house-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
)

type UpdateOrderStatusRequest struct {
	Status        models.OrderStatus `json:"status" binding:"required"`
	EstimatedTime *string            `json:"estimated_time"`
	KitchenNotes  *string            `json:"kitchen_notes"`
}

type ComandaRequest struct {
	CustomerCode string                  `json:"customer_code"`
	Items        []service.MenuSelection `json:"items" binding:"required,min=1,dive"`
	KitchenNotes string                  `json:"kitchen_notes"`
}

// GetKitchenOrders lists orders for the kitchen board, optionally one status
func (h *Handler) GetKitchenOrders(c *gin.Context) {
	var orders []models.Order
	if status := models.OrderStatus(c.Query("status")); status != "" {
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status " + string(status)})
			return
		}
		orders = h.svc.OrdersByStatus(status)
	} else {
		orders = h.svc.Orders()
	}

	summary := map[models.OrderStatus]int{}
	for _, o := range orders {
		summary[o.Status]++
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// UpdateOrderStatus moves an order along the kitchen workflow
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	before, err := h.svc.OrderByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	order, err := h.svc.UpdateOrderStatus(c.Request.Context(), id, service.StatusUpdate{
		Status:        req.Status,
		EstimatedTime: req.EstimatedTime,
		KitchenNotes:  req.KitchenNotes,
	})
	if errors.Is(err, service.ErrInvalidTransition) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    before.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(before.Status),
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": before.Status,
		"current_status":  order.Status,
		"order":           order,
	})
}

// LookupCustomer resolves a code, username or id typed at the till
func (h *Handler) LookupCustomer(c *gin.Context) {
	customer, err := h.svc.FindCustomerByCode(c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customer":  customer,
		"full_name": customer.FullName(),
	})
}

// CreateComanda records an in-person order, crediting points when a
// customer code is given.
func (h *Handler) CreateComanda(c *gin.Context) {
	var req ComandaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := h.svc.ItemsFromMenu(req.Items)
	if err != nil {
		h.fail(c, err)
		return
	}
	order, err := h.svc.CreateComanda(c.Request.Context(), req.CustomerCode, items, req.KitchenNotes)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{"message": "Comanda created", "order": order}
	if order.CustomerID != 0 {
		if customer, err := h.svc.CustomerByID(order.CustomerID); err == nil {
			resp["customer"] = customer.FullName()
			resp["loyalty_points"] = customer.LoyaltyPoints
		}
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetOrderStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.OrderStats())
}
