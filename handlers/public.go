package handlers

import (
	"net/http"

	"burger-house-api/models"
	"burger-house-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMenu lists available products, optionally one category
func (h *Handler) GetMenu(c *gin.Context) {
	products := h.svc.AvailableProducts()

	if category := models.ProductCategory(c.Query("category")); category != "" {
		if !category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category. Must be: burgers, sides or drinks"})
			return
		}
		filtered := products[:0]
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(products),
		"menu":  products,
	})
}

// GetProduct returns a single menu product
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.ProductByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// GetReviews returns the verified reviews shown on the site
func (h *Handler) GetReviews(c *gin.Context) {
	reviews := h.svc.VerifiedReviews()
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

func (h *Handler) GetReviewStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ReviewStats())
}

// GetStateMachineInfo returns the full state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	var terminal []models.OrderStatus
	for _, s := range models.OrderStatuses {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": terminal,
		"description":     "Burger House Order Lifecycle State Machine",
	})
}
