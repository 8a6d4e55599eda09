package handlers

import (
	"net/http"

	"burger-house-api/middleware"
	"burger-house-api/models"
	"burger-house-api/service"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// Register signs up a customer and logs them in
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, customer, err := h.svc.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Account created successfully",
		"token":    token,
		"user":     user.Public(),
		"customer": customer,
	})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.FindUserByCredentials(req.Username, req.Password)
	h.metrics.RecordLogin(err == nil)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// GetProfile returns the authenticated user, plus the loyalty profile for customers
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.svc.UserByID(middleware.GetUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{"user": user.Public()}
	if user.Role == models.RoleCustomer {
		customer, err := h.svc.FindCustomerByUserID(user.ID)
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			h.fail(c, err)
			return
		}
		if err == nil {
			resp["customer"] = customer
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePassword replaces the caller's password
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.svc.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
