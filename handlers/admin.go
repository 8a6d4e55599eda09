package handlers

import (
	"net/http"

	"burger-house-api/middleware"
	"burger-house-api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateUserRequest struct {
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

type AddPointsRequest struct {
	Points int `json:"points" binding:"required,min=1"`
}

func publicUsers(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out
}

// AdminGetAllUsers returns all users, optionally one role
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	if role := models.UserRole(c.Query("role")); role != "" {
		users = h.svc.UsersByRole(role)
	} else {
		users = h.svc.Users()
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": publicUsers(users)})
}

// AdminCreateUser adds a staff or admin account
func (h *Handler) AdminCreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == models.RoleCustomer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customers sign up through /api/auth/register"})
		return
	}
	user, err := h.svc.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created", "user": user.Public()})
}

func (h *Handler) AdminUpdateUserRole(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.svc.UpdateUserRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user": user.Public()})
}

// AdminDeleteUser removes an account and any customer profile behind it
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *Handler) AdminGetCustomers(c *gin.Context) {
	customers := h.svc.Customers()
	c.JSON(http.StatusOK, gin.H{"count": len(customers), "customers": customers})
}

// AdminAddPoints credits goodwill points to a customer
func (h *Handler) AdminAddPoints(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.svc.AddPoints(c.Request.Context(), id, req.Points)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Points added", "customer": customer})
}

// AdminGetAllOrders returns every order with a per-status summary
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	orders := h.svc.Orders()
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

// AdminGetAllReviews includes reviews still awaiting verification
func (h *Handler) AdminGetAllReviews(c *gin.Context) {
	reviews := h.svc.Reviews()
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

func (h *Handler) AdminVerifyReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	review, err := h.svc.VerifyReview(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review verified", "review": review})
}

func (h *Handler) AdminDeleteReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteReview(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// AdminGetStats is the dashboard summary across every collection
func (h *Handler) AdminGetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"global":   h.svc.GlobalStats(),
		"orders":   h.svc.OrderStats(),
		"reviews":  h.svc.ReviewStats(),
		"products": h.svc.ProductStats(),
	})
}

// AdminReset wipes the store back to the seed data (emergency use)
func (h *Handler) AdminReset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	middleware.Logger(c, h.log).Warn("store reset by admin", zap.Int("admin_id", middleware.GetUserID(c)))
	c.JSON(http.StatusOK, gin.H{"message": "Store reset to seed data"})
}
