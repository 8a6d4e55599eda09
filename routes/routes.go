package routes

import (
	"burger-house-api/handlers"
	"burger-house-api/metrics"
	"burger-house-api/middleware"
	"burger-house-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *middleware.Tokens, m *metrics.Metrics) {
	authn := tokens.AuthRequired(h.Account)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		public.GET("/menu", h.GetMenu)
		public.GET("/menu/:id", h.GetProduct)

		public.GET("/reviews", h.GetReviews)
		public.GET("/reviews/stats", h.GetReviewStats)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(authn)
	{
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile/password", h.ChangePassword)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(authn, middleware.RoleRequired(models.RoleCustomer))
	{
		customer.PUT("/profile", h.UpdateProfile)
		customer.POST("/orders", h.PlaceOrder)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.CancelOrder)
		customer.POST("/reviews", h.CreateReview)
		customer.POST("/points/redeem", h.RedeemPoints)
	}

	// ── Staff routes (admins too) ──────────────────────────────────
	staff := r.Group("/api/staff")
	staff.Use(authn, middleware.RoleRequired(models.RoleStaff, models.RoleAdmin))
	{
		staff.GET("/orders", h.GetKitchenOrders)
		staff.GET("/orders/stats", h.GetOrderStats)
		staff.PUT("/orders/:id/status", h.UpdateOrderStatus)
		staff.GET("/customers/lookup/:code", h.LookupCustomer)
		staff.POST("/comandas", h.CreateComanda)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(authn, middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", h.AdminGetAllUsers)
		admin.POST("/users", h.AdminCreateUser)
		admin.PUT("/users/:id/role", h.AdminUpdateUserRole)
		admin.DELETE("/users/:id", h.AdminDeleteUser)

		admin.GET("/customers", h.AdminGetCustomers)
		admin.POST("/customers/:id/points", h.AdminAddPoints)

		admin.GET("/orders", h.AdminGetAllOrders)

		admin.GET("/products", h.ListProducts)
		admin.GET("/products/stats", h.GetProductStats)
		admin.POST("/products", h.AddProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.PUT("/products/:id/toggle", h.ToggleProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)

		admin.GET("/reviews", h.AdminGetAllReviews)
		admin.PUT("/reviews/:id/verify", h.AdminVerifyReview)
		admin.DELETE("/reviews/:id", h.AdminDeleteReview)

		admin.GET("/stats", h.AdminGetStats)
		admin.POST("/reset", h.AdminReset)
	}
}
