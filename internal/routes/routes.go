package routes

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	adminh "cioccolato_back_end/internal/handlers/admin"
	"cioccolato_back_end/internal/handlers/payement"
	"cioccolato_back_end/internal/handlers/product"
	"cioccolato_back_end/internal/handlers/user"
	"cioccolato_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontend},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// --- Public ---
	api.GET("/products", product.GetProducts)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/settings", payement.GetSettings)
	api.GET("/shipping/options", payement.GetShippingOptions)

	// Auth locale + OAuth
	api.POST("/auth/register", user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.GET("/auth/:provider", user.BeginAuth)
	api.GET("/auth/:provider/callback", user.CallbackAuth)
	api.GET("/auth/logout", user.Logout)

	// Webhook Stripe : signé, pas de JWT
	api.POST("/webhook/stripe", payement.StripeWebhook)

	// --- Connecté ---
	auth := api.Group("/")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/me", user.Me)

		auth.GET("/cart", user.GetCart)
		auth.POST("/cart/add", user.AddToCart)
		auth.PATCH("/cart/:id", user.UpdateCartQuantity)
		auth.DELETE("/cart/:id", user.RemoveFromCart)
		auth.DELETE("/cart", user.ClearCart)
		auth.GET("/cart/ws", user.CartWebSocket)

		auth.POST("/orders", user.CreateOrder)
		auth.GET("/orders", user.GetMyOrders)
		auth.GET("/orders/:id", user.GetOrderByID)
		auth.GET("/orders/:id/pdf", user.GetOrderPDF)

		auth.POST("/checkout", payement.Checkout)
		auth.POST("/checkout/paypal/capture", payement.CapturePayPalOrder)
		auth.GET("/checkout/coupon", payement.ValidateCoupon)
	}

	// --- Back-office ---
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.POST("/products", product.CreateProduct)
		admin.PUT("/products/:id", product.UpdateProduct)
		admin.PATCH("/products/:id/stock", product.UpdateProductStock)
		admin.DELETE("/products/:id", product.DeleteProduct)
		admin.POST("/products/:id/images", product.UploadProductImage)

		admin.GET("/orders", adminh.ListAllOrders)
		admin.PATCH("/orders/:id/status", adminh.UpdateOrderStatus)
		admin.PUT("/orders/:id", adminh.UpdateOrder)
		admin.DELETE("/orders/:id", adminh.DeleteOrder)

		admin.GET("/users", adminh.ListUsers)
		admin.PATCH("/users/:id/role", adminh.UpdateUserRole)
		admin.DELETE("/users/:id", adminh.DeleteUser)

		admin.PUT("/settings", payement.UpdateSettings)
	}
}
