package server

import (
	"maison-heritage-store/internal/auth"
	"maison-heritage-store/internal/handler"
	custommw "maison-heritage-store/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo              *echo.Echo
	catalogHandler    *handler.CatalogHandler
	cartHandler       *handler.CartHandler
	checkoutHandler   *handler.CheckoutHandler
	authHandler       *handler.AuthHandler
	chatHandler       *handler.ChatHandler
	adminHandler      *handler.AdminHandler
	webhookHandler    *handler.WebhookHandler
	newsletterHandler *handler.NewsletterHandler
}

type Handlers struct {
	Catalog    *handler.CatalogHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Auth       *handler.AuthHandler
	Chat       *handler.ChatHandler
	Admin      *handler.AdminHandler
	Webhook    *handler.WebhookHandler
	Newsletter *handler.NewsletterHandler
}

func NewServer(jwtService *auth.JWTService, h Handlers) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(custommw.Authenticate(jwtService))

	s := &Server{
		echo:              e,
		catalogHandler:    h.Catalog,
		cartHandler:       h.Cart,
		checkoutHandler:   h.Checkout,
		authHandler:       h.Auth,
		chatHandler:       h.Chat,
		adminHandler:      h.Admin,
		webhookHandler:    h.Webhook,
		newsletterHandler: h.Newsletter,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- catalog --------
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:slug", s.catalogHandler.GetProduct)
	api.GET("/products/:id/reviews", s.catalogHandler.ListReviews)
	api.POST("/products/:id/reviews", s.catalogHandler.CreateReview, custommw.RequireUser())

	// -------- cart --------
	cart := api.Group("/cart")
	cart.GET("", s.cartHandler.GetCart)
	cart.POST("/items", s.cartHandler.AddItem)
	cart.PUT("/items", s.cartHandler.UpdateItem)
	cart.DELETE("/items/:product_id", s.cartHandler.RemoveItem)
	cart.DELETE("", s.cartHandler.ClearCart)

	// -------- checkout --------
	checkout := api.Group("/checkout")
	checkout.POST("/start", s.checkoutHandler.Start)
	checkout.POST("/submit", s.checkoutHandler.Submit)
	checkout.GET("/confirmation/:session_key", s.checkoutHandler.Confirmation)

	// -------- payment callbacks / webhooks --------
	payments := api.Group("/payments")
	payments.POST("/razorpay/verify", s.checkoutHandler.VerifyRazorpay)
	payments.POST("/stripe/webhook", s.webhookHandler.StripeWebhook)

	// -------- accounts --------
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", s.authHandler.SignUp)
	authGroup.POST("/signin", s.authHandler.SignIn)

	me := api.Group("/me", custommw.RequireUser())
	me.GET("/orders", s.authHandler.MyOrders)
	me.GET("/wishlist", s.authHandler.Wishlist)
	me.POST("/wishlist/:product_id", s.authHandler.AddToWishlist)
	me.DELETE("/wishlist/:product_id", s.authHandler.RemoveFromWishlist)

	// -------- chatbot / newsletter --------
	api.POST("/chat", s.chatHandler.Chat)
	api.POST("/newsletter", s.newsletterHandler.Subscribe)

	// -------- admin --------
	admin := api.Group("/admin", custommw.RequireAdmin())
	admin.GET("/dashboard", s.adminHandler.Dashboard)
	admin.POST("/products", s.adminHandler.CreateProduct)
	admin.PUT("/products/:id", s.adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.adminHandler.DeleteProduct)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.PUT("/orders/:order_number/status", s.adminHandler.UpdateOrderStatus)
	admin.GET("/users", s.adminHandler.ListUsers)
	admin.GET("/audit-log", s.adminHandler.AuditLog)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
