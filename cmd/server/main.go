package main

import (
	"context"
	"log"
	"time"

	"shopledger/internal/ai"
	"shopledger/internal/auth"
	"shopledger/internal/cart"
	"shopledger/internal/catalog"
	"shopledger/internal/config"
	"shopledger/internal/database"
	"shopledger/internal/handlers"
	"shopledger/internal/ledger"
	"shopledger/internal/middleware"
	"shopledger/internal/reports"
	"shopledger/internal/sales"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	auth.Init(cfg.JWTSecret)

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("Database setup failed: ", err)
	}

	// Carts live in Redis when configured, otherwise in process memory.
	cartTTL := time.Duration(cfg.CartTTLMinutes) * time.Minute
	var carts cart.Store
	if cfg.RedisAddr != "" {
		redisStore := cart.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cartTTL)
		if err := redisStore.Ping(context.Background()); err != nil {
			log.Fatal("Redis unreachable: ", err)
		}
		defer redisStore.Close()
		carts = redisStore
		log.Println("Cart sessions stored in Redis")
	} else {
		carts = cart.NewMemoryStore(cartTTL)
		log.Println("Cart sessions stored in memory")
	}

	catalogSvc := catalog.New(db)
	ledgerSvc := ledger.New(db)
	salesSvc := sales.New(db, carts)
	reportsSvc := reports.New(db)
	assistant := ai.NewAssistant(catalogSvc, reportsSvc, cfg.GeminiAPIKey)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login(db))

	// Only opens if we explicitly allow it in .env
	if cfg.AllowRegistration {
		r.POST("/register", handlers.Register(db))
		log.Println("WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("Registration route is disabled")
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/dashboard", handlers.GetDashboard(reportsSvc))

		api.GET("/customers", handlers.ListCustomers(catalogSvc))
		api.POST("/customers", handlers.AddCustomer(catalogSvc))
		api.DELETE("/customers/:id", handlers.DeleteCustomer(catalogSvc))

		api.GET("/products", handlers.ListProducts(catalogSvc))
		api.POST("/products", handlers.AddProduct(catalogSvc))
		api.PUT("/products/:id", handlers.UpdateProduct(catalogSvc))
		api.DELETE("/products/:id", handlers.DeleteProduct(catalogSvc))
		api.GET("/products/export", handlers.ExportProducts(catalogSvc))

		api.GET("/expenses", handlers.ListExpenses(ledgerSvc))
		api.POST("/expenses", handlers.AddExpense(ledgerSvc))
		api.DELETE("/expenses/:id", handlers.DeleteExpense(ledgerSvc))

		api.GET("/cart", handlers.GetCart(salesSvc))
		api.POST("/cart/items", handlers.AddCartItem(salesSvc))
		api.POST("/cart/clear", handlers.ClearCart(salesSvc))
		api.POST("/checkout", handlers.Checkout(salesSvc))
		api.GET("/sales", handlers.ListSales(salesSvc))

		api.GET("/reports/pdf", handlers.ExportReportPDF(reportsSvc))
		api.POST("/ask", handlers.Ask(assistant))
	}

	log.Println("Server starting on " + cfg.Address())
	if err := r.Run(cfg.Address()); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
