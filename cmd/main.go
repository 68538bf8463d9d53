package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"

	"canteen-service/internal/api"
	"canteen-service/internal/config"
	"canteen-service/internal/repository"
	"canteen-service/internal/service"
	"canteen-service/migrations"
)

func connectDB(cfg *config.Config) (*sql.DB, error) {
	if cfg.DBDriver == "mysql" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

		var db *sql.DB
		var err error
		for i := 0; i < 10; i++ {
			db, err = sql.Open("mysql", dsn)
			if err == nil {
				err = db.Ping()
				if err == nil {
					log.Printf("Connected to DB %s", cfg.DBName)
					return db, nil
				}
			}
			log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, cfg.DBName, cfg.DBHost, cfg.DBPort, err)
			time.Sleep(3 * time.Second)
		}
		return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", cfg.DBName, cfg.DBHost, cfg.DBPort, err)
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, err
	}
	// SQLite wants a single writer
	db.SetMaxOpenConns(1)
	return db, nil
}

func main() {
	cfg := config.Load()

	db, err := connectDB(cfg)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrate(cfg.DBDriver, 3, db); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
	if err := migrations.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
	}

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, "order-topic")

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)

	orderService := service.NewOrderService(*orderRepo, kafkaWriter, rdb)
	productService := service.NewProductService(*productRepo, rdb)
	userService := service.NewUserService(*userRepo, []byte(cfg.JWTSecret))
	shopService := service.NewShopService(*shopRepo)

	orderHandler := api.NewOrderHandler(*orderService)
	productHandler := api.NewProductHandler(*productService)
	userHandler := api.NewUserHandler(*userService)
	shopHandler := api.NewShopHandler(*shopService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.POST("/login", userHandler.Login)
	e.POST("/signup", userHandler.Signup)
	e.PUT("/users/:id", userHandler.UpdateUser)

	e.GET("/shops", shopHandler.ListShops)
	e.PUT("/shops/:id", shopHandler.RenameShop)
	e.GET("/categories", shopHandler.ListCategories)

	e.GET("/products", productHandler.ListProducts)
	e.GET("/products/shop/:shop_id", productHandler.ListShopProducts)
	e.GET("/products/:id", productHandler.GetProduct)
	e.POST("/products", productHandler.CreateProduct)
	e.PUT("/products/:id", productHandler.UpdateProduct)

	e.POST("/orders", orderHandler.CreateOrder)
	e.GET("/orders/user/:user_id", orderHandler.GetUserOrders)
	e.GET("/orders/shop/:shop_id/summary", orderHandler.GetShopOrderSummary)
	e.PUT("/orders/:order_id/status", orderHandler.UpdateOrderStatus)

	dashboard := e.Group("/dashboard")
	dashboard.Use(echojwt.JWT([]byte(cfg.JWTSecret)))
	dashboard.GET("/shop/:shop_id", orderHandler.GetDashboardStats)
	dashboard.GET("/shop/:shop_id/weekly-summary", orderHandler.GetWeeklySummary)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "canteen-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
