package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/handlers"
	"bitbucket.org/indofreight/freight_backend/middlewares"
	"bitbucket.org/indofreight/freight_backend/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

// Define a struct to represent the rate limiter.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func getRedisClient(redisAddress string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: redisAddress,
	})
	return client
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

func registerRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.POST("/auth/signin", handlers.Signin)

	auth := api.Group("")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/auth/change-password", handlers.ChangePassword)

	// User management is admin only.
	users := auth.Group("/users", middlewares.RequireRole(models.RoleAdmin))
	users.GET("", handlers.ListUsers)
	users.POST("", handlers.CreateUser)
	users.PUT("/:id/active", handlers.ToggleUser)

	customers := auth.Group("/customers")
	customers.GET("", handlers.ListCustomers)
	customers.GET("/:id", handlers.GetCustomer)
	customers.POST("", handlers.CreateCustomer)
	customers.PUT("/:id", handlers.UpdateCustomer)
	customers.PUT("/:id/active", handlers.ToggleCustomer)
	customers.DELETE("/:id", handlers.DeleteCustomer)

	categories := auth.Group("/product-categories")
	categories.GET("", handlers.ListProductCategories)
	categories.POST("", handlers.CreateProductCategory)
	categories.PUT("/:id", handlers.UpdateProductCategory)
	categories.PUT("/:id/active", handlers.ToggleProductCategory)
	categories.DELETE("/:id", handlers.DeleteProductCategory)

	products := auth.Group("/products")
	products.GET("", handlers.ListProducts)
	products.GET("/:id", handlers.GetProduct)
	products.POST("", handlers.CreateProduct)
	products.PUT("/:id", handlers.UpdateProduct)
	products.DELETE("/:id", handlers.DeleteProduct)

	vehicles := auth.Group("/vehicles")
	vehicles.GET("", handlers.ListVehicles)
	vehicles.GET("/:id", handlers.GetVehicle)
	vehicles.POST("", handlers.CreateVehicle)
	vehicles.PUT("/:id", handlers.UpdateVehicle)
	vehicles.DELETE("/:id", handlers.DeleteVehicle)

	drivers := auth.Group("/drivers")
	drivers.GET("", handlers.ListDrivers)
	drivers.GET("/:id", handlers.GetDriver)
	drivers.POST("", handlers.CreateDriver)
	drivers.PUT("/:id", handlers.UpdateDriver)
	drivers.DELETE("/:id", handlers.DeleteDriver)

	ports := auth.Group("/ports")
	ports.GET("", handlers.ListPorts)
	ports.POST("", handlers.CreatePort)
	ports.PUT("/:id", handlers.UpdatePort)
	ports.DELETE("/:id", handlers.DeletePort)

	incoterms := auth.Group("/incoterms")
	incoterms.GET("", handlers.ListIncoterms)
	incoterms.POST("", handlers.CreateIncoterm)
	incoterms.PUT("/:id", handlers.UpdateIncoterm)
	incoterms.DELETE("/:id", handlers.DeleteIncoterm)

	currencies := auth.Group("/currencies")
	currencies.GET("", handlers.ListCurrencies)
	currencies.POST("", handlers.CreateCurrency)
	currencies.PUT("/:id", handlers.UpdateCurrency)
	currencies.DELETE("/:id", handlers.DeleteCurrency)

	temperaturePresets := auth.Group("/temperature-presets")
	temperaturePresets.GET("", handlers.ListTemperaturePresets)
	temperaturePresets.POST("", handlers.CreateTemperaturePreset)
	temperaturePresets.PUT("/:id", handlers.UpdateTemperaturePreset)
	temperaturePresets.DELETE("/:id", handlers.DeleteTemperaturePreset)

	containerTypes := auth.Group("/container-types")
	containerTypes.GET("", handlers.ListContainerTypes)
	containerTypes.POST("", handlers.CreateContainerType)
	containerTypes.PUT("/:id", handlers.UpdateContainerType)
	containerTypes.DELETE("/:id", handlers.DeleteContainerType)

	shipments := auth.Group("/shipments", middlewares.NoCacheMiddleware())
	shipments.GET("", handlers.ListShipments)
	shipments.GET("/:id", handlers.GetShipment)
	shipments.GET("/:id/invoice", handlers.GetInvoiceByShipment)
	shipments.POST("", handlers.CreateShipment)
	shipments.PUT("/:id", handlers.UpdateShipment)
	shipments.PUT("/:id/status", handlers.UpdateShipmentStatus)
	shipments.DELETE("/:id", handlers.DeleteShipment)

	invoices := auth.Group("/invoices", middlewares.NoCacheMiddleware())
	invoices.GET("", handlers.ListInvoices)
	invoices.GET("/:id", handlers.GetInvoice)
	invoices.POST("", handlers.SaveInvoice)
	invoices.PUT("/:id/status", handlers.UpdateInvoiceStatus)
	invoices.DELETE("/:id", handlers.DeleteInvoice)

	quotes := auth.Group("/quotes", middlewares.NoCacheMiddleware())
	quotes.GET("", handlers.ListQuotes)
	quotes.GET("/:id", handlers.GetQuote)
	quotes.POST("", handlers.CreateQuote)
	quotes.PUT("/:id", handlers.UpdateQuote)
	quotes.PUT("/:id/status", handlers.UpdateQuoteStatus)
	quotes.DELETE("/:id", handlers.DeleteQuote)

	documents := auth.Group("/documents")
	documents.GET("", handlers.ListDocuments)
	documents.POST("/sign", handlers.SignDocumentUpload)
	documents.POST("/complete", handlers.CompleteDocumentUpload)
	documents.DELETE("/:id", handlers.DeleteDocument)

	reports := auth.Group("/reports", middlewares.NoCacheMiddleware())
	reports.GET("/receivable-aging", handlers.ReceivableAgingSummary)
	reports.GET("/receivable-aging/detail", handlers.ReceivableAgingDetail)
	reports.GET("/exports/:resource/excel", handlers.ExportResourceExcel)
	reports.GET("/exports/:resource/csv", handlers.ExportResourceCsv)

	auditLogs := auth.Group("/audit-logs", middlewares.RequireRole(models.RoleAdmin))
	auditLogs.GET("", handlers.ListAuditLogs)
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Shutdown coordination.
	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so Cloud Run considers the revision healthy.
	// Until DB/Redis are ready, we return 503 for app endpoints.
	r := gin.New()
	r.Use(middlewares.CorrelationIdMiddleware())
	r.Use(func(c *gin.Context) {
		// Always allow Cloud Run startup probe.
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		// Gate critical endpoints on dependency readiness.
		if config.GetDB() == nil || config.GetRedisDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production-safe CORS:
	// - In production, require explicit allowlist via CORS_ALLOWED_ORIGINS (comma-separated).
	// - In non-production, allow all (developer convenience).
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			// Safer default: deny all if not configured in production.
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", "X-Correlation-Id")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true

	r.Use(cors.New(corsConfig))

	// Optional rate limiting (recommended for production).
	// Env:
	// - RATE_LIMIT_ENABLED=true
	// - RATE_LIMIT_WINDOW_SECONDS=60
	// - RATE_LIMIT_MAX_REQUESTS=600
	if strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "true") {
		client := getRedisClient(os.Getenv("REDIS_ADDRESS"))
		limit := int64(600)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_MAX_REQUESTS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		windowSec := int64(60)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_WINDOW_SECONDS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				windowSec = n
			}
		}
		rateLimiter := NewRateLimiter(client, limit, time.Duration(windowSec)*time.Second)
		r.Use(rateLimiter.RateLimitMiddleware)
	}

	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())
	registerRoutes(r)
	r.NoRoute(customNotFoundHandler)

	// Start listening immediately (Cloud Run startup probe is TCP based).
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	// Now DB is ready; run migrations.
	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// IMPORTANT: AutoMigrate can run DDL that blocks tables and causes 504/502 timeouts.
	// Allow disabling migrations on startup (run them as a separate job instead).
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		if err := models.Migrate(); err != nil {
			logger.WithFields(logrus.Fields{"field": "migrations"}).Error("auto-migration failed: " + err.Error())
		}
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	// Set the session isolation level to READ COMMITTED
	for attempt := 1; ; attempt++ {
		err := db.Exec("SET SESSION TRANSACTION ISOLATION LEVEL READ COMMITTED").Error
		if err == nil {
			break
		}
		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		logger.WithFields(logrus.Fields{
			"field":   "database",
			"attempt": attempt,
		}).Warn("failed to set isolation level; retrying in " + sleep.String() + ": " + err.Error())
		time.Sleep(sleep)
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/api/v1")
	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Drain HTTP requests.
	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close Redis (best-effort).
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

// Initialize a new RateLimiter instance.
func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Middleware function to check rate limits.
func (rl *RateLimiter) RateLimitMiddleware(c *gin.Context) {
	// Get the IP address or user identifier from the request.
	key := c.ClientIP() // Assuming IP-based rate limiting

	// Check if the key exists in Redis.
	exists, err := rl.client.Exists(c.Request.Context(), key).Result()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	// If the key doesn't exist, create it and set expiry.
	if exists == 0 {
		err := rl.client.Set(c.Request.Context(), key, 1, rl.window).Err()
		if err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		c.Next()
		return
	}

	// If the key exists, get the current count.
	count, err := rl.client.Incr(c.Request.Context(), key).Result()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	// If the count exceeds the limit, return an error response.
	if count > rl.limit {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", int(rl.window.Seconds())),
		})
		return
	}

	c.Next()
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
