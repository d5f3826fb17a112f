package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arjunms/homeledger/homeledger-backend/internal/config"
	"github.com/arjunms/homeledger/homeledger-backend/internal/handler"
	"github.com/arjunms/homeledger/homeledger-backend/internal/middleware"
	"github.com/arjunms/homeledger/homeledger-backend/internal/repository/postgres"
	"github.com/arjunms/homeledger/homeledger-backend/internal/repository/storage"
	"github.com/arjunms/homeledger/homeledger-backend/internal/service"
	"github.com/arjunms/homeledger/homeledger-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	incomeRepo := postgres.NewIncomeRepository(pool)
	homeExpenseRepo := postgres.NewHomeExpenseRepository(pool)
	fuelExpenseRepo := postgres.NewFuelExpenseRepository(pool)
	emiRepo := postgres.NewEmiRepository(pool)

	// Initialize WebSocket hub for real-time updates
	hub := websocket.NewHub()

	// Initialize services
	authService := service.NewAuthService(userRepo)
	incomeService := service.NewIncomeService(incomeRepo)
	emiService := service.NewEmiService(emiRepo)
	expenseService := service.NewExpenseService(homeExpenseRepo, fuelExpenseRepo, emiService)
	dashboardService := service.NewDashboardService(incomeRepo, homeExpenseRepo, fuelExpenseRepo)
	ledgerService := service.NewLedgerService(incomeRepo, homeExpenseRepo, fuelExpenseRepo)
	chartService := service.NewChartService(dashboardService)

	incomeService.SetEventPublisher(hub)
	expenseService.SetEventPublisher(hub)
	emiService.SetEventPublisher(hub)

	// Receipt storage is optional; the API runs without it
	var receiptService *service.ReceiptService
	if cfg.S3.Bucket != "" && cfg.S3.AccessKeyID != "" {
		receiptRepo, err := storage.NewS3ReceiptRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("Receipt storage unavailable, uploads disabled")
		} else {
			receiptService = service.NewReceiptService(receiptRepo, homeExpenseRepo, fuelExpenseRepo)
			log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage configured")
		}
	} else {
		log.Info().Msg("Receipt storage not configured, uploads disabled")
	}

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Per-user rate limiter
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// JWT validator for WebSocket connections (token via query parameter)
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket JWT validator")
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	incomeHandler := handler.NewIncomeHandler(incomeService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	emiHandler := handler.NewEmiHandler(emiService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	chartHandler := handler.NewChartHandler(chartService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, authHandler, incomeHandler, expenseHandler, emiHandler, dashboardHandler, ledgerHandler, chartHandler, receiptHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
