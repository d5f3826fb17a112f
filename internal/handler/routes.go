package handler

import (
	"github.com/arjunms/homeledger/homeledger-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, incomeHandler *IncomeHandler, expenseHandler *ExpenseHandler, emiHandler *EmiHandler, dashboardHandler *DashboardHandler, ledgerHandler *LedgerHandler, chartHandler *ChartHandler, receiptHandler *ReceiptHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// Income routes (protected)
	incomes := api.Group("/incomes")
	incomes.Use(authMiddleware.Authenticate())
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.GetIncomes)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	// Expense routes (protected)
	expenses := api.Group("/expenses")
	expenses.Use(authMiddleware.Authenticate())
	expenses.POST("/home", expenseHandler.CreateHomeExpense)
	expenses.GET("/home", expenseHandler.GetHomeExpenses)
	expenses.DELETE("/home/:id", expenseHandler.DeleteHomeExpense)
	expenses.POST("/fuel", expenseHandler.CreateFuelExpense)
	expenses.GET("/fuel", expenseHandler.GetFuelExpenses)
	expenses.DELETE("/fuel/:id", expenseHandler.DeleteFuelExpense)
	expenses.POST("/:kind/:id/receipt", receiptHandler.UploadReceipt)
	expenses.GET("/:kind/:id/receipt", receiptHandler.GetReceipt)
	expenses.DELETE("/:kind/:id/receipt", receiptHandler.DeleteReceipt)

	// EMI routes (protected)
	emis := api.Group("/emis")
	emis.Use(authMiddleware.Authenticate())
	emis.POST("", emiHandler.CreateEmi)
	emis.GET("", emiHandler.GetEmis)
	emis.GET("/:id", emiHandler.GetEmi)
	emis.GET("/:id/progress", emiHandler.GetProgress)
	emis.PATCH("/:id/toggle-month", emiHandler.ToggleMonth)
	emis.DELETE("/:id", emiHandler.DeleteEmi)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.Authenticate())
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/chart", chartHandler.GetTrendChart)

	// Ledger routes (protected)
	ledger := api.Group("/ledger")
	ledger.Use(authMiddleware.Authenticate())
	ledger.GET("", ledgerHandler.GetLedger)

	// WebSocket endpoint (token authenticated via query parameter)
	e.GET("/ws", wsHandler.HandleWS)
}
