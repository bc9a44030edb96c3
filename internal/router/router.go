package router

import (
	"finance-manager/internal/config"
	"finance-manager/internal/handler"
	"finance-manager/internal/middleware"
	"finance-manager/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the gin engine and wires all API routes. Handlers
// receive their dependencies here; nothing reads global state.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	ledger := store.NewGormStore(db)

	api := r.Group("/api")

	// auth endpoints, no token required
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer,
		cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything below requires a valid token
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db))
	protected.POST("/profile/delete", handler.DeleteAccount(db))

	txHandler := handler.NewTransactionHandler(ledger)
	protected.POST("/transactions", txHandler.Create)
	protected.GET("/transactions", txHandler.List)
	protected.PUT("/transactions/:id", txHandler.Update)
	protected.DELETE("/transactions/:id", txHandler.Delete)
	protected.POST("/transactions/upload", txHandler.Upload)

	statsHandler := handler.NewStatsHandler(ledger)
	protected.GET("/stats/summary", statsHandler.Summary)
	protected.GET("/stats/monthly", statsHandler.Monthly)

	ieHandler := handler.NewImportExportHandler(ledger)
	protected.GET("/export/csv", ieHandler.ExportCSV)
	protected.GET("/export/xlsx", ieHandler.ExportXLSX)
	protected.POST("/import/xlsx", ieHandler.ImportXLSX)

	planningHandler := handler.NewPlanningHandler(db)
	protected.GET("/budgets", planningHandler.ListBudgets)
	protected.POST("/budgets", planningHandler.CreateBudget)
	protected.PUT("/budgets/:id", planningHandler.UpdateBudget)
	protected.DELETE("/budgets/:id", planningHandler.DeleteBudget)
	protected.GET("/savings", planningHandler.ListSavings)
	protected.POST("/savings", planningHandler.CreateSaving)
	protected.PUT("/savings/:id", planningHandler.UpdateSaving)
	protected.DELETE("/savings/:id", planningHandler.DeleteSaving)
	protected.GET("/goals", planningHandler.ListGoals)
	protected.POST("/goals", planningHandler.CreateGoal)
	protected.PUT("/goals/:id", planningHandler.UpdateGoal)
	protected.DELETE("/goals/:id", planningHandler.DeleteGoal)

	protected.GET("/activity", handler.ListActivity(db))

	return r
}
