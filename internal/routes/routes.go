package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rmadesk/rma-portal/internal/auth"
	"github.com/rmadesk/rma-portal/internal/handlers"
	infraRepo "github.com/rmadesk/rma-portal/internal/infra/repository"
	"github.com/rmadesk/rma-portal/internal/middleware"
	"github.com/rmadesk/rma-portal/internal/storage"
	ucRma "github.com/rmadesk/rma-portal/internal/usecase/rma"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	tokens *auth.TokenManager,
	store auth.TokenStore,
	photos storage.PhotoStorage,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	rmaRepo := infraRepo.NewRmaGormRepository(db)

	// ======================================================
	// USE CASES (RMA)
	// ======================================================
	createRmaUC := ucRma.NewCreateRma(rmaRepo, photos)
	listRmaUC := ucRma.NewList(rmaRepo)
	exportRmaUC := ucRma.NewExportCsv(rmaRepo)
	setStatusUC := ucRma.NewSetStatus(rmaRepo)
	bulkStatusUC := ucRma.NewBulkSetStatus(rmaRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens, store)
	adminAuthHandler := handlers.NewAdminAuthHandler(db, tokens, store)

	rmaHandler := handlers.NewRmaHandler(createRmaUC, listRmaUC)
	adminRmaHandler := handlers.NewAdminRmaHandler(
		rmaRepo,
		listRmaUC,
		exportRmaUC,
		setStatusUC,
		bulkStatusUC,
	)

	customerHandler := handlers.NewCustomerHandler(db)
	productHandler := handlers.NewProductHandler(db)
	adminAccountHandler := handlers.NewAdminAccountHandler(db)

	// ======================================================
	// GUARDS
	// ======================================================
	requireCustomer := middleware.RequireCustomer(tokens, store)
	requireAdmin := middleware.RequireAdmin(tokens, store)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// ------------------------------
		// CUSTOMER ZONE
		// ------------------------------
		customerZone := api.Group("/")
		customerZone.Use(requireCustomer)
		{
			customerZone.POST("/logout", authHandler.Logout)
			customerZone.GET("/profile", authHandler.Profile)

			customerZone.POST("/rma", rmaHandler.Create)
			customerZone.GET("/rmas", rmaHandler.List)
		}

		// ------------------------------
		// ADMIN ZONE
		// ------------------------------
		api.POST("/admin/login", adminAuthHandler.Login)

		adminZone := api.Group("/admin")
		adminZone.Use(requireAdmin)
		{
			adminZone.GET("/me", adminAuthHandler.Me)
			adminZone.POST("/logout", adminAuthHandler.Logout)

			// RMA
			adminZone.GET("/rmas", adminRmaHandler.Index)
			adminZone.GET("/rmas/export", adminRmaHandler.Export)
			adminZone.GET("/rmas/:id", adminRmaHandler.Show)
			adminZone.PATCH("/rmas/:id/status", adminRmaHandler.UpdateStatus)
			adminZone.PUT("/rmas/:id/status", adminRmaHandler.UpdateStatus)
			adminZone.POST("/rmas/bulk-update-status", adminRmaHandler.BulkUpdateStatus)
			adminZone.PUT("/rmas/:id", adminRmaHandler.Update)
			adminZone.DELETE("/rmas/:id", adminRmaHandler.Delete)
			adminZone.GET("/rma-statuses", adminRmaHandler.Statuses)

			// Customers
			adminZone.GET("/customers", customerHandler.List)
			adminZone.POST("/customers", customerHandler.Create)
			adminZone.GET("/customers/:id", customerHandler.Show)
			adminZone.PUT("/customers/:id", customerHandler.Update)
			adminZone.DELETE("/customers/:id", customerHandler.Delete)

			// Products
			adminZone.GET("/products", productHandler.List)
			adminZone.POST("/products", productHandler.Create)
			adminZone.GET("/products/:id", productHandler.Show)
			adminZone.PUT("/products/:id", productHandler.Update)
			adminZone.DELETE("/products/:id", productHandler.Delete)

			// Admin accounts
			adminZone.GET("/admins", adminAccountHandler.List)
			adminZone.POST("/admins", adminAccountHandler.Create)
			adminZone.GET("/admins/:id", adminAccountHandler.Show)
			adminZone.PUT("/admins/:id", adminAccountHandler.Update)
			adminZone.DELETE("/admins/:id", adminAccountHandler.Delete)
		}
	}
}
