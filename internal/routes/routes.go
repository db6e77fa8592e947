package routes

import (
	"time"

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/config"
	handler "invoice-dashboard-backend/internal/handlers"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/auth"
	"invoice-dashboard-backend/internal/services/invoices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InvoiceStore serves both invoice writes and reads.
type InvoiceStore interface {
	invoices.Store
	handler.InvoiceReader
}

// Dependencies are the collaborators the routes are wired to.
type Dependencies struct {
	Invoices  InvoiceStore
	Customers handler.CustomerReader
	Users     auth.UserFinder
	Tokens    *auth.Tokens
	Pages     *cache.Pages
	Logger    log.FieldLogger
}

// NewDependencies wires the postgres repositories.
func NewDependencies(db *gorm.DB, cfg config.Config, logger log.FieldLogger) Dependencies {
	return Dependencies{
		Invoices:  repository.NewInvoiceRepository(db),
		Customers: repository.NewCustomerRepository(db),
		Users:     repository.NewUserRepository(db),
		Tokens:    auth.NewTokens(cfg.AuthSecret, cfg.SessionTTL),
		Pages:     cache.NewPages(),
		Logger:    logger,
	}
}

func RegisterRoutes(r *gin.Engine, cfg config.Config, deps Dependencies) {
	r.Use(
		middleware.RequestLogger(deps.Logger),
		middleware.Errors(deps.Logger),
		cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.Authorized(deps.Tokens),
	)

	invoiceService := invoices.NewService(deps.Invoices, deps.Pages, invoices.NewSchema(),
		invoices.WithLogger(deps.Logger))
	bridge := auth.NewBridge(auth.NewCredentialsProvider(deps.Users, deps.Tokens))

	invoiceHandler := handler.NewInvoiceHandler(invoiceService, deps.Invoices, deps.Customers)
	dashboardHandler := handler.NewDashboardHandler(deps.Invoices, deps.Customers)
	authHandler := handler.NewAuthHandler(bridge)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	dashboard := r.Group(middleware.DashboardPath)
	dashboard.GET("", dashboardHandler.Overview)

	// Invoice routes
	inv := dashboard.Group("/invoices")
	{
		inv.GET("", middleware.CachePages(deps.Pages), invoiceHandler.List)
		inv.POST("", invoiceHandler.Create)
		inv.GET("/create", invoiceHandler.CreateForm)
		inv.GET("/:id/edit", invoiceHandler.EditForm)
		inv.POST("/:id", invoiceHandler.Update)
		inv.POST("/:id/delete", invoiceHandler.Delete)
	}
}
