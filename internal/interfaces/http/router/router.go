package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/infrastructure/config"
	"github.com/hoa/backend/internal/infrastructure/logger"
	"github.com/hoa/backend/internal/interfaces/http/handler"
	"github.com/hoa/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Profile     *handler.ProfileHandler
	Property    *handler.PropertyHandler
	Homeowner   *handler.HomeownerHandler
	Application *handler.ApplicationHandler
	Payment     *handler.PaymentHandler
	Rate        *handler.RateHandler
	Policy      *handler.PolicyHandler
	Report      *handler.ReportHandler
	Document    *handler.DocumentHandler
}

// Config carries the router's middleware dependencies
type Config struct {
	HTTP   config.HTTPConfig
	Auth   middleware.AuthConfig
	Logger *zap.Logger
}

// New builds the gin engine with all middleware and routes mounted.
// Auth endpoints and health are public; everything else sits behind the
// bearer token, and admin groups additionally behind the role guard.
func New(cfg Config, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSFromConfig(cfg.HTTP)))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	authenticated := middleware.Authenticate(cfg.Auth)

	// Public auth endpoints, under their own stricter rate limit since
	// they are the brute-force surface
	authGroup := api.Group("/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authGroup.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)))
	}
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", authenticated, h.Auth.Logout)

	// Endpoints any authenticated account may call
	user := api.Group("")
	user.Use(authenticated)
	{
		user.GET("/profile", h.Profile.Get)
		user.PUT("/profile", h.Profile.Update)
		user.PUT("/profile/password", h.Profile.ChangePassword)

		user.GET("/policies", h.Policy.ListActive)

		user.GET("/my/payments", h.Payment.ListMine)
		user.GET("/my/dashboard", h.Report.MyDashboard)

		// Document handlers enforce ownership for non-admin callers
		user.GET("/documents/payments/:id/invoice", h.Document.Invoice)
		user.GET("/documents/payments/:id/receipt", h.Document.Receipt)
	}

	admin := api.Group("/admin")
	admin.Use(authenticated, middleware.RequireAdmin())
	{
		admin.POST("/blocks", h.Property.CreateBlock)
		admin.GET("/blocks", h.Property.ListBlocks)
		admin.GET("/blocks/:id", h.Property.GetBlock)
		admin.PUT("/blocks/:id", h.Property.UpdateBlock)
		admin.DELETE("/blocks/:id", h.Property.DeleteBlock)

		admin.POST("/lots", h.Property.CreateLot)
		admin.GET("/lots", h.Property.ListLots)
		admin.GET("/lots/:id", h.Property.GetLot)
		admin.POST("/lots/:id/assign", h.Property.AssignLot)
		admin.POST("/lots/:id/vacate", h.Property.VacateLot)
		admin.DELETE("/lots/:id", h.Property.DeleteLot)

		admin.GET("/homeowners", h.Homeowner.List)
		admin.GET("/homeowners/:id", h.Homeowner.Get)
		admin.POST("/homeowners/:id/activate", h.Homeowner.Activate)
		admin.POST("/homeowners/:id/deactivate", h.Homeowner.Deactivate)

		admin.GET("/applications", h.Application.List)
		admin.GET("/applications/:id", h.Application.Get)
		admin.POST("/applications/:id/approve", h.Application.Approve)
		admin.POST("/applications/:id/reject", h.Application.Reject)
		admin.PUT("/applications/:id/notes", h.Application.UpdateNotes)

		admin.GET("/payments", h.Payment.List)
		admin.GET("/payments/:id", h.Payment.Get)
		admin.POST("/payments", h.Payment.Create)
		admin.POST("/payments/:id/mark-paid", h.Payment.MarkPaid)
		admin.POST("/payments/generate-invoices", h.Payment.GenerateInvoices)

		admin.GET("/rates", h.Rate.List)
		admin.POST("/rates", h.Rate.Create)
		admin.POST("/rates/:id/deactivate", h.Rate.Deactivate)

		admin.GET("/policies", h.Policy.List)
		admin.GET("/policies/:id", h.Policy.Get)
		admin.POST("/policies", h.Policy.Create)
		admin.PUT("/policies/:id", h.Policy.Update)
		admin.POST("/policies/:id/deactivate", h.Policy.Deactivate)
		admin.POST("/policies/:id/reactivate", h.Policy.Reactivate)

		admin.GET("/reports/dashboard", h.Report.Dashboard)
		admin.GET("/reports/blocks", h.Report.Blocks)
		admin.GET("/reports/collection", h.Report.Collection)
	}

	return engine
}
