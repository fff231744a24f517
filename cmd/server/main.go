package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appbilling "github.com/hoa/backend/internal/application/billing"
	appdocument "github.com/hoa/backend/internal/application/document"
	appidentity "github.com/hoa/backend/internal/application/identity"
	apppolicy "github.com/hoa/backend/internal/application/policy"
	appproperty "github.com/hoa/backend/internal/application/property"
	appregistration "github.com/hoa/backend/internal/application/registration"
	appreport "github.com/hoa/backend/internal/application/report"
	"github.com/hoa/backend/internal/infrastructure/auth"
	"github.com/hoa/backend/internal/infrastructure/config"
	"github.com/hoa/backend/internal/infrastructure/document"
	"github.com/hoa/backend/internal/infrastructure/event"
	"github.com/hoa/backend/internal/infrastructure/logger"
	"github.com/hoa/backend/internal/infrastructure/mailer"
	"github.com/hoa/backend/internal/infrastructure/persistence"
	"github.com/hoa/backend/internal/infrastructure/scheduler"
	"github.com/hoa/backend/internal/interfaces/http/handler"
	"github.com/hoa/backend/internal/interfaces/http/middleware"
	"github.com/hoa/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	jwtService := auth.NewJWTService(cfg.JWT)

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		// Revocations then only last for the lifetime of this process
		log.Warn("redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("failed to close redis connection", zap.Error(err))
			}
		}()
	}

	var mail mailer.Mailer
	if cfg.Mail.Enabled {
		mail = mailer.NewSendGridMailer(cfg.Mail, log)
	} else {
		log.Info("outbound mail disabled, using no-op mailer")
		mail = mailer.NewNoopMailer()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := event.NewInMemoryEventBus(log)
	events.Subscribe(event.NewAuditLogHandler(log))
	if err := events.Start(ctx); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := events.Stop(stopCtx); err != nil {
			log.Error("failed to stop event bus", zap.Error(err))
		}
	}()

	userRepo := persistence.NewGormUserRepository(db.DB)
	blockRepo := persistence.NewGormBlockRepository(db.DB)
	lotRepo := persistence.NewGormLotRepository(db.DB)
	appRepo := persistence.NewGormApplicationRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	rateRepo := persistence.NewGormDueRateRepository(db.DB)
	policyRepo := persistence.NewGormPolicyRepository(db.DB)

	registrationService := appregistration.NewRegistrationService(userRepo, appRepo, lotRepo, events, log)
	reviewService := appregistration.NewReviewService(db.DB, mail, events, log)
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, appidentity.DefaultAuthServiceConfig(), log)
	userService := appidentity.NewUserService(userRepo, log)
	propertyService := appproperty.NewPropertyService(blockRepo, lotRepo, userRepo, log)
	paymentService := appbilling.NewPaymentService(paymentRepo, rateRepo, lotRepo, userRepo, mail, events, log)
	rateService := appbilling.NewRateService(rateRepo, log)
	policyService := apppolicy.NewPolicyService(policyRepo, log)
	reportService := appreport.NewReportService(db.DB, log)

	templates, err := document.NewTemplateEngine()
	if err != nil {
		log.Fatal("failed to load document templates", zap.Error(err))
	}
	renderer, err := newPDFRenderer(cfg.Document, log)
	if err != nil {
		log.Fatal("failed to initialize PDF renderer",
			zap.String("renderer", cfg.Document.Renderer),
			zap.Error(err),
		)
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("failed to close PDF renderer", zap.Error(err))
		}
	}()
	documentService := appdocument.NewDocumentService(
		paymentRepo, lotRepo, blockRepo, userRepo,
		templates, renderer,
		appdocument.Config{
			AssociationName:    cfg.Document.AssociationName,
			AssociationAddress: cfg.Document.AssociationAddress,
			AdminContact:       cfg.Mail.ReplyAddress,
		},
		log,
	)

	jobs := scheduler.NewBillingJobs(paymentService, paymentRepo, lotRepo, blockRepo, userRepo, mail, cfg.Billing, log)
	if cfg.Scheduler.Enabled {
		sched, err := scheduler.NewScheduler(cfg.Scheduler, jobs, log)
		if err != nil {
			log.Fatal("failed to initialize scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	} else {
		log.Info("billing scheduler disabled")
	}

	engine := router.New(router.Config{
		HTTP: cfg.HTTP,
		Auth: middleware.AuthConfig{
			JWTService: jwtService,
			Blacklist:  blacklist,
			Logger:     log,
		},
		Logger: log,
	}, router.Handlers{
		System:      handler.NewSystemHandler(cfg.App.Name, cfg.App.Env),
		Auth:        handler.NewAuthHandler(registrationService, authService),
		Profile:     handler.NewProfileHandler(userService),
		Property:    handler.NewPropertyHandler(propertyService),
		Homeowner:   handler.NewHomeownerHandler(userService),
		Application: handler.NewApplicationHandler(registrationService, reviewService),
		Payment:     handler.NewPaymentHandler(paymentService),
		Rate:        handler.NewRateHandler(rateService),
		Policy:      handler.NewPolicyHandler(policyService),
		Report:      handler.NewReportHandler(reportService),
		Document:    handler.NewDocumentHandler(documentService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("http server failed", zap.Error(err))
	case sig := <-quit:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}

// newPDFRenderer picks the PDF backend configured under [document]
func newPDFRenderer(cfg config.DocumentConfig, log *zap.Logger) (document.PDFRenderer, error) {
	switch cfg.Renderer {
	case "chromedp":
		return document.NewChromedpRenderer(&document.ChromedpConfig{
			DefaultTimeout: cfg.RenderTimeout,
			NoSandbox:      true,
			Logger:         log,
		})
	default:
		return document.NewWkhtmltopdfRenderer(&document.WkhtmltopdfConfig{
			BinaryPath:     cfg.WkhtmltopdfPath,
			DefaultTimeout: cfg.RenderTimeout,
			Logger:         log,
		})
	}
}
