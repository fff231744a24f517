package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbilling "github.com/hoa/backend/internal/application/billing"
	appdocument "github.com/hoa/backend/internal/application/document"
	appidentity "github.com/hoa/backend/internal/application/identity"
	apppolicy "github.com/hoa/backend/internal/application/policy"
	appproperty "github.com/hoa/backend/internal/application/property"
	appregistration "github.com/hoa/backend/internal/application/registration"
	appreport "github.com/hoa/backend/internal/application/report"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/infrastructure/auth"
	"github.com/hoa/backend/internal/infrastructure/config"
	"github.com/hoa/backend/internal/infrastructure/document"
	"github.com/hoa/backend/internal/infrastructure/event"
	"github.com/hoa/backend/internal/infrastructure/mailer"
	"github.com/hoa/backend/internal/infrastructure/persistence"
	"github.com/hoa/backend/internal/infrastructure/persistence/models"
	"github.com/hoa/backend/internal/interfaces/http/handler"
	"github.com/hoa/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubRenderer stands in for the PDF renderer
type stubRenderer struct{}

func (r *stubRenderer) Render(ctx context.Context, req *document.RenderRequest) (*document.RenderResult, error) {
	return &document.RenderResult{PDFData: []byte("%PDF-1.4 stub"), PageCount: 1}, nil
}

func (r *stubRenderer) Close() error { return nil }

// newTestServer wires the full HTTP stack over an in-memory database
func newTestServer(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.BlockModel{},
		&models.LotModel{},
		&models.ApplicationModel{},
		&models.PaymentModel{},
		&models.DueRateModel{},
		&models.PolicyModel{},
	))

	log := zap.NewNop()
	events := event.NewInMemoryEventBus(log)
	mail := mailer.NewNoopMailer()

	userRepo := persistence.NewGormUserRepository(db)
	blockRepo := persistence.NewGormBlockRepository(db)
	lotRepo := persistence.NewGormLotRepository(db)
	appRepo := persistence.NewGormApplicationRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	rateRepo := persistence.NewGormDueRateRepository(db)
	policyRepo := persistence.NewGormPolicyRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "portal-test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	registrationService := appregistration.NewRegistrationService(userRepo, appRepo, lotRepo, events, log)
	reviewService := appregistration.NewReviewService(db, mail, events, log)
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, appidentity.DefaultAuthServiceConfig(), log)
	userService := appidentity.NewUserService(userRepo, log)
	propertyService := appproperty.NewPropertyService(blockRepo, lotRepo, userRepo, log)
	paymentService := appbilling.NewPaymentService(paymentRepo, rateRepo, lotRepo, userRepo, mail, events, log)
	rateService := appbilling.NewRateService(rateRepo, log)
	policyService := apppolicy.NewPolicyService(policyRepo, log)
	reportService := appreport.NewReportService(db, log)
	engineTemplates, err := document.NewTemplateEngine()
	require.NoError(t, err)
	documentService := appdocument.NewDocumentService(
		paymentRepo, lotRepo, blockRepo, userRepo,
		engineTemplates, &stubRenderer{},
		appdocument.Config{AssociationName: "Test HOA"}, log)

	engine := New(Config{
		HTTP: config.HTTPConfig{},
		Auth: middleware.AuthConfig{JWTService: jwtService, Blacklist: blacklist},
	}, Handlers{
		System:      handler.NewSystemHandler("portal", "test"),
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

	// Seed one account per role
	admin, err := identity.NewAdmin("admin@example.com", "Portal Admin", "Adm1nSecret!")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), admin))

	homeowner, err := identity.NewHomeowner("owner@example.com", "Home Owner", "Own3rSecret!")
	require.NoError(t, err)
	require.NoError(t, homeowner.Approve())
	require.NoError(t, userRepo.Create(context.Background(), homeowner))

	return engine, jwtService
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role string) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  role + "@example.com",
		Role:   role,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func request(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	engine, _ := newTestServer(t)

	w := request(engine, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_AuthBoundaries(t *testing.T) {
	engine, jwtService := newTestServer(t)

	t.Run("admin routes require a token", func(t *testing.T) {
		w := request(engine, http.MethodGet, "/api/v1/admin/blocks", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin routes reject homeowner tokens", func(t *testing.T) {
		w := request(engine, http.MethodGet, "/api/v1/admin/blocks", tokenFor(t, jwtService, "homeowner"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin routes accept admin tokens", func(t *testing.T) {
		w := request(engine, http.MethodGet, "/api/v1/admin/blocks", tokenFor(t, jwtService, "admin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("homeowner routes accept homeowner tokens", func(t *testing.T) {
		w := request(engine, http.MethodGet, "/api/v1/policies", tokenFor(t, jwtService, "homeowner"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("every response carries a request ID", func(t *testing.T) {
		w := request(engine, http.MethodGet, "/health", "")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
