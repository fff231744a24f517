package registration

import (
	"context"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/registration"
	"github.com/hoa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RegistrationService handles homeowner signup submissions
type RegistrationService struct {
	userRepo identity.UserRepository
	appRepo  registration.ApplicationRepository
	lotRepo  property.LotRepository
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	userRepo identity.UserRepository,
	appRepo registration.ApplicationRepository,
	lotRepo property.LotRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		userRepo: userRepo,
		appRepo:  appRepo,
		lotRepo:  lotRepo,
		events:   events,
		logger:   logger,
	}
}

// Signup creates an unapproved homeowner account and a pending application.
// The account cannot log in until an admin approves the application.
func (s *RegistrationService) Signup(ctx context.Context, req SignupRequest) (*ApplicationResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	lot, err := s.lotRepo.FindByID(ctx, req.RequestedLotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Requested lot does not exist")
	}
	if lot.IsOccupied() {
		return nil, property.ErrLotAlreadyOccupied
	}

	user, err := identity.NewHomeowner(req.Email, req.FullName, req.Password)
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}

	app, err := registration.NewApplication(
		user.ID,
		req.Email,
		req.FullName,
		req.Phone,
		req.RequestedLotID,
		property.OwnerType(req.OwnerType),
	)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, append(user.GetDomainEvents(), app.GetDomainEvents()...)...); err != nil {
		s.logger.Warn("Failed to publish registration events", zap.Error(err))
	}
	user.ClearDomainEvents()
	app.ClearDomainEvents()

	s.logger.Info("Registration submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("email", req.Email),
		zap.String("lot_id", req.RequestedLotID.String()))

	response := ToApplicationResponse(app)
	return &response, nil
}

// GetByID retrieves an application by ID
func (s *RegistrationService) GetByID(ctx context.Context, id uuid.UUID) (*ApplicationResponse, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, shared.ErrNotFound
	}
	response := ToApplicationResponse(app)
	return &response, nil
}

// GetByApplicant returns all applications submitted by a user
func (s *RegistrationService) GetByApplicant(ctx context.Context, applicantID uuid.UUID) ([]ApplicationResponse, error) {
	apps, err := s.appRepo.FindByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	responses := make([]ApplicationResponse, len(apps))
	for i, app := range apps {
		responses[i] = ToApplicationResponse(app)
	}
	return responses, nil
}

// List returns applications matching the filter (admin)
func (s *RegistrationService) List(ctx context.Context, req ListApplicationsRequest) (*shared.Paginated[ApplicationResponse], error) {
	filter := registration.NewApplicationFilter().WithPagination(req.Page, req.PageSize)
	if req.Status != "" {
		filter = filter.WithStatus(registration.ApplicationStatus(req.Status))
	}
	if req.Keyword != "" {
		filter = filter.WithKeyword(req.Keyword)
	}

	apps, total, err := s.appRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ApplicationResponse, len(apps))
	for i, app := range apps {
		items[i] = ToApplicationResponse(app)
	}

	result := shared.NewPaginated(items, total, req.Page, req.PageSize)
	return &result, nil
}
