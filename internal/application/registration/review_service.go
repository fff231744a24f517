package registration

import (
	"context"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/registration"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/infrastructure/mailer"
	"github.com/hoa/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReviewService settles registration applications. Approval touches three
// aggregates (application, lot, user) and runs inside a single database
// transaction so a failure at any step leaves all of them untouched.
type ReviewService struct {
	db     *gorm.DB
	mailer mailer.Mailer
	events shared.EventPublisher
	logger *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(db *gorm.DB, m mailer.Mailer, events shared.EventPublisher, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		db:     db,
		mailer: m,
		events: events,
		logger: logger,
	}
}

// Approve approves a pending application: the application is settled, the
// requested lot is assigned to the applicant, and the applicant's account is
// activated. If the lot has been taken since submission the whole operation
// fails with LOT_ALREADY_OCCUPIED and nothing changes.
func (s *ReviewService) Approve(ctx context.Context, applicationID, reviewerID uuid.UUID, req ReviewRequest) (*ApplicationResponse, error) {
	var approved *registration.Application
	var approvedLot *property.Lot
	var applicant *identity.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appRepo := persistence.NewGormApplicationRepository(tx)
		lotRepo := persistence.NewGormLotRepository(tx)
		userRepo := persistence.NewGormUserRepository(tx)

		app, err := appRepo.FindByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return shared.ErrNotFound
		}

		lot, err := lotRepo.FindByID(ctx, app.RequestedLotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return shared.NewDomainError("NOT_FOUND", "Requested lot no longer exists")
		}
		if lot.IsOccupied() {
			return property.ErrLotAlreadyOccupied
		}

		user, err := userRepo.FindByID(ctx, app.ApplicantID)
		if err != nil {
			return err
		}
		if user == nil {
			return shared.NewDomainError("NOT_FOUND", "Applicant account no longer exists")
		}

		if err := app.Approve(reviewerID, req.Notes); err != nil {
			return err
		}
		if err := lot.AssignOwner(app.ApplicantID, app.OwnerType); err != nil {
			return err
		}
		if err := user.Approve(); err != nil {
			return err
		}

		if err := appRepo.UpdateWithLock(ctx, app); err != nil {
			return err
		}
		if err := lotRepo.UpdateWithLock(ctx, lot); err != nil {
			return err
		}
		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}

		approved = app
		approvedLot = lot
		applicant = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Application approved",
		zap.String("application_id", applicationID.String()),
		zap.String("reviewer_id", reviewerID.String()),
		zap.String("lot_id", approvedLot.ID.String()))

	s.publishAfterCommit(ctx, approved.GetDomainEvents(), approvedLot.GetDomainEvents(), applicant.GetDomainEvents())
	approved.ClearDomainEvents()
	approvedLot.ClearDomainEvents()
	applicant.ClearDomainEvents()

	s.notifyApproved(ctx, approved, applicant, approvedLot)

	response := ToApplicationResponse(approved)
	return &response, nil
}

// Reject rejects a pending application. The applicant's account stays
// unapproved and the requested lot is untouched.
func (s *ReviewService) Reject(ctx context.Context, applicationID, reviewerID uuid.UUID, req ReviewRequest) (*ApplicationResponse, error) {
	appRepo := persistence.NewGormApplicationRepository(s.db)

	app, err := appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, shared.ErrNotFound
	}

	if err := app.Reject(reviewerID, req.Notes); err != nil {
		return nil, err
	}
	if err := appRepo.UpdateWithLock(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("Application rejected",
		zap.String("application_id", applicationID.String()),
		zap.String("reviewer_id", reviewerID.String()))

	s.publishAfterCommit(ctx, app.GetDomainEvents())
	app.ClearDomainEvents()

	if err := s.mailer.SendApplicationRejected(ctx, mailer.ApplicationRejectedEmail{
		To:     app.Email,
		Name:   app.FullName,
		Reason: req.Notes,
	}); err != nil {
		// Notification failure must not undo the decision
		s.logger.Warn("Failed to send rejection email", zap.Error(err))
	}

	response := ToApplicationResponse(app)
	return &response, nil
}

// UpdateNotes replaces the admin notes on an application. Notes stay
// editable after the application has been reviewed; the decision itself
// never changes.
func (s *ReviewService) UpdateNotes(ctx context.Context, applicationID uuid.UUID, req UpdateNotesRequest) (*ApplicationResponse, error) {
	appRepo := persistence.NewGormApplicationRepository(s.db)

	app, err := appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, shared.ErrNotFound
	}

	app.SetAdminNotes(req.Notes)
	if err := appRepo.UpdateWithLock(ctx, app); err != nil {
		return nil, err
	}

	response := ToApplicationResponse(app)
	return &response, nil
}

// publishAfterCommit publishes domain events once the decision is durable
func (s *ReviewService) publishAfterCommit(ctx context.Context, eventSets ...[]shared.DomainEvent) {
	var all []shared.DomainEvent
	for _, set := range eventSets {
		all = append(all, set...)
	}
	if len(all) == 0 {
		return
	}
	if err := s.events.Publish(ctx, all...); err != nil {
		s.logger.Warn("Failed to publish review events", zap.Error(err))
	}
}

func (s *ReviewService) notifyApproved(ctx context.Context, app *registration.Application, user *identity.User, lot *property.Lot) {
	blockRepo := persistence.NewGormBlockRepository(s.db)
	lotLabel := lot.LotNumber
	if block, err := blockRepo.FindByID(ctx, lot.BlockID); err == nil && block != nil {
		lotLabel = lot.Label(block.BlockNumber)
	}

	if err := s.mailer.SendApplicationApproved(ctx, mailer.ApplicationApprovedEmail{
		To:       app.Email,
		Name:     user.FullName,
		LotLabel: lotLabel,
	}); err != nil {
		s.logger.Warn("Failed to send approval email", zap.Error(err))
	}
}
