package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/events"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// NoteLogger is the slice of the note service the pipeline depends on.
type NoteLogger interface {
	AddNoteEntry(ctx context.Context, leadID, content string, noteType domain.NoteType, author string) (*domain.NoteEntry, error)
}

// NotificationEmitter is the slice of the notifier the pipeline depends on.
type NotificationEmitter interface {
	CreateNotification(ctx context.Context, userID, leadID, content, author string) (*domain.Notification, error)
}

// PipelineService coordinates lead stage transitions: precondition checks,
// side-effect computation, the atomic batch, and the best-effort post-commit
// audit trail.
type PipelineService struct {
	leads      repository.LeadRepository
	staff      repository.StaffRepository
	batch      repository.StageBatchRepository
	notes      NoteLogger
	notifier   NotificationEmitter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// PipelineDependencies bundles collaborators for the pipeline service.
type PipelineDependencies struct {
	LeadRepo   repository.LeadRepository
	StaffRepo  repository.StaffRepository
	BatchRepo  repository.StageBatchRepository
	Notes      NoteLogger
	Notifier   NotificationEmitter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewPipelineService constructs the service.
func NewPipelineService(deps PipelineDependencies) *PipelineService {
	return &PipelineService{
		leads:      deps.LeadRepo,
		staff:      deps.StaffRepo,
		batch:      deps.BatchRepo,
		notes:      deps.Notes,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// ChangeStage moves a lead to a new pipeline stage.
//
// The lead update, the vehicle sale (when winning), and the appointment
// stage sweep commit as one all-or-nothing batch. The stage-change note and
// the owner notification follow after the commit and are best-effort: if
// either fails the committed stage change stands and the failure is only
// logged.
func (s *PipelineService) ChangeStage(ctx context.Context, actor *domain.StaffMember, leadID string, newStage domain.LeadStage) (*domain.Lead, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}

	if lead.Stage == newStage {
		return lead, nil
	}

	var owner *domain.StaffMember
	if newStage == domain.StageWon {
		owner, err = s.staff.GetByID(ctx, lead.OwnerID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	now := s.now()
	plan, err := PlanStageChange(lead, owner, newStage, now)
	if err != nil {
		return nil, err
	}

	if err := s.batch.ApplyStageChange(ctx, plan); err != nil {
		return nil, apperrors.NewWriteError(err)
	}

	oldStage := lead.Stage
	lead.Stage = newStage
	lead.LastActivity = now
	if plan.BrokerCommission != nil {
		lead.BrokerCommission = plan.BrokerCommission
	}

	s.appendStageNote(ctx, lead, oldStage, newStage, actor)
	s.notifyOwner(ctx, lead, oldStage, newStage, actor)

	s.publishEvent(ctx, events.Event{
		Type:   events.EventLeadStageChanged,
		LeadID: lead.ID,
		Actor:  events.Actor{StaffID: actor.ID, Name: actor.Name},
		Payload: events.LeadStageChangedPayload{
			OldStage:         oldStage,
			NewStage:         newStage,
			VehicleID:        lead.InterestedVehicleID,
			BrokerCommission: plan.BrokerCommission,
		},
	})

	return lead, nil
}

func (s *PipelineService) appendStageNote(ctx context.Context, lead *domain.Lead, oldStage, newStage domain.LeadStage, actor *domain.StaffMember) {
	content := fmt.Sprintf("Stage changed from '%s' to '%s' by drag & drop.", oldStage, newStage)
	if _, err := s.notes.AddNoteEntry(ctx, lead.ID, content, domain.NoteTypeStageChange, actor.Name); err != nil {
		// note history is advisory audit; the committed stage change stands
		s.logger.Warn("stage-change note append failed",
			zap.String("lead_id", lead.ID),
			zap.Error(err))
	}
}

func (s *PipelineService) notifyOwner(ctx context.Context, lead *domain.Lead, oldStage, newStage domain.LeadStage, actor *domain.StaffMember) {
	if lead.OwnerID == actor.ID {
		return
	}
	content := fmt.Sprintf("%s moved lead '%s' from '%s' to '%s'.", actor.Name, lead.Name, oldStage, newStage)
	if _, err := s.notifier.CreateNotification(ctx, lead.OwnerID, lead.ID, content, actor.Name); err != nil {
		s.logger.Warn("stage-change notification failed",
			zap.String("lead_id", lead.ID),
			zap.String("recipient", lead.OwnerID),
			zap.Error(err))
	}
}

func (s *PipelineService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
