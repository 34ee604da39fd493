package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/events"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// LeadService manages lead records outside of stage transitions: creation,
// listing with hierarchical visibility, field updates, and owner changes.
type LeadService struct {
	leads      repository.LeadRepository
	staff      repository.StaffRepository
	vehicles   repository.VehicleRepository
	notes      NoteLogger
	notifier   NotificationEmitter
	dispatcher events.Dispatcher
	now        func() time.Time
}

// LeadDependencies bundles collaborators for the lead service.
type LeadDependencies struct {
	LeadRepo    repository.LeadRepository
	StaffRepo   repository.StaffRepository
	VehicleRepo repository.VehicleRepository
	Notes       NoteLogger
	Notifier    NotificationEmitter
	Dispatcher  events.Dispatcher
}

// LeadCreateInput describes lead creation payload.
type LeadCreateInput struct {
	Name                string
	Phone               string
	Email               string
	Source              domain.LeadSource
	OwnerID             string
	InterestedVehicleID *string
}

// LeadUpdateInput describes mutable contact fields.
type LeadUpdateInput struct {
	Name                *string
	Phone               *string
	Email               *string
	InterestedVehicleID *string
}

// LeadListFilter describes pipeline listing filters.
type LeadListFilter struct {
	Stages      []domain.LeadStage
	Sources     []domain.LeadSource
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	return &LeadService{
		leads:      deps.LeadRepo,
		staff:      deps.StaffRepo,
		vehicles:   deps.VehicleRepo,
		notes:      deps.Notes,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// CreateLead registers a lead assigned to an owner.
func (s *LeadService) CreateLead(ctx context.Context, actor *domain.StaffMember, input LeadCreateInput) (*domain.Lead, error) {
	ownerID := input.OwnerID
	if ownerID == "" {
		ownerID = actor.ID
	}
	owner, err := s.staff.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("owner not found", map[string]any{"owner_id": ownerID})
		}
		return nil, apperrors.MapError(err)
	}

	if input.InterestedVehicleID != nil {
		if _, err := s.vehicles.GetByID(ctx, *input.InterestedVehicleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("vehicle not found", map[string]any{"vehicle_id": *input.InterestedVehicleID})
			}
			return nil, apperrors.MapError(err)
		}
	}

	lead := &domain.Lead{
		ExternalKey:         generateLeadKey(),
		Name:                strings.TrimSpace(input.Name),
		Phone:               strings.TrimSpace(input.Phone),
		Email:               strings.TrimSpace(input.Email),
		Source:              input.Source,
		Stage:               domain.StageNew,
		OwnerID:             owner.ID,
		OwnerName:           owner.Name,
		InterestedVehicleID: input.InterestedVehicleID,
	}
	if lead.Source == "" {
		lead.Source = domain.SourceWeb
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventLeadCreated,
		LeadID: lead.ID,
		Actor:  events.Actor{StaffID: actor.ID, Name: actor.Name},
		Payload: events.LeadCreatedPayload{
			OwnerID: lead.OwnerID,
			Source:  lead.Source,
			Name:    lead.Name,
		},
	})
	return lead, nil
}

// GetLead fetches a lead ensuring the actor may see it.
func (s *LeadService) GetLead(ctx context.Context, actor *domain.StaffMember, leadID string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}
	allowed, err := s.canAccessLead(ctx, actor, lead)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.NewForbidden("lead outside your scope")
	}
	return lead, nil
}

// ListLeads returns leads visible to the actor: agents see their own,
// supervisors additionally their direct reports', admins everything.
func (s *LeadService) ListLeads(ctx context.Context, actor *domain.StaffMember, filter LeadListFilter) ([]domain.Lead, error) {
	repoFilter := repository.LeadFilter{
		Stages:      filter.Stages,
		Sources:     filter.Sources,
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}

	scope, err := s.visibleOwnerIDs(ctx, actor)
	if err != nil {
		return nil, err
	}
	repoFilter.OwnerIDs = scope

	leads, err := s.leads.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leads, nil
}

// UpdateLead mutates contact fields on a lead.
func (s *LeadService) UpdateLead(ctx context.Context, actor *domain.StaffMember, leadID string, input LeadUpdateInput) (*domain.Lead, error) {
	lead, err := s.GetLead(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		lead.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		lead.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		lead.Email = strings.TrimSpace(*input.Email)
	}
	if input.InterestedVehicleID != nil {
		if *input.InterestedVehicleID == "" {
			lead.InterestedVehicleID = nil
		} else {
			if _, err := s.vehicles.GetByID(ctx, *input.InterestedVehicleID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewValidationError("vehicle not found", map[string]any{"vehicle_id": *input.InterestedVehicleID})
				}
				return nil, apperrors.MapError(err)
			}
			lead.InterestedVehicleID = input.InterestedVehicleID
		}
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}
	return lead, nil
}

// ChangeOwner reassigns a lead to another staff member, logging an Owner
// Change note and notifying both the previous and the new owner. The note
// and notifications are best-effort after the owner update commits.
func (s *LeadService) ChangeOwner(ctx context.Context, actor *domain.StaffMember, leadID, newOwnerID string) (*domain.Lead, error) {
	if actor.Role == domain.StaffRoleAgent {
		return nil, apperrors.NewForbidden("supervisor role required to reassign leads")
	}

	lead, err := s.GetLead(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}
	if lead.OwnerID == newOwnerID {
		return lead, nil
	}

	newOwner, err := s.staff.GetByID(ctx, newOwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("owner not found", map[string]any{"owner_id": newOwnerID})
		}
		return nil, apperrors.MapError(err)
	}

	oldOwnerID := lead.OwnerID
	oldOwnerName := lead.OwnerName
	if err := s.leads.UpdateOwner(ctx, lead.ID, newOwner.ID, newOwner.Name); err != nil {
		return nil, apperrors.NewWriteError(err)
	}
	lead.OwnerID = newOwner.ID
	lead.OwnerName = newOwner.Name

	// advisory audit; the committed owner change stands even if this fails
	content := fmt.Sprintf("Owner changed from '%s' to '%s'.", oldOwnerName, newOwner.Name)
	_, _ = s.notes.AddNoteEntry(ctx, lead.ID, content, domain.NoteTypeOwnerChange, actor.Name)

	message := fmt.Sprintf("%s reassigned lead '%s' from %s to %s.", actor.Name, lead.Name, oldOwnerName, newOwner.Name)
	for _, recipient := range []string{oldOwnerID, newOwner.ID} {
		if recipient == actor.ID {
			continue
		}
		_, _ = s.notifier.CreateNotification(ctx, recipient, lead.ID, message, actor.Name)
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventLeadOwnerChanged,
		LeadID: lead.ID,
		Actor:  events.Actor{StaffID: actor.ID, Name: actor.Name},
		Payload: events.LeadOwnerChangedPayload{
			OldOwnerID: oldOwnerID,
			NewOwnerID: newOwner.ID,
		},
	})
	return lead, nil
}

// visibleOwnerIDs resolves the actor's visibility scope. A nil slice means
// unrestricted (admin).
func (s *LeadService) visibleOwnerIDs(ctx context.Context, actor *domain.StaffMember) ([]string, error) {
	switch actor.Role {
	case domain.StaffRoleAdmin:
		return nil, nil
	case domain.StaffRoleSupervisor:
		reports, err := s.staff.ListBySupervisor(ctx, actor.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		ids := make([]string, 0, len(reports)+1)
		ids = append(ids, actor.ID)
		for _, report := range reports {
			ids = append(ids, report.ID)
		}
		return ids, nil
	default:
		return []string{actor.ID}, nil
	}
}

func (s *LeadService) canAccessLead(ctx context.Context, actor *domain.StaffMember, lead *domain.Lead) (bool, error) {
	if actor.Role == domain.StaffRoleAdmin || lead.OwnerID == actor.ID {
		return true, nil
	}
	if actor.Role != domain.StaffRoleSupervisor {
		return false, nil
	}
	owner, err := s.staff.GetByID(ctx, lead.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.MapError(err)
	}
	return owner.SupervisorID != nil && *owner.SupervisorID == actor.ID, nil
}

func (s *LeadService) publishEvent(ctx context.Context, event events.Event) {
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

func generateLeadKey() string {
	return "LD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
