package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/events"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// AppointmentService manages scheduling against leads. Each appointment
// carries a denormalized copy of the lead's stage; the stage-transition
// batch keeps it current.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	leadReader   LeadReader
	notes        NoteLogger
	dispatcher   events.Dispatcher
	now          func() time.Time
}

// AppointmentCreateInput describes scheduling payload.
type AppointmentCreateInput struct {
	LeadID      string
	ScheduledAt time.Time
	Location    string
	Notes       string
}

// AppointmentUpdateInput describes reschedule payload.
type AppointmentUpdateInput struct {
	ScheduledAt *time.Time
	Location    *string
	Notes       *string
	Status      *domain.AppointmentStatus
}

// NewAppointmentService constructs the service.
func NewAppointmentService(appointments repository.AppointmentRepository, leadReader LeadReader, notes NoteLogger, dispatcher events.Dispatcher) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		leadReader:   leadReader,
		notes:        notes,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

// Schedule books an appointment with a lead the actor can see.
func (s *AppointmentService) Schedule(ctx context.Context, actor *domain.StaffMember, input AppointmentCreateInput) (*domain.Appointment, error) {
	if input.ScheduledAt.Before(s.now()) {
		return nil, apperrors.NewValidationError("scheduled_at must be in the future", nil)
	}

	lead, err := s.leadReader.GetLead(ctx, actor, input.LeadID)
	if err != nil {
		return nil, err
	}

	appointment := &domain.Appointment{
		LeadID:      lead.ID,
		StaffID:     actor.ID,
		ScheduledAt: input.ScheduledAt,
		Location:    input.Location,
		Notes:       input.Notes,
		Status:      domain.AppointmentScheduled,
		LeadStage:   lead.Stage,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, apperrors.MapError(err)
	}

	content := fmt.Sprintf("Appointment scheduled for %s.", input.ScheduledAt.Format(time.RFC1123))
	_, _ = s.notes.AddNoteEntry(ctx, lead.ID, content, domain.NoteTypeSystem, actor.Name)

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAppointmentBooked,
			LeadID:    lead.ID,
			Actor:     events.Actor{StaffID: actor.ID, Name: actor.Name},
			Timestamp: s.now(),
			Payload: events.AppointmentBookedPayload{
				AppointmentID: appointment.ID,
				StaffID:       actor.ID,
				ScheduledAt:   appointment.ScheduledAt,
			},
		})
	}
	return appointment, nil
}

// Update reschedules or annotates an appointment.
func (s *AppointmentService) Update(ctx context.Context, actor *domain.StaffMember, appointmentID string, input AppointmentUpdateInput) (*domain.Appointment, error) {
	appointment, err := s.getAccessible(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if input.ScheduledAt != nil {
		appointment.ScheduledAt = *input.ScheduledAt
	}
	if input.Location != nil {
		appointment.Location = *input.Location
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}
	if input.Status != nil {
		appointment.Status = *input.Status
	}

	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return appointment, nil
}

// Cancel marks an appointment cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, actor *domain.StaffMember, appointmentID string) (*domain.Appointment, error) {
	status := domain.AppointmentCancelled
	return s.Update(ctx, actor, appointmentID, AppointmentUpdateInput{Status: &status})
}

// List returns appointments within the given filter, scoped to the actor's
// own calendar unless they can see the filtered lead.
func (s *AppointmentService) List(ctx context.Context, actor *domain.StaffMember, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	if filter.LeadID != nil {
		if _, err := s.leadReader.GetLead(ctx, actor, *filter.LeadID); err != nil {
			return nil, err
		}
	} else if actor.Role != domain.StaffRoleAdmin {
		filter.StaffID = &actor.ID
	}

	appointments, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return appointments, nil
}

func (s *AppointmentService) getAccessible(ctx context.Context, actor *domain.StaffMember, appointmentID string) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"appointment_id": appointmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if appointment.StaffID != actor.ID {
		// fall back to lead visibility for supervisors and admins
		if _, err := s.leadReader.GetLead(ctx, actor, appointment.LeadID); err != nil {
			return nil, err
		}
	}
	return appointment, nil
}
