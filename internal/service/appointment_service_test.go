package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

type stubAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	created      []*domain.Appointment
	lastFilter   *repository.AppointmentFilter
}

func (s *stubAppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) error {
	appointment.ID = "AP1"
	s.created = append(s.created, appointment)
	return nil
}

func (s *stubAppointmentRepo) Update(ctx context.Context, appointment *domain.Appointment) error {
	s.appointments[appointment.ID] = appointment
	return nil
}

func (s *stubAppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, ok := s.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *appointment
	return &copied, nil
}

func (s *stubAppointmentRepo) List(ctx context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	s.lastFilter = &filter
	return nil, nil
}

type scopedLeadReader struct {
	lead    *domain.Lead
	visible map[string]bool
}

func (s *scopedLeadReader) GetLead(ctx context.Context, actor *domain.StaffMember, leadID string) (*domain.Lead, error) {
	if !s.visible[actor.ID] {
		return nil, apperrors.NewForbidden("lead outside your scope")
	}
	return s.lead, nil
}

func TestScheduleDenormalizesLeadStage(t *testing.T) {
	repo := &stubAppointmentRepo{appointments: map[string]*domain.Appointment{}}
	notes := &fakeNoteLogger{}
	reader := &scopedLeadReader{
		lead:    &domain.Lead{ID: "L1", Stage: domain.StageQualified},
		visible: map[string]bool{"U1": true},
	}
	svc := NewAppointmentService(repo, reader, notes, nil)

	actor := &domain.StaffMember{ID: "U1", Name: "Uma"}
	appointment, err := svc.Schedule(context.Background(), actor, AppointmentCreateInput{
		LeadID:      "L1",
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Location:    "showroom",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if appointment.LeadStage != domain.StageQualified {
		t.Fatalf("expected denormalized stage Qualified, got %s", appointment.LeadStage)
	}
	if appointment.Status != domain.AppointmentScheduled {
		t.Fatalf("expected SCHEDULED, got %s", appointment.Status)
	}
	if len(notes.entries) != 1 || notes.entries[0].Type != domain.NoteTypeSystem {
		t.Fatalf("expected one System note, got %+v", notes.entries)
	}
}

func TestScheduleRejectsPastTime(t *testing.T) {
	svc := NewAppointmentService(&stubAppointmentRepo{}, &scopedLeadReader{visible: map[string]bool{"U1": true}}, &fakeNoteLogger{}, nil)
	actor := &domain.StaffMember{ID: "U1"}
	_, err := svc.Schedule(context.Background(), actor, AppointmentCreateInput{
		LeadID:      "L1",
		ScheduledAt: time.Now().Add(-time.Hour),
	})
	if err == nil {
		t.Fatal("expected validation error for past time")
	}
}

func TestScheduleRequiresLeadVisibility(t *testing.T) {
	repo := &stubAppointmentRepo{appointments: map[string]*domain.Appointment{}}
	reader := &scopedLeadReader{lead: &domain.Lead{ID: "L1"}, visible: map[string]bool{}}
	svc := NewAppointmentService(repo, reader, &fakeNoteLogger{}, nil)

	actor := &domain.StaffMember{ID: "U2"}
	_, err := svc.Schedule(context.Background(), actor, AppointmentCreateInput{
		LeadID:      "L1",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if len(repo.created) != 0 {
		t.Fatal("no appointment may be created")
	}
}

func TestListScopesToOwnCalendar(t *testing.T) {
	repo := &stubAppointmentRepo{appointments: map[string]*domain.Appointment{}}
	svc := NewAppointmentService(repo, &scopedLeadReader{visible: map[string]bool{}}, &fakeNoteLogger{}, nil)

	agent := &domain.StaffMember{ID: "A1", Role: domain.StaffRoleAgent}
	if _, err := svc.List(context.Background(), agent, repository.AppointmentFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.StaffID == nil || *repo.lastFilter.StaffID != "A1" {
		t.Fatalf("agent listing must be scoped to own calendar, got %v", repo.lastFilter.StaffID)
	}

	admin := &domain.StaffMember{ID: "ADM", Role: domain.StaffRoleAdmin}
	if _, err := svc.List(context.Background(), admin, repository.AppointmentFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.StaffID != nil {
		t.Fatal("admin listing must not be scoped")
	}
}

func TestCancelMarksCancelled(t *testing.T) {
	repo := &stubAppointmentRepo{appointments: map[string]*domain.Appointment{
		"AP1": {ID: "AP1", LeadID: "L1", StaffID: "U1", Status: domain.AppointmentScheduled},
	}}
	svc := NewAppointmentService(repo, &scopedLeadReader{visible: map[string]bool{}}, &fakeNoteLogger{}, nil)

	actor := &domain.StaffMember{ID: "U1"}
	appointment, err := svc.Cancel(context.Background(), actor, "AP1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appointment.Status != domain.AppointmentCancelled {
		t.Fatalf("expected CANCELLED, got %s", appointment.Status)
	}
}
