package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

type stubLeadRepo struct {
	repository.LeadRepository
	leads      map[string]*domain.Lead
	lastFilter *repository.LeadFilter
	ownerSwaps []string
}

func (s *stubLeadRepo) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *lead
	return &copied, nil
}

func (s *stubLeadRepo) ListWithFilter(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	s.lastFilter = &filter
	return nil, nil
}

func (s *stubLeadRepo) UpdateOwner(ctx context.Context, leadID, ownerID, ownerName string) error {
	s.ownerSwaps = append(s.ownerSwaps, leadID+":"+ownerID)
	if lead, ok := s.leads[leadID]; ok {
		lead.OwnerID = ownerID
		lead.OwnerName = ownerName
	}
	return nil
}

type stubStaffRepo struct {
	repository.StaffRepository
	members map[string]*domain.StaffMember
	reports map[string][]domain.StaffMember
}

func (s *stubStaffRepo) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	member, ok := s.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return member, nil
}

func (s *stubStaffRepo) ListBySupervisor(ctx context.Context, supervisorID string) ([]domain.StaffMember, error) {
	return s.reports[supervisorID], nil
}

func newLeadFixture(leadRepo *stubLeadRepo, staffRepo *stubStaffRepo) (*LeadService, *fakeNoteLogger, *fakeNotifier) {
	notes := &fakeNoteLogger{}
	notifier := &fakeNotifier{}
	svc := NewLeadService(LeadDependencies{
		LeadRepo:  leadRepo,
		StaffRepo: staffRepo,
		Notes:     notes,
		Notifier:  notifier,
	})
	return svc, notes, notifier
}

func supervisorOf(id string) *string {
	return &id
}

func TestListLeadsScopesByRole(t *testing.T) {
	leadRepo := &stubLeadRepo{leads: map[string]*domain.Lead{}}
	staffRepo := &stubStaffRepo{
		members: map[string]*domain.StaffMember{},
		reports: map[string][]domain.StaffMember{
			"SUP": {{ID: "A1"}, {ID: "A2"}},
		},
	}
	svc, _, _ := newLeadFixture(leadRepo, staffRepo)
	ctx := context.Background()

	agent := &domain.StaffMember{ID: "A1", Role: domain.StaffRoleAgent}
	if _, err := svc.ListLeads(ctx, agent, LeadListFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := leadRepo.lastFilter.OwnerIDs; len(got) != 1 || got[0] != "A1" {
		t.Fatalf("agent scope must be self only, got %v", got)
	}

	supervisor := &domain.StaffMember{ID: "SUP", Role: domain.StaffRoleSupervisor}
	if _, err := svc.ListLeads(ctx, supervisor, LeadListFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := leadRepo.lastFilter.OwnerIDs; len(got) != 3 {
		t.Fatalf("supervisor scope must include self and reports, got %v", got)
	}

	admin := &domain.StaffMember{ID: "ADM", Role: domain.StaffRoleAdmin}
	if _, err := svc.ListLeads(ctx, admin, LeadListFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leadRepo.lastFilter.OwnerIDs != nil {
		t.Fatalf("admin scope must be unrestricted, got %v", leadRepo.lastFilter.OwnerIDs)
	}
}

func TestGetLeadEnforcesVisibility(t *testing.T) {
	leadRepo := &stubLeadRepo{leads: map[string]*domain.Lead{
		"L1": {ID: "L1", OwnerID: "A1"},
	}}
	staffRepo := &stubStaffRepo{members: map[string]*domain.StaffMember{
		"A1": {ID: "A1", Role: domain.StaffRoleAgent, SupervisorID: supervisorOf("SUP")},
	}}
	svc, _, _ := newLeadFixture(leadRepo, staffRepo)
	ctx := context.Background()

	other := &domain.StaffMember{ID: "A2", Role: domain.StaffRoleAgent}
	if _, err := svc.GetLead(ctx, other, "L1"); err == nil {
		t.Fatal("agent must not see another agent's lead")
	} else if apperrors.ToDomainError(err).Code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", apperrors.ToDomainError(err).Code)
	}

	supervisor := &domain.StaffMember{ID: "SUP", Role: domain.StaffRoleSupervisor}
	if _, err := svc.GetLead(ctx, supervisor, "L1"); err != nil {
		t.Fatalf("supervisor must see a direct report's lead: %v", err)
	}

	outsider := &domain.StaffMember{ID: "SUP2", Role: domain.StaffRoleSupervisor}
	if _, err := svc.GetLead(ctx, outsider, "L1"); err == nil {
		t.Fatal("unrelated supervisor must not see the lead")
	}

	admin := &domain.StaffMember{ID: "ADM", Role: domain.StaffRoleAdmin}
	if _, err := svc.GetLead(ctx, admin, "L1"); err != nil {
		t.Fatalf("admin must see every lead: %v", err)
	}
}

func TestGetLeadNotFound(t *testing.T) {
	svc, _, _ := newLeadFixture(&stubLeadRepo{leads: map[string]*domain.Lead{}}, &stubStaffRepo{})
	admin := &domain.StaffMember{ID: "ADM", Role: domain.StaffRoleAdmin}
	_, err := svc.GetLead(context.Background(), admin, "missing")
	if err == nil || apperrors.ToDomainError(err).Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestChangeOwnerForbiddenForAgents(t *testing.T) {
	svc, _, _ := newLeadFixture(&stubLeadRepo{leads: map[string]*domain.Lead{}}, &stubStaffRepo{})
	agent := &domain.StaffMember{ID: "A1", Role: domain.StaffRoleAgent}
	_, err := svc.ChangeOwner(context.Background(), agent, "L1", "A2")
	if err == nil || apperrors.ToDomainError(err).Code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestChangeOwnerLogsNoteAndNotifiesBothOwners(t *testing.T) {
	leadRepo := &stubLeadRepo{leads: map[string]*domain.Lead{
		"L1": {ID: "L1", Name: "Dana", OwnerID: "A1", OwnerName: "Ann", LastActivity: time.Now()},
	}}
	staffRepo := &stubStaffRepo{members: map[string]*domain.StaffMember{
		"A1": {ID: "A1", Name: "Ann", Role: domain.StaffRoleAgent},
		"A2": {ID: "A2", Name: "Ben", Role: domain.StaffRoleAgent},
	}}
	svc, notes, notifier := newLeadFixture(leadRepo, staffRepo)

	admin := &domain.StaffMember{ID: "ADM", Name: "Ada", Role: domain.StaffRoleAdmin}
	lead, err := svc.ChangeOwner(context.Background(), admin, "L1", "A2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.OwnerID != "A2" || lead.OwnerName != "Ben" {
		t.Fatalf("owner not updated: %+v", lead)
	}

	if len(notes.entries) != 1 || notes.entries[0].Type != domain.NoteTypeOwnerChange {
		t.Fatalf("expected one Owner Change note, got %+v", notes.entries)
	}
	if !strings.Contains(notes.entries[0].Content, "Ann") || !strings.Contains(notes.entries[0].Content, "Ben") {
		t.Fatalf("note must mention both owners, got %q", notes.entries[0].Content)
	}

	if len(notifier.sent) != 2 {
		t.Fatalf("expected notifications for both owners, got %d", len(notifier.sent))
	}
	recipients := map[string]bool{}
	for _, n := range notifier.sent {
		recipients[n.UserID] = true
	}
	if !recipients["A1"] || !recipients["A2"] {
		t.Fatalf("unexpected recipients: %v", recipients)
	}
}

func TestChangeOwnerSameOwnerIsNoOp(t *testing.T) {
	leadRepo := &stubLeadRepo{leads: map[string]*domain.Lead{
		"L1": {ID: "L1", OwnerID: "A1"},
	}}
	staffRepo := &stubStaffRepo{members: map[string]*domain.StaffMember{
		"A1": {ID: "A1", Role: domain.StaffRoleAgent},
	}}
	svc, notes, notifier := newLeadFixture(leadRepo, staffRepo)

	admin := &domain.StaffMember{ID: "ADM", Role: domain.StaffRoleAdmin}
	if _, err := svc.ChangeOwner(context.Background(), admin, "L1", "A1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leadRepo.ownerSwaps) != 0 || len(notes.entries) != 0 || len(notifier.sent) != 0 {
		t.Fatal("reassigning to the current owner must be a no-op")
	}
}
