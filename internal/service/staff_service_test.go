package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

type stubStaffStore struct {
	repository.StaffRepository
	members map[string]*domain.StaffMember
	created []*domain.StaffMember
	updated []*domain.StaffMember
}

func (s *stubStaffStore) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	member, ok := s.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *member
	return &copied, nil
}

func (s *stubStaffStore) Create(ctx context.Context, staff *domain.StaffMember) error {
	staff.ID = "NEW"
	s.created = append(s.created, staff)
	return nil
}

func (s *stubStaffStore) Update(ctx context.Context, staff *domain.StaffMember) error {
	s.updated = append(s.updated, staff)
	return nil
}

func TestCreateStaffRequiresAdmin(t *testing.T) {
	svc := NewStaffService(&stubStaffStore{}, zap.NewNop(), 4)
	supervisor := &domain.StaffMember{ID: "SUP", Role: domain.StaffRoleSupervisor}

	_, err := svc.CreateStaff(context.Background(), supervisor, CreateStaffInput{
		Name: "Ben", Email: "ben@example.com", Password: "longenough", Role: domain.StaffRoleAgent,
	})
	if err == nil || apperrors.ToDomainError(err).Code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestCreateStaffHashesPassword(t *testing.T) {
	store := &stubStaffStore{members: map[string]*domain.StaffMember{}}
	svc := NewStaffService(store, zap.NewNop(), 4)
	admin := &domain.StaffMember{ID: "ADM", Role: domain.StaffRoleAdmin}

	staff, err := svc.CreateStaff(context.Background(), admin, CreateStaffInput{
		Name: "Ben", Email: "Ben@Example.com", Password: "longenough", Role: domain.StaffRoleAgent,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staff.PasswordHash == "" || staff.PasswordHash == "longenough" {
		t.Fatal("password must be stored hashed")
	}
	if staff.Email != "ben@example.com" {
		t.Fatalf("email must be normalized, got %s", staff.Email)
	}
	if !staff.Active {
		t.Fatal("new staff must start active")
	}
}

func TestCreateStaffValidation(t *testing.T) {
	svc := NewStaffService(&stubStaffStore{members: map[string]*domain.StaffMember{}}, zap.NewNop(), 4)
	admin := &domain.StaffMember{ID: "ADM", Role: domain.StaffRoleAdmin}
	ctx := context.Background()

	cases := []CreateStaffInput{
		{Name: "", Email: "a@b.c", Password: "longenough", Role: domain.StaffRoleAgent},
		{Name: "Ben", Email: "not-an-email", Password: "longenough", Role: domain.StaffRoleAgent},
		{Name: "Ben", Email: "a@b.c", Password: "short", Role: domain.StaffRoleAgent},
		{Name: "Ben", Email: "a@b.c", Password: "longenough", Role: domain.StaffRole("WIZARD")},
	}
	for i, input := range cases {
		if _, err := svc.CreateStaff(ctx, admin, input); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestUpdateStaffRejectsSelfSupervision(t *testing.T) {
	store := &stubStaffStore{members: map[string]*domain.StaffMember{
		"A1": {ID: "A1", Name: "Ann", Role: domain.StaffRoleAgent},
	}}
	svc := NewStaffService(store, zap.NewNop(), 4)
	admin := &domain.StaffMember{ID: "ADM", Role: domain.StaffRoleAdmin}

	self := "A1"
	_, err := svc.UpdateStaff(context.Background(), admin, "A1", UpdateStaffInput{SupervisorID: &self})
	if err == nil {
		t.Fatal("staff member must not supervise themselves")
	}
}

func TestGetStaffVisibility(t *testing.T) {
	supID := "SUP"
	store := &stubStaffStore{members: map[string]*domain.StaffMember{
		"A1": {ID: "A1", Role: domain.StaffRoleAgent, SupervisorID: &supID},
		"A2": {ID: "A2", Role: domain.StaffRoleAgent},
	}}
	svc := NewStaffService(store, zap.NewNop(), 4)
	ctx := context.Background()

	supervisor := &domain.StaffMember{ID: "SUP", Role: domain.StaffRoleSupervisor}
	if _, err := svc.GetStaff(ctx, supervisor, "A1"); err != nil {
		t.Fatalf("supervisor must see direct report: %v", err)
	}
	if _, err := svc.GetStaff(ctx, supervisor, "A2"); err == nil {
		t.Fatal("supervisor must not see unrelated staff")
	}

	agent := &domain.StaffMember{ID: "A1", Role: domain.StaffRoleAgent}
	if _, err := svc.GetStaff(ctx, agent, "A1"); err != nil {
		t.Fatalf("agent must see themselves: %v", err)
	}
	if _, err := svc.GetStaff(ctx, agent, "A2"); err == nil {
		t.Fatal("agent must not see other staff")
	}
}
