package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/repository"
)

type stubNotificationRepo struct {
	repository.NotificationRepository
	created []*domain.Notification
	unread  int64
}

func (s *stubNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	s.created = append(s.created, notification)
	return nil
}

func (s *stubNotificationRepo) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	s.created = append(s.created, notifications...)
	return nil
}

func (s *stubNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.unread, nil
}

type stubActiveStaffRepo struct {
	repository.StaffRepository
	ids []string
}

func (s *stubActiveStaffRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	return s.ids, nil
}

func TestNotifyAllStaffExcludesActor(t *testing.T) {
	repo := &stubNotificationRepo{}
	staff := &stubActiveStaffRepo{ids: []string{"U1", "U2", "U3"}}
	svc := NewNotifierService(repo, staff, nil, zap.NewNop())

	if err := svc.NotifyAllStaff(context.Background(), "U2", "L1", "new lead arrived", "system"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.created) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(repo.created))
	}
	for _, notification := range repo.created {
		if notification.UserID == "U2" {
			t.Fatal("actor must be excluded from the audience")
		}
	}
}

func TestUnreadCountFallsBackToStore(t *testing.T) {
	repo := &stubNotificationRepo{unread: 4}
	svc := NewNotifierService(repo, &stubActiveStaffRepo{}, nil, zap.NewNop())

	count, err := svc.UnreadCount(context.Background(), "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4, got %d", count)
	}
}

func TestCreateNotificationDefaultsUnread(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotifierService(repo, &stubActiveStaffRepo{}, nil, zap.NewNop())

	notification, err := svc.CreateNotification(context.Background(), "U1", "L1", "stage moved", "Uma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notification.Read {
		t.Fatal("new notifications must start unread")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
}
