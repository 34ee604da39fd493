package service

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

const unreadKeyPrefix = "notifications:unread:"

// NotifierService creates per-recipient notification records. Delivery is
// whatever the store acknowledges; there is no retry queue. Unread counts
// are mirrored into Redis best-effort, with the database as the source of
// truth.
type NotifierService struct {
	notifications repository.NotificationRepository
	staff         repository.StaffRepository
	redis         *redis.Client
	logger        *zap.Logger
}

// NewNotifierService constructs the service. The redis client may be nil.
func NewNotifierService(notifications repository.NotificationRepository, staff repository.StaffRepository, redisClient *redis.Client, logger *zap.Logger) *NotifierService {
	return &NotifierService{
		notifications: notifications,
		staff:         staff,
		redis:         redisClient,
		logger:        logger,
	}
}

// CreateNotification inserts a single notification, read defaulting to false.
func (s *NotifierService) CreateNotification(ctx context.Context, userID, leadID, content, author string) (*domain.Notification, error) {
	notification := &domain.Notification{
		UserID:  userID,
		LeadID:  leadID,
		Content: content,
		Author:  author,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.bumpUnread(ctx, userID, 1)
	return notification, nil
}

// NotifyAllStaff fans out one notification per active staff member, batched
// in a single transaction. The actor is excluded from the audience.
func (s *NotifierService) NotifyAllStaff(ctx context.Context, actorID, leadID, content, author string) error {
	ids, err := s.staff.ListActiveIDs(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}

	batch := make([]*domain.Notification, 0, len(ids))
	for _, id := range ids {
		if id == actorID {
			continue
		}
		batch = append(batch, &domain.Notification{
			UserID:  id,
			LeadID:  leadID,
			Content: content,
			Author:  author,
		})
	}
	if err := s.notifications.CreateBatch(ctx, batch); err != nil {
		return apperrors.MapError(err)
	}
	for _, notification := range batch {
		s.bumpUnread(ctx, notification.UserID, 1)
	}
	return nil
}

// ListForUser returns the recipient's notifications, newest first.
func (s *NotifierService) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return notifications, nil
}

// MarkRead flips the read flag on one of the recipient's notifications.
func (s *NotifierService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.notifications.MarkRead(ctx, userID, notificationID); err != nil {
		return apperrors.MapError(err)
	}
	s.bumpUnread(ctx, userID, -1)
	return nil
}

// UnreadCount reads the mirrored counter, falling back to the database when
// the mirror is missing or unreachable.
func (s *NotifierService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if s.redis != nil {
		val, err := s.redis.Get(ctx, unreadKeyPrefix+userID).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(val, 10, 64); parseErr == nil && count >= 0 {
				return count, nil
			}
		}
	}

	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	if s.redis != nil {
		if err := s.redis.Set(ctx, unreadKeyPrefix+userID, count, 0).Err(); err != nil {
			s.logger.Debug("unread counter refresh failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return count, nil
}

func (s *NotifierService) bumpUnread(ctx context.Context, userID string, delta int64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.IncrBy(ctx, unreadKeyPrefix+userID, delta).Err(); err != nil {
		s.logger.Debug("unread counter update failed", zap.String("user_id", userID), zap.Error(err))
	}
}
