package notification

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"smg-portal/internal/metrics"
	notificationerrors "smg-portal/internal/notification/errors"
	"smg-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Writer appends notifications to a user's inbox.
//
//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Writer interface {
	Send(ctx context.Context, msg Message) (SendResult, error)
}

type Service interface {
	Writer
	List(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithClock(repo, time.Now, logger...)
}

func NewServiceWithClock(repo Repository, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now, logger: l}
}

// IdempotencyKey derives a stable key from the parts that identify one
// logical notification, e.g. source kind, source id, discriminator and target.
func IdempotencyKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func (s *service) Send(ctx context.Context, msg Message) (SendResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	userID, err := uuid.Parse(msg.UserID)
	if err != nil {
		return SendResult{}, notificationerrors.ErrInvalidUserID
	}
	if msg.Key == "" {
		return SendResult{}, notificationerrors.ErrMissingIdempotencyKey
	}
	if msg.Type == "" {
		msg.Type = TypeInfo
	}

	now := s.now().UTC()
	n := &Notification{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          msg.Title,
		Message:        msg.Message,
		Type:           msg.Type,
		Category:       msg.Category,
		ActionRequired: msg.ActionRequired,
		IsRead:         false,
		IdempotencyKey: msg.Key,
		CreatedAt:      now,
		ExpiresAt:      now.Add(Retention),
	}
	if msg.ActionURL != "" {
		url := msg.ActionURL
		n.ActionURL = &url
	}

	inserted, err := s.repo.Insert(ctx, n)
	if err != nil {
		log.Error("send notification persist failed",
			zap.String("user_id", msg.UserID),
			zap.String("category", msg.Category),
			zap.Error(err),
		)
		metrics.NotificationsTotal.WithLabelValues(msg.Category, metrics.ResultError).Inc()
		return SendResult{}, err
	}
	if !inserted {
		log.Debug("send notification duplicate suppressed",
			zap.String("user_id", msg.UserID),
			zap.String("idempotency_key", msg.Key),
		)
		metrics.NotificationsTotal.WithLabelValues(msg.Category, metrics.ResultDuplicate).Inc()
		return SendResult{Sent: false}, nil
	}

	metrics.NotificationsTotal.WithLabelValues(msg.Category, metrics.ResultOK).Inc()
	log.Info("send notification success",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", msg.UserID),
		zap.String("category", msg.Category),
	)
	return SendResult{ID: n.ID.String(), Sent: true}, nil
}

func (s *service) List(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, notificationerrors.ErrInvalidUserID
	}
	items, err := s.repo.FindByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	updated, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		s.logger.Error("mark notification read failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	if !updated {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, now.UTC())
	if err != nil {
		s.logger.Error("purge expired notifications failed", zap.Error(err))
		return 0, err
	}
	s.logger.Info("purge expired notifications success", zap.Int64("deleted", deleted))
	return deleted, nil
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:             n.ID.String(),
		UserID:         n.UserID.String(),
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
		Category:       n.Category,
		ActionURL:      n.ActionURL,
		ActionRequired: n.ActionRequired,
		Read:           n.IsRead,
		CreatedAt:      n.CreatedAt.Format(time.RFC3339),
		ExpiresAt:      n.ExpiresAt.Format(time.RFC3339),
	}
}
