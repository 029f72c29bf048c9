package request

import (
	"context"
	"fmt"
	"strconv"

	"smg-portal/internal/events"
	"smg-portal/internal/metrics"
	"smg-portal/internal/notification"
	"smg-portal/internal/shared/contextutil"

	"go.uber.org/zap"
)

// statusNotice is the owner notification sent when a request enters a status.
type statusNotice struct {
	Type   string
	Format string
}

var statusNotices = map[Status]statusNotice{
	StatusApproved:   {Type: notification.TypeSuccess, Format: "Your %s request has been approved!"},
	StatusRejected:   {Type: notification.TypeError, Format: "Your %s request has been rejected."},
	StatusInProgress: {Type: notification.TypeInfo, Format: "Your %s request is being processed."},
	StatusCompleted:  {Type: notification.TypeSuccess, Format: "Your %s request has been completed!"},
}

// Lifecycle reacts to request documents being created and updated.
type Lifecycle struct {
	notifier notification.Writer
	logger   *zap.Logger
}

func NewLifecycle(notifier notification.Writer, logger ...*zap.Logger) *Lifecycle {
	l := zap.L().Named("request.lifecycle")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.lifecycle")
	}
	return &Lifecycle{notifier: notifier, logger: l}
}

func requestURL(id string) string {
	return "/requests/" + id
}

// OnCreated notifies every approver, then the owner.
func (l *Lifecycle) OnCreated(ctx context.Context, evt events.RequestCreatedEvent) error {
	log := contextutil.GetLogger(ctx, l.logger)
	r := evt.Request
	if r == nil {
		log.Debug("request created without snapshot, skipped", zap.String("request_id", evt.RequestID))
		return nil
	}
	id := r.ID
	if id == "" {
		id = evt.RequestID
	}

	// The position keeps repeated entries for one user distinct.
	for i, approver := range r.Approvers {
		if approver.UserID == "" {
			log.Warn("request approver without user id, skipped", zap.String("request_id", id))
			continue
		}
		_, err := l.notifier.Send(ctx, notification.Message{
			UserID:         approver.UserID,
			Title:          "New Request for Approval",
			Message:        fmt.Sprintf("%s submitted %s: %s", r.EmployeeName, r.RequestType, r.Title),
			Type:           notification.TypeInfo,
			Category:       notification.CategoryApproval,
			ActionURL:      requestURL(id),
			ActionRequired: true,
			Key:            notification.IdempotencyKey(events.RequestCreated, id, "approver", strconv.Itoa(i), approver.UserID),
		})
		if err != nil {
			log.Error("request approver notification failed",
				zap.String("request_id", id),
				zap.String("approver_id", approver.UserID),
				zap.Error(err),
			)
			return err
		}
	}

	_, err := l.notifier.Send(ctx, notification.Message{
		UserID:   r.UserID,
		Title:    "Request Submitted",
		Message:  fmt.Sprintf("Your %s request has been submitted successfully.", r.RequestType),
		Type:     notification.TypeSuccess,
		Category: notification.CategoryRequest,
		Key:      notification.IdempotencyKey(events.RequestCreated, id, "owner", r.UserID),
	})
	if err != nil {
		log.Error("request owner notification failed", zap.String("request_id", id), zap.Error(err))
		return err
	}

	log.Info("request created notifications sent",
		zap.String("request_id", id),
		zap.Int("approvers", len(r.Approvers)),
	)
	return nil
}

// OnUpdated tells the owner about a status change.
func (l *Lifecycle) OnUpdated(ctx context.Context, evt events.RequestUpdatedEvent) error {
	log := contextutil.GetLogger(ctx, l.logger)
	if evt.Before == nil || evt.After == nil {
		log.Debug("request updated without snapshots, skipped", zap.String("request_id", evt.RequestID))
		return nil
	}
	if evt.Before.Status == evt.After.Status {
		return nil
	}

	r := evt.After
	id := r.ID
	if id == "" {
		id = evt.RequestID
	}

	status := Status(r.Status)
	notice, ok := statusNotices[status]
	if !ok {
		metrics.UnmappedStatusTotal.WithLabelValues(r.Status).Inc()
		log.Warn("request status has no notification mapping",
			zap.String("request_id", id),
			zap.String("status", r.Status),
		)
		return nil
	}

	_, err := l.notifier.Send(ctx, notification.Message{
		UserID:    r.UserID,
		Title:     "Request Status Updated",
		Message:   fmt.Sprintf(notice.Format, r.RequestType),
		Type:      notice.Type,
		Category:  notification.CategoryRequest,
		ActionURL: requestURL(id),
		Key:       notification.IdempotencyKey(events.RequestUpdated, id, r.Status, r.UserID),
	})
	if err != nil {
		log.Error("request status notification failed", zap.String("request_id", id), zap.Error(err))
		return err
	}

	log.Info("request status notification sent",
		zap.String("request_id", id),
		zap.String("from", evt.Before.Status),
		zap.String("to", r.Status),
	)
	return nil
}
