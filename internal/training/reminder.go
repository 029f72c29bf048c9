package training

import (
	"context"
	"fmt"
	"time"

	"smg-portal/internal/notification"
	"smg-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderWindow is how far ahead mandatory sessions are looked up.
const ReminderWindow = 3 * 24 * time.Hour

const reminderDateLayout = "Jan 2, 2006"

// Reminder nudges active employees who have not enrolled in an upcoming
// mandatory session.
type Reminder struct {
	repo     Repository
	notifier notification.Writer
	loc      *time.Location
	logger   *zap.Logger
}

func NewReminder(repo Repository, notifier notification.Writer, loc *time.Location, logger ...*zap.Logger) *Reminder {
	l := zap.L().Named("training.reminder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("training.reminder")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Reminder{repo: repo, notifier: notifier, loc: loc, logger: l}
}

func (r *Reminder) Run(ctx context.Context, now time.Time) (ReminderResult, error) {
	log := contextutil.GetLogger(ctx, r.logger)

	sessions, err := r.repo.UpcomingMandatorySessions(ctx, now.Add(ReminderWindow))
	if err != nil {
		log.Error("training reminder list sessions failed", zap.Error(err))
		return ReminderResult{}, err
	}
	result := ReminderResult{Sessions: len(sessions)}
	if len(sessions) == 0 {
		return result, nil
	}

	employees, err := r.repo.ActiveEmployeeIDs(ctx)
	if err != nil {
		log.Error("training reminder list employees failed", zap.Error(err))
		return result, err
	}
	runDate := now.In(r.loc).Format("2006-01-02")

	for _, session := range sessions {
		enrolled, err := r.repo.EnrolledUserIDs(ctx, session.ID)
		if err != nil {
			log.Error("training reminder list enrollments failed", zap.String("session_id", session.ID.String()), zap.Error(err))
			return result, err
		}
		skip := make(map[uuid.UUID]struct{}, len(enrolled))
		for _, id := range enrolled {
			skip[id] = struct{}{}
		}

		message := fmt.Sprintf("Don't forget to enroll in \"%s\" starting on %s",
			session.Title, session.StartDate.In(r.loc).Format(reminderDateLayout))
		for _, uid := range employees {
			if _, ok := skip[uid]; ok {
				continue
			}
			res, err := r.notifier.Send(ctx, notification.Message{
				UserID:         uid.String(),
				Title:          "Mandatory Training Reminder",
				Message:        message,
				Type:           notification.TypeWarning,
				Category:       notification.CategoryReminder,
				ActionURL:      "/training/sessions/" + session.ID.String(),
				ActionRequired: true,
				Key:            notification.IdempotencyKey("training.reminder", session.ID.String(), runDate, uid.String()),
			})
			if err != nil {
				log.Error("training reminder send failed",
					zap.String("session_id", session.ID.String()),
					zap.String("user_id", uid.String()),
					zap.Error(err),
				)
				return result, err
			}
			if res.Sent {
				result.Sent++
			}
		}
	}

	log.Info("training reminder success",
		zap.String("run_date", runDate),
		zap.Int("sessions", result.Sessions),
		zap.Int("sent", result.Sent),
	)
	return result, nil
}
