package training

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"smg-portal/internal/events"
	"smg-portal/internal/messaging/kafka"
	"smg-portal/internal/shared/contextutil"
	trainingerrors "smg-portal/internal/training/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const aggregateType = "enrollment"

//go:generate mockgen -source=training_service.go -destination=mock/training_service_mock.go -package=mock
type Service interface {
	UpdateEnrollment(ctx context.Context, actorID, id string, req UpdateEnrollmentRequest) (EnrollmentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("training.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("training.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func parseCompletionDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, trainingerrors.ErrInvalidCompletionDate
	}
	return t, nil
}

func (s *service) UpdateEnrollment(ctx context.Context, actorID, id string, req UpdateEnrollmentRequest) (EnrollmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return EnrollmentResponse{}, trainingerrors.ErrInvalidEnrollmentID
	}
	if req.EnrollmentStatus == nil && req.Passed == nil && req.AssessmentScore == nil &&
		req.CompletionDate == nil && req.HoursCompleted == nil {
		return EnrollmentResponse{}, trainingerrors.ErrNothingToUpdate
	}
	var completion *time.Time
	if req.CompletionDate != nil {
		t, err := parseCompletionDate(*req.CompletionDate)
		if err != nil {
			return EnrollmentResponse{}, err
		}
		completion = &t
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update enrollment begin tx failed", zap.Error(err))
		return EnrollmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	current, err := qtx.FindEnrollmentForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EnrollmentResponse{}, trainingerrors.ErrEnrollmentNotFound
		}
		log.Error("update enrollment load failed", zap.String("enrollment_id", id), zap.Error(err))
		return EnrollmentResponse{}, err
	}

	before := current.Snapshot()
	next := *current
	if req.EnrollmentStatus != nil {
		next.EnrollmentStatus = *req.EnrollmentStatus
	}
	if req.Passed != nil {
		next.Passed = *req.Passed
	}
	if req.AssessmentScore != nil {
		next.AssessmentScore = req.AssessmentScore
	}
	if req.HoursCompleted != nil {
		next.HoursCompleted = req.HoursCompleted
	}
	now := time.Now().UTC()
	if completion != nil {
		next.CompletionDate = completion
	} else if next.EnrollmentStatus == EnrollmentCompleted && next.CompletionDate == nil {
		next.CompletionDate = &now
	}
	next.UpdatedAt = now

	if err := qtx.SaveEnrollment(ctx, &next); err != nil {
		log.Error("update enrollment persist failed", zap.String("enrollment_id", id), zap.Error(err))
		return EnrollmentResponse{}, err
	}

	event, err := kafka.NewOutboxEvent(ctx, aggregateType, id, events.EnrollmentUpdated, events.EnrollmentsTopic,
		events.EnrollmentUpdatedEvent{
			EventType:    events.EnrollmentUpdated,
			EnrollmentID: id,
			Before:       before,
			After:        next.Snapshot(),
			OccurredAt:   now,
		})
	if err != nil {
		log.Error("update enrollment build outbox event failed", zap.Error(err))
		return EnrollmentResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("update enrollment outbox persist failed", zap.Error(err))
		return EnrollmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update enrollment commit failed", zap.Error(err))
		return EnrollmentResponse{}, err
	}

	log.Info("update enrollment success",
		zap.String("enrollment_id", id),
		zap.String("actor_id", actorID),
		zap.String("status", next.EnrollmentStatus),
	)
	return mapToResponse(next), nil
}

func mapToResponse(e Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:                e.ID.String(),
		UserID:            e.UserID.String(),
		SessionID:         e.SessionID.String(),
		SessionTitle:      e.SessionTitle,
		EnrollmentStatus:  e.EnrollmentStatus,
		Passed:            e.Passed,
		AssessmentScore:   e.AssessmentScore,
		HoursCompleted:    e.HoursCompleted,
		CertificateIssued: e.CertificateIssued,
		CertificateURL:    e.CertificateURL,
		UpdatedAt:         e.UpdatedAt.Format(time.RFC3339),
	}
	if e.CompletionDate != nil {
		v := e.CompletionDate.Format(time.RFC3339)
		resp.CompletionDate = &v
	}
	return resp
}
