package request

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"smg-portal/internal/domain"
	"smg-portal/internal/events"
	"smg-portal/internal/messaging/kafka"
	requesterrors "smg-portal/internal/request/errors"
	"smg-portal/internal/shared/apperror"
	"smg-portal/internal/shared/contextutil"
	"smg-portal/internal/shared/jsoncol"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const aggregateType = "request"

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateRequestRequest) (RequestResponse, error)
	UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (RequestResponse, error)
	GetByID(ctx context.Context, actorID, role, id string) (RequestResponse, error)
	List(ctx context.Context, actorID string, all bool) ([]RequestResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateRequestRequest) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	ownerID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, apperror.ErrUnauthorized
	}
	approvers := make(jsoncol.List[events.Approver], 0, len(req.Approvers))
	for _, a := range req.Approvers {
		if _, err := uuid.Parse(a.UserID); err != nil {
			return RequestResponse{}, requesterrors.ErrInvalidApprover
		}
		approvers = append(approvers, events.Approver{UserID: a.UserID, Name: a.Name})
	}

	now := time.Now().UTC()
	r := &Request{
		ID:           uuid.New(),
		UserID:       ownerID,
		EmployeeName: req.EmployeeName,
		RequestType:  req.RequestType,
		Title:        req.Title,
		Description:  req.Description,
		Status:       StatusPending,
		Approvers:    approvers,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, r); err != nil {
		log.Error("create request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	event, err := kafka.NewOutboxEvent(ctx, aggregateType, r.ID.String(), events.RequestCreated, events.RequestsTopic,
		events.RequestCreatedEvent{
			EventType:  events.RequestCreated,
			RequestID:  r.ID.String(),
			Request:    r.Snapshot(),
			OccurredAt: now,
		})
	if err != nil {
		log.Error("create request build outbox event failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("create request outbox persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	log.Info("create request success",
		zap.String("request_id", r.ID.String()),
		zap.String("request_type", r.RequestType),
		zap.Int("approvers", len(approvers)),
	)
	return mapToResponse(*r), nil
}

func (s *service) UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequestID
	}
	next := Status(req.Status)
	if !next.Valid() {
		return RequestResponse{}, requesterrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update request status begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	current, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		log.Error("update request status load failed", zap.String("request_id", id), zap.Error(err))
		return RequestResponse{}, err
	}
	if !current.Status.CanTransitionTo(next) {
		log.Warn("update request status invalid transition",
			zap.String("request_id", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(next)),
		)
		return RequestResponse{}, requesterrors.ErrInvalidTransition
	}

	now := time.Now().UTC()
	updated, err := qtx.UpdateStatus(ctx, id, current.Status, next, now)
	if err != nil {
		log.Error("update request status persist failed", zap.String("request_id", id), zap.Error(err))
		return RequestResponse{}, err
	}
	if !updated {
		return RequestResponse{}, requesterrors.ErrInvalidTransition
	}

	before := current.Snapshot()
	after := *current
	after.Status = next
	after.UpdatedAt = now

	event, err := kafka.NewOutboxEvent(ctx, aggregateType, id, events.RequestUpdated, events.RequestsTopic,
		events.RequestUpdatedEvent{
			EventType:  events.RequestUpdated,
			RequestID:  id,
			Before:     before,
			After:      after.Snapshot(),
			OccurredAt: now,
		})
	if err != nil {
		log.Error("update request status build outbox event failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("update request status outbox persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update request status commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	log.Info("update request status success",
		zap.String("request_id", id),
		zap.String("actor_id", actorID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)),
	)
	return mapToResponse(after), nil
}

func (s *service) GetByID(ctx context.Context, actorID, role, id string) (RequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequestID
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if r.UserID.String() != actorID && !canReadAll(role) && !isApprover(*r, actorID) {
		return RequestResponse{}, requesterrors.ErrRequestForbidden
	}
	return mapToResponse(*r), nil
}

func (s *service) List(ctx context.Context, actorID string, all bool) ([]RequestResponse, error) {
	var (
		reqs []Request
		err  error
	)
	if all {
		reqs, err = s.repo.FindAll(ctx)
	} else {
		reqs, err = s.repo.FindByUser(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func canReadAll(role string) bool {
	return role == domain.RoleAdmin || role == domain.RoleSuperAdmin
}

func isApprover(r Request, userID string) bool {
	for _, a := range r.Approvers {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

func mapToResponse(r Request) RequestResponse {
	approvers := make([]ApproverResponse, len(r.Approvers))
	for i, a := range r.Approvers {
		approvers[i] = ApproverResponse{UserID: a.UserID, Name: a.Name}
	}
	return RequestResponse{
		ID:           r.ID.String(),
		UserID:       r.UserID.String(),
		EmployeeName: r.EmployeeName,
		RequestType:  r.RequestType,
		Title:        r.Title,
		Description:  r.Description,
		Status:       string(r.Status),
		Approvers:    approvers,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
