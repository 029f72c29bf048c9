package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smg-portal/internal/auth"
	"smg-portal/internal/bootstrap"
	"smg-portal/internal/domain"
	"smg-portal/internal/notification"
	"smg-portal/internal/shared/apperror"
	"smg-portal/internal/shared/contextutil"
	"smg-portal/internal/shared/jsoncol"
	usererrors "smg-portal/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	AuditUserProvisioned = "USER_PROVISIONED"
	AuditUserRoleUpdated = "USER_ROLE_UPDATED"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	// IsSuperAdmin reports whether the profile of uid carries the super_admin
	// role. A missing profile is not an error.
	IsSuperAdmin(ctx context.Context, uid string) (bool, error)
	Provision(ctx context.Context, callerID string, req ProvisionRequest) (ProvisionResponse, error)
	UpdateRole(ctx context.Context, callerID string, req UpdateRoleRequest) error
	GetByID(ctx context.Context, id string) (UserResponse, error)
}

type service struct {
	repo       Repository
	identities auth.IdentityProvider
	notifier   notification.Writer
	audit      bootstrap.AuditLogger
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(
	repo Repository,
	identities auth.IdentityProvider,
	notifier notification.Writer,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		repo:       repo,
		identities: identities,
		notifier:   notifier,
		audit:      audit,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) IsSuperAdmin(ctx context.Context, uid string) (bool, error) {
	if _, err := uuid.Parse(uid); err != nil {
		return false, nil
	}

	v, err, _ := s.sf.Do("is_super_admin:"+uid, func() (interface{}, error) {
		u, err := s.repo.FindByID(ctx, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		return u.Role == domain.RoleSuperAdmin, nil
	})
	if err != nil {
		s.logger.Error("is super admin lookup failed", zap.String("uid", uid), zap.Error(err))
		return false, err
	}
	return v.(bool), nil
}

func (s *service) requireSuperAdmin(ctx context.Context, callerID string) error {
	ok, err := s.IsSuperAdmin(ctx, callerID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return usererrors.ErrNotSuperAdmin
	}
	return nil
}

func (s *service) Provision(ctx context.Context, callerID string, req ProvisionRequest) (ProvisionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.requireSuperAdmin(ctx, callerID); err != nil {
		log.Warn("provision user rejected", zap.String("caller_id", callerID), zap.Error(err))
		return ProvisionResponse{}, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.UserData.FullName) == "" {
		return ProvisionResponse{}, usererrors.ErrMissingRequiredFields
	}
	if !domain.ValidRole(req.UserData.Role) {
		return ProvisionResponse{}, usererrors.ErrInvalidRole
	}

	uid, err := s.identities.CreateIdentity(ctx, auth.NewIdentity{
		Email:       email,
		Password:    req.Password,
		DisplayName: req.UserData.FullName,
	})
	if err != nil {
		log.Error("provision user create identity failed", zap.String("email", email), zap.Error(err))
		return ProvisionResponse{}, apperror.Internal(err)
	}

	claims := auth.Claims{
		auth.ClaimRole:       req.UserData.Role,
		auth.ClaimDepartment: req.UserData.Department,
	}
	if err := s.identities.SetCustomClaims(ctx, uid, claims); err != nil {
		log.Error("provision user set claims failed", zap.String("uid", uid), zap.Error(err))
		s.compensate(ctx, uid)
		return ProvisionResponse{}, apperror.Internal(err)
	}

	now := time.Now().UTC()
	profile := &User{
		ID:               uuid.MustParse(uid),
		Email:            email,
		FullName:         req.UserData.FullName,
		Role:             req.UserData.Role,
		Department:       req.UserData.Department,
		EmployeeCode:     req.UserData.EmployeeCode,
		Designation:      req.UserData.Designation,
		PhoneNumber:      req.UserData.PhoneNumber,
		Permissions:      jsoncol.List[string]{},
		AdminDepartments: jsoncol.List[string]{},
		Extra:            jsoncol.Map(req.UserData.Extra),
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		log.Error("provision user write profile failed", zap.String("uid", uid), zap.Error(err))
		s.compensate(ctx, uid)
		return ProvisionResponse{}, apperror.Internal(err)
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  AuditUserProvisioned,
		ActorID: callerID,
		Message: "user provisioned",
		Meta:    map[string]any{"uid": uid, "role": req.UserData.Role},
	})

	// The account is complete at this point; a failed welcome message is
	// reported but not compensated.
	if _, err := s.notifier.Send(ctx, notification.Message{
		UserID:   uid,
		Title:    "Welcome to SMG Portal",
		Message:  fmt.Sprintf("Your account has been created. Use %s to login.", email),
		Type:     notification.TypeInfo,
		Category: notification.CategoryAnnouncement,
		Key:      notification.IdempotencyKey("welcome", uid),
	}); err != nil {
		log.Error("provision user welcome notification failed", zap.String("uid", uid), zap.Error(err))
		return ProvisionResponse{}, apperror.Internal(err)
	}

	log.Info("provision user success", zap.String("uid", uid), zap.String("role", req.UserData.Role))
	return ProvisionResponse{UID: uid}, nil
}

// compensate removes an identity whose profile could not be completed.
func (s *service) compensate(ctx context.Context, uid string) {
	if err := s.identities.DeleteIdentity(context.WithoutCancel(ctx), uid); err != nil {
		s.logger.Error("provision user compensation failed, orphan identity left",
			zap.String("uid", uid),
			zap.Error(err),
		)
		return
	}
	s.logger.Warn("provision user compensated", zap.String("uid", uid))
}

func (s *service) UpdateRole(ctx context.Context, callerID string, req UpdateRoleRequest) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.requireSuperAdmin(ctx, callerID); err != nil {
		log.Warn("update role rejected", zap.String("caller_id", callerID), zap.Error(err))
		return err
	}
	if !domain.ValidRole(req.Role) {
		return usererrors.ErrInvalidRole
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return usererrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		log.Error("update role load profile failed", zap.String("uid", req.UserID), zap.Error(err))
		return apperror.Internal(err)
	}

	if err := s.identities.SetCustomClaims(ctx, req.UserID, auth.Claims{auth.ClaimRole: req.Role}); err != nil {
		log.Error("update role set claims failed", zap.String("uid", req.UserID), zap.Error(err))
		return apperror.Internal(err)
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	adminDepartments := req.AdminDepartments
	if adminDepartments == nil {
		adminDepartments = []string{}
	}

	updated, err := s.repo.UpdateRole(ctx, req.UserID, req.Role, permissions, adminDepartments, time.Now().UTC())
	if err != nil {
		log.Error("update role persist failed", zap.String("uid", req.UserID), zap.Error(err))
		return apperror.Internal(err)
	}
	if !updated {
		return usererrors.ErrUserNotFound
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  AuditUserRoleUpdated,
		ActorID: callerID,
		Message: "user role updated",
		Meta:    map[string]any{"uid": req.UserID, "role": req.Role},
	})
	log.Info("update role success", zap.String("uid", req.UserID), zap.String("role", req.Role))
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(u), nil
}

func mapToResponse(u *User) UserResponse {
	permissions := []string(u.Permissions)
	if permissions == nil {
		permissions = []string{}
	}
	adminDepartments := []string(u.AdminDepartments)
	if adminDepartments == nil {
		adminDepartments = []string{}
	}
	return UserResponse{
		ID:               u.ID.String(),
		Email:            u.Email,
		FullName:         u.FullName,
		Role:             u.Role,
		Department:       u.Department,
		EmployeeCode:     u.EmployeeCode,
		Designation:      u.Designation,
		PhoneNumber:      u.PhoneNumber,
		Permissions:      permissions,
		AdminDepartments: adminDepartments,
		Extra:            map[string]any(u.Extra),
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:        u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
