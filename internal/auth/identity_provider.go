package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "smg-portal/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// IdentityProvider owns login identities and their custom claims.
//
//go:generate mockgen -source=identity_provider.go -destination=mock/identity_provider_mock.go -package=mock
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, req NewIdentity) (string, error)
	// SetCustomClaims replaces the claims of the identity with exactly claims.
	SetCustomClaims(ctx context.Context, id string, claims Claims) error
	DeleteIdentity(ctx context.Context, id string) error
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
	GetIdentity(ctx context.Context, id string) (*Identity, error)
}

type identityProvider struct {
	repo   Repository
	logger *zap.Logger
}

func NewIdentityProvider(repo Repository, logger ...*zap.Logger) IdentityProvider {
	l := zap.L().Named("auth.identity")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.identity")
	}
	return &identityProvider{repo: repo, logger: l}
}

func (p *identityProvider) CreateIdentity(ctx context.Context, req NewIdentity) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Password) < minPasswordLength {
		return "", autherrors.ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	identity := &Identity{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  req.DisplayName,
		Claims:       Claims{},
	}
	if err := p.repo.Create(ctx, identity); err != nil {
		if isUniqueViolation(err) {
			return "", autherrors.ErrEmailAlreadyRegistered
		}
		p.logger.Error("create identity persist failed", zap.String("email", email), zap.Error(err))
		return "", err
	}

	p.logger.Info("create identity success", zap.String("identity_id", identity.ID.String()))
	return identity.ID.String(), nil
}

func (p *identityProvider) SetCustomClaims(ctx context.Context, id string, claims Claims) error {
	if claims == nil {
		claims = Claims{}
	}
	updated, err := p.repo.UpdateClaims(ctx, id, claims)
	if err != nil {
		p.logger.Error("set custom claims failed", zap.String("identity_id", id), zap.Error(err))
		return err
	}
	if !updated {
		return autherrors.ErrUserNotFound
	}
	return nil
}

func (p *identityProvider) DeleteIdentity(ctx context.Context, id string) error {
	if err := p.repo.Delete(ctx, id); err != nil {
		p.logger.Error("delete identity failed", zap.String("identity_id", id), zap.Error(err))
		return err
	}
	p.logger.Info("delete identity success", zap.String("identity_id", id))
	return nil
}

func (p *identityProvider) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	identity, err := p.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}
	if identity.Disabled {
		return nil, autherrors.ErrIdentityDisabled
	}
	return identity, nil
}

func (p *identityProvider) GetIdentity(ctx context.Context, id string) (*Identity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, autherrors.ErrInvalidUserID
	}
	identity, err := p.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}
	return identity, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
