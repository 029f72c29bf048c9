package auth

import (
	"context"

	autherrors "smg-portal/internal/auth/errors"
	"smg-portal/internal/auth/token"

	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	identities IdentityProvider
	tokens     *token.TokenIssuer
	logger     *zap.Logger
}

func NewService(identities IdentityProvider, tokens *token.TokenIssuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{identities: identities, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	identity, err := s.identities.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", zap.String("email", email), zap.Error(err))
		return "", "", AuthResponse{}, err
	}

	accessToken, refreshToken, err := s.tokens.Issue(subjectOf(identity))
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", identity.ID.String()))
	return accessToken, refreshToken, mapToResponse(identity), nil
}

// RefreshToken re-reads the identity so claims changed since the last login
// (for example after a role update) are picked up.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, token.TokenTypeRefresh)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	identity, err := s.identities.GetIdentity(ctx, claims.UserID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	if identity.Disabled {
		return "", "", AuthResponse{}, autherrors.ErrIdentityDisabled
	}

	newAccess, newRefresh, err := s.tokens.Issue(subjectOf(identity))
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	return newAccess, newRefresh, mapToResponse(identity), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	identity, err := s.identities.GetIdentity(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := mapToResponse(identity)
	return &resp, nil
}

func mapToResponse(identity *Identity) AuthResponse {
	return AuthResponse{
		ID:         identity.ID.String(),
		Email:      identity.Email,
		Name:       identity.DisplayName,
		Role:       identity.Claims.String(ClaimRole),
		Department: identity.Claims.String(ClaimDepartment),
	}
}

func subjectOf(identity *Identity) token.Subject {
	return token.Subject{
		UserID:     identity.ID.String(),
		Role:       identity.Claims.String(ClaimRole),
		Department: identity.Claims.String(ClaimDepartment),
	}
}
