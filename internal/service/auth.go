package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/solhub/admin-api/internal/auth"
	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/store"
)

// AuthService verifies dashboard sign-ins. Valid credentials without the
// dashboard admin flag are a hard denial.
type AuthService struct {
	profiles *store.ProfileRepository
	tokens   *auth.JWTService
}

func NewAuthService(profiles *store.ProfileRepository, tokens *auth.JWTService) *AuthService {
	return &AuthService{profiles: profiles, tokens: tokens}
}

// Login authenticates an email/password pair and returns a session token
// pair plus the signed-in profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, *model.Profile, error) {
	if email == "" || password == "" {
		return nil, nil, validationErr("email and password are required")
	}

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up profile")
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrUnauthorized
	}
	if !profile.IsDashboardAdmin {
		log.Warn().Str("email", email).Msg("Sign-in without dashboard admin flag denied")
		return nil, nil, ErrForbidden
	}

	pair, err := s.tokens.GeneratePair(profile)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token pair")
		return nil, nil, err
	}
	return pair, profile, nil
}

// Refresh rotates a token pair from a refresh token. The profile is
// re-read so a revoked admin flag takes effect at the next rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		return nil, ErrUnauthorized
	}

	profile, err := s.profiles.GetByEmail(ctx, claims.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up profile")
		return nil, err
	}
	if profile == nil {
		return nil, ErrUnauthorized
	}
	if !profile.IsDashboardAdmin {
		return nil, ErrForbidden
	}

	return s.tokens.GeneratePair(profile)
}
