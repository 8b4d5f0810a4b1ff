package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
	"github.com/quillbooks/quillbooks_app/internal/platform/config"
	"github.com/quillbooks/quillbooks_app/internal/utils"
)

const refreshTokenByteLength = 32

// tokenService issues access tokens and manages the refresh-token lifecycle.
// Only a SHA256 hash of the refresh token is stored server-side.
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken issues a signed JWT for the user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiry := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to generate access token",
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()))
		return "", time.Time{}, apperrors.NewAppError(500, "failed to generate access token", err)
	}
	return token, expiry, nil
}

// GenerateRefreshToken issues a refresh token for the user and persists its hash.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	raw, err := utils.GenerateSecureRandomString(refreshTokenByteLength)
	if err != nil {
		logger.Error("Failed to generate refresh token",
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()))
		return "", time.Time{}, apperrors.NewAppError(500, "failed to generate refresh token", err)
	}

	expiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(raw), expiry); err != nil {
		logger.Error("Failed to store refresh token hash",
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()))
		return "", time.Time{}, err
	}

	return raw, expiry, nil
}

// ValidateAndParseRefreshToken validates a refresh token string against the
// stored hash and expiry, returning the user it belongs to.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if user.RefreshTokenHash == "" || !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		middleware.GetLoggerFromCtx(ctx).Debug("Refresh token mismatch",
			slog.String("user_id", userID))
		return nil, apperrors.ErrUnauthorized
	}

	if user.RefreshTokenExpiryTime == nil || time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}

	return user, nil
}

// googleOAuthHandlerService implements the Google OAuth login flow.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new Google OAuth service.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)

// GenerateStateString creates a secure random CSRF token for the OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to generate OAuth state",
			slog.String("error", err.Error()))
		return "", apperrors.NewAppError(500, "failed to generate OAuth state", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to exchange OAuth code",
			slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to exchange authorization code", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token string from Google and returns
// its payload.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Invalid Google ID token",
			slog.String("error", err.Error()))
		return nil, apperrors.ErrUnauthorized
	}
	return payload, nil
}
