package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/campusworks/results-api/internal/models"
	appErrors "github.com/campusworks/results-api/pkg/errors"
)

// directorySnapshotKey is the cache key for the wholesale institutions
// snapshot.
const directorySnapshotKey = "directory:institutions"

type directoryReader interface {
	GetAll(ctx context.Context) ([]models.Institution, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// AuthConfig defines configuration for the login flow.
type AuthConfig struct {
	TokenSecret  string
	TokenExpiry  time.Duration
	Issuer       string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// AuthService resolves staff credentials against the directory tree and
// issues access tokens for the resolved principal.
type AuthService struct {
	directory directoryReader
	cache     snapshotCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(directory directoryReader, cache snapshotCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{directory: directory, cache: cache, metrics: metrics, validator: validate, logger: logger, config: config}
}

// Login authenticates a staff account. Every failure past input
// validation maps to the same generic credential error so callers cannot
// probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "login identifier and secret are required")
	}

	snapshot, err := s.directorySnapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load directory")
	}

	principal, ok := ResolveCredentials(req.LoginIdentifier, req.Secret, snapshot, MatchSecret)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if principal.Account.Status != models.StatusActive {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "")
	}

	token, err := s.generateAccessToken(principal)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.logger.Info("staff login",
		zap.String("accountId", principal.Account.ID),
		zap.String("institutionId", principal.Scope.InstitutionID),
	)

	return &models.LoginResponse{
		Principal:   *principal,
		Scope:       principal.Scope,
		AccessToken: token,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// directorySnapshot returns the institutions tree, preferring the cached
// copy. Cache trouble degrades to a direct read, never an error.
func (s *AuthService) directorySnapshot(ctx context.Context) ([]models.Institution, error) {
	if s.config.CacheEnabled && s.cache != nil {
		start := time.Now()
		var cached []models.Institution
		err := s.cache.Get(ctx, directorySnapshotKey, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true, time.Since(start))
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false, time.Since(start))
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("directory cache read failed", zap.Error(err))
		}
	}

	snapshot, err := s.directory.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.config.CacheEnabled && s.cache != nil {
		if err := s.cache.Set(ctx, directorySnapshotKey, snapshot, s.config.CacheTTL); err != nil {
			s.logger.Warn("directory cache write failed", zap.Error(err))
		}
	}

	return snapshot, nil
}

func (s *AuthService) generateAccessToken(principal *models.Principal) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		AccountID:        principal.Account.ID,
		LoginID:          principal.Account.LoginID,
		Role:             principal.Account.Role,
		CanManageResults: principal.Account.CanManageResults,
		Scope:            principal.Scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   principal.Account.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.TokenSecret))
}
