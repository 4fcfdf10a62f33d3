package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/results-api/internal/middleware"
	"github.com/campusworks/results-api/internal/models"
	"github.com/campusworks/results-api/internal/service"
)

type directoryReaderStub struct {
	institutions []models.Institution
}

func (s *directoryReaderStub) GetAll(ctx context.Context) ([]models.Institution, error) {
	return s.institutions, nil
}

func authServiceFixture(t *testing.T) *service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-123"), bcrypt.MinCost)
	require.NoError(t, err)

	directory := &directoryReaderStub{institutions: []models.Institution{
		{
			ID:   "inst-1",
			Name: "First Institute",
			Accounts: []models.Account{
				{ID: "acct-1", LoginID: "principal", Secret: string(hash), Role: models.RoleHead, Status: models.StatusActive},
			},
		},
	}}

	return service.NewAuthService(directory, nil, nil, validator.New(), zap.NewNop(), service.AuthConfig{
		TokenSecret: "test-signing-secret",
		TokenExpiry: time.Hour,
		Issuer:      "results-api",
	})
}

func authRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := authServiceFixture(t)
	h := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", middleware.JWT(authService), h.Me)
	return r, authService
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := authRouter(t)

	w := postJSON(t, r, "/auth/login", models.LoginRequest{LoginIdentifier: "principal", Secret: "secret-123"})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, "inst-1", envelope.Data.Scope.InstitutionID)

	// Neither the supplied nor the stored secret leaves the server.
	assert.NotContains(t, w.Body.String(), "secret-123")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	r, _ := authRouter(t)

	w := postJSON(t, r, "/auth/login", models.LoginRequest{LoginIdentifier: "principal", Secret: "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid username or password")
}

func TestMeEndpoint(t *testing.T) {
	r, authService := authRouter(t)

	login := postJSON(t, r, "/auth/login", models.LoginRequest{LoginIdentifier: "principal", Secret: "secret-123"})
	require.Equal(t, http.StatusOK, login.Code)

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &envelope))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+envelope.Data.AccessToken)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "acct-1")

	// Sanity: token survives direct validation too.
	claims, err := authService.ValidateToken(envelope.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
}

func TestMeEndpointRejectsMissingToken(t *testing.T) {
	r, _ := authRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
