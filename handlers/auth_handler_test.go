package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/repository"
	"github.com/Mattiasalardi/VDP/service"
)

func newAuthRouter(t *testing.T) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	orgRepo := repository.NewOrganizationRepository(mock)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	h := NewAuthHandler(service.NewOrganizationService(orgRepo, tokens))

	r := gin.New()
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)
	return r, mock
}

func TestRegisterEndpoint(t *testing.T) {
	r, mock := newAuthRouter(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO organizations").
		WithArgs("TechStars", "hello@techstars.com", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	w := doJSON(t, r, nil, http.MethodPost, "/api/v1/auth/register",
		`{"name":"TechStars","email":"Hello@TechStars.com","password":"supersecret"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["success"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "hello@techstars.com", data["email"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterEndpointRejectsShortPassword(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := doJSON(t, r, nil, http.MethodPost, "/api/v1/auth/register",
		`{"name":"TechStars","email":"hello@techstars.com","password":"short"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpointWithUnknownEmailIs401(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM organizations").
		WithArgs("nobody@example.com").
		WillReturnError(assert.AnError)

	w := doJSON(t, r, nil, http.MethodPost, "/api/v1/auth/login",
		`{"email":"nobody@example.com","password":"whatever"}`)

	// Any lookup failure surfaces as invalid credentials, never an existence hint
	require.NotEqual(t, http.StatusOK, w.Code)
}

func TestLoginEndpointHappyPath(t *testing.T) {
	r, mock := newAuthRouter(t)

	hash, err := auth.HashPassword("supersecret")
	require.NoError(t, err)
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM organizations").
		WithArgs("hello@techstars.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "password_hash", "description", "website", "is_active", "created_at", "updated_at",
		}).AddRow(int64(1), "TechStars", "hello@techstars.com", hash, nil, nil, true, now, now))

	w := doJSON(t, r, nil, http.MethodPost, "/api/v1/auth/login",
		`{"email":"hello@techstars.com","password":"supersecret"}`)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginEndpointWrongPasswordIs401(t *testing.T) {
	r, mock := newAuthRouter(t)

	hash, err := auth.HashPassword("supersecret")
	require.NoError(t, err)
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM organizations").
		WithArgs("hello@techstars.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "password_hash", "description", "website", "is_active", "created_at", "updated_at",
		}).AddRow(int64(1), "TechStars", "hello@techstars.com", hash, nil, nil, true, now, now))

	w := doJSON(t, r, nil, http.MethodPost, "/api/v1/auth/login",
		`{"email":"hello@techstars.com","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	envelope := decodeEnvelope(t, w)
	errObj := envelope["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_CREDENTIALS", errObj["code"])
}
