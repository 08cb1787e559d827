package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio-backend/internal/app"
	"portfolio-backend/internal/model"
	"portfolio-backend/internal/pkg/jwtutil"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/transport/http/response"
)

const (
	testSecret    = "middleware-test-secret"
	testAlgorithm = "HS256"
)

func newGatedRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	authService := app.NewAuthService(repository.NewUserRepository(db), testSecret, testAlgorithm, time.Minute)

	router := gin.New()
	router.GET("/gated", Authenticate(testSecret, testAlgorithm, authService), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return router, db
}

func doGated(t *testing.T, router *gin.Engine, authHeader string) (*httptest.ResponseRecorder, response.ErrorBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body response.ErrorBody
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func signupUser(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	require.NoError(t, db.Create(&model.User{
		Username:     "alice",
		Email:        email,
		PasswordHash: "irrelevant",
		IsActive:     true,
	}).Error)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	router, _ := newGatedRouter(t)

	rec, body := doGated(t, router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, response.CodeUnauthenticated, body.Code)
}

func TestAuthenticateWrongScheme(t *testing.T) {
	router, _ := newGatedRouter(t)

	rec, body := doGated(t, router, "Basic YWxpY2U6cHc=")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, response.CodeUnauthenticated, body.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	router, _ := newGatedRouter(t)

	rec, body := doGated(t, router, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, response.CodeUnauthenticated, body.Code)
	assert.Equal(t, "token is invalid", body.Message)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	router, db := newGatedRouter(t)
	signupUser(t, db, "alice@x.com")

	token, err := jwtutil.GenerateToken(testSecret, testAlgorithm, -time.Second, "alice@x.com")
	require.NoError(t, err)

	rec, body := doGated(t, router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, response.CodeUnauthenticated, body.Code)
	assert.Equal(t, "token is expired", body.Message)
}

func TestAuthenticateForeignKeyToken(t *testing.T) {
	router, db := newGatedRouter(t)
	signupUser(t, db, "alice@x.com")

	token, err := jwtutil.GenerateToken("some-other-secret", testAlgorithm, time.Minute, "alice@x.com")
	require.NoError(t, err)

	rec, body := doGated(t, router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, response.CodeUnauthenticated, body.Code)
}

func TestAuthenticateValidTokenUnknownUser(t *testing.T) {
	router, _ := newGatedRouter(t)

	// Cryptographically valid token, but the account it names is gone.
	token, err := jwtutil.GenerateToken(testSecret, testAlgorithm, time.Minute, "ghost@x.com")
	require.NoError(t, err)

	rec, body := doGated(t, router, "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, response.CodeUserNotFound, body.Code)
}

func TestAuthenticateYieldsPrincipal(t *testing.T) {
	router, db := newGatedRouter(t)
	signupUser(t, db, "alice@x.com")

	token, err := jwtutil.GenerateToken(testSecret, testAlgorithm, time.Minute, "alice@x.com")
	require.NoError(t, err)

	rec, _ := doGated(t, router, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "alice@x.com", payload["email"])
}
