package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhub/admin-api/internal/auth"
	"github.com/solhub/admin-api/internal/model"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *auth.JWTService) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewJWTService([]byte("test-secret"), 15*time.Minute, time.Hour)

	r := gin.New()
	r.GET("/protected", RequireAdmin(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r, tokens
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin_MissingToken(t *testing.T) {
	r, _ := setupAuthTest(t)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	r, _ := setupAuthTest(t)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "garbage").Code)
}

func TestRequireAdmin_RefreshTokenRejected(t *testing.T) {
	r, tokens := setupAuthTest(t)
	pair, err := tokens.GeneratePair(&model.Profile{ID: uuid.New(), IsDashboardAdmin: true})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, pair.RefreshToken).Code)
}

func TestRequireAdmin_NonAdminForbidden(t *testing.T) {
	// Valid credentials without the dashboard flag are a hard denial.
	r, tokens := setupAuthTest(t)
	pair, err := tokens.GeneratePair(&model.Profile{ID: uuid.New(), IsDashboardAdmin: false})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(r, pair.AccessToken).Code)
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	r, tokens := setupAuthTest(t)
	profile := &model.Profile{ID: uuid.New(), IsDashboardAdmin: true}
	pair, err := tokens.GeneratePair(profile)
	require.NoError(t, err)

	w := doRequest(r, pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), profile.ID.String())
}
