package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/jwt"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/response"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
	"github.com/vyntrixhost/portal_go_server/internal/testutil"
)

func TestAdminOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	admin := testutil.TestUser(t, db, testutil.WithRole(model.RoleAdmin))
	client := testutil.TestUser(t, db)

	router := gin.New()
	router.Use(Auth(testJWTSecret), AdminOnly(userRepo))
	router.GET("/admin", func(c *gin.Context) {
		response.Success(c, nil)
	})

	doRequest := func(userID int64) response.Response {
		token, err := jwt.GenerateToken(userID, testJWTSecret, 24)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return parseResponse(t, w)
	}

	t.Run("admin allowed", func(t *testing.T) {
		resp := doRequest(admin.ID)
		assert.Equal(t, response.CodeSuccess, resp.Code)
	})

	t.Run("client denied", func(t *testing.T) {
		resp := doRequest(client.ID)
		assert.Equal(t, response.CodePermissionDenied, resp.Code)
	})

	t.Run("unknown user denied", func(t *testing.T) {
		resp := doRequest(99999)
		assert.Equal(t, response.CodeAuthFailed, resp.Code)
	})

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeAuthFailed, resp.Code)
	})
}
