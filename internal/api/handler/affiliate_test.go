package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/response"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
	"github.com/vyntrixhost/portal_go_server/internal/service"
	"github.com/vyntrixhost/portal_go_server/internal/testutil"
)

func setupAffiliateHandler(t *testing.T) (*AffiliateHandler, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	cfg := testHandlerConfig()
	userRepo := repository.NewUserRepository(db)
	affiliateRepo := repository.NewAffiliateRepository(db)

	affiliateService := service.NewAffiliateService(
		affiliateRepo,
		repository.NewWithdrawRepository(db),
		cfg,
	)
	authService := service.NewAuthService(userRepo, affiliateRepo, cfg)

	return NewAffiliateHandler(affiliateService, authService), db
}

func TestAffiliateHandler_Stats(t *testing.T) {
	handler, db := setupAffiliateHandler(t)
	user := testutil.TestUser(t, db)
	testutil.TestAffiliate(t, db, user.ID,
		testutil.WithCode("STATS001"), testutil.WithBalance(42.00))

	router := gin.New()
	router.GET("/stats", asUser(user.ID), handler.Stats)

	w := performRequest(router, "GET", "/stats", nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "STATS001", data["code"])
	assert.Equal(t, 42.00, data["balance"])
}

func TestAffiliateHandler_Stats_NotFound(t *testing.T) {
	handler, db := setupAffiliateHandler(t)
	user := testutil.TestUser(t, db)

	router := gin.New()
	router.GET("/stats", asUser(user.ID), handler.Stats)

	w := performRequest(router, "GET", "/stats", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestAffiliateHandler_EnsureCode(t *testing.T) {
	handler, db := setupAffiliateHandler(t)
	user := testutil.TestUser(t, db)

	router := gin.New()
	router.POST("/code", asUser(user.ID), handler.EnsureCode)

	w := performRequest(router, "POST", "/code", nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	code, _ := data["code"].(string)
	assert.Len(t, code, 8)
	assert.Contains(t, data["link"], "/login?ref="+code)

	// Idempotent: second call returns the same code.
	w = performRequest(router, "POST", "/code", nil)
	resp = parseResponse(t, w)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, code, data["code"])
}

func TestAffiliateHandler_TrackClick(t *testing.T) {
	handler, db := setupAffiliateHandler(t)
	user := testutil.TestUser(t, db)
	affiliate := testutil.TestAffiliate(t, db, user.ID, testutil.WithCode("LINK0001"))

	router := gin.New()
	router.POST("/clicks/:code", handler.TrackClick)

	w := performRequest(router, "POST", "/clicks/LINK0001", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	var updated model.Affiliate
	require.NoError(t, db.First(&updated, affiliate.ID).Error)
	assert.Equal(t, 1, updated.Clicks)

	w = performRequest(router, "POST", "/clicks/NAOEXISTE", nil)
	resp = parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestAffiliateHandler_RequestWithdraw(t *testing.T) {
	handler, db := setupAffiliateHandler(t)
	user := testutil.TestUser(t, db)
	testutil.TestAffiliate(t, db, user.ID, testutil.WithBalance(80.00))

	router := gin.New()
	router.POST("/withdrawals", asUser(user.ID), handler.RequestWithdraw)

	t.Run("below minimum", func(t *testing.T) {
		w := performRequest(router, "POST", "/withdrawals", dto.RequestWithdrawRequest{Amount: 10.00})
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeParamError, resp.Code)
	})

	t.Run("success", func(t *testing.T) {
		w := performRequest(router, "POST", "/withdrawals", dto.RequestWithdrawRequest{Amount: 60.00})
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeSuccess, resp.Code)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		w := performRequest(router, "POST", "/withdrawals", dto.RequestWithdrawRequest{Amount: 60.00})
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeInsufficientFund, resp.Code)
	})
}
