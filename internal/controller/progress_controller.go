package controller

import (
	"strconv"

	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/service"
	"tangle_play_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary Caller's full progress history
// @Tags progress
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.ProgressService.GetUserProgress(claims.UserID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary Caller's aggregated stats
// @Tags progress
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /progress/stats [get]
func (c *ProgressController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.ProgressService.GetUserStats(claims.UserID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Caller's attempts in one reporting week
// @Tags progress
// @Security ApiKeyAuth
// @Produce json
// @Param weekKey path string true "week key, e.g. 2026-W09"
// @Success 200 {object} util.Response
// @Router /progress/weekly/{weekKey} [get]
func (c *ProgressController) GetWeeklyAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.ProgressService.GetWeeklyAttempts(claims.UserID, ctx.Param("weekKey"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary Leaderboard, optionally scoped to a category
// @Tags progress
// @Security ApiKeyAuth
// @Produce json
// @Param category query string false "category"
// @Param limit query int false "max entries" default(10)
// @Success 200 {object} util.Response
// @Router /leaderboard [get]
func (c *ProgressController) GetLeaderboard(ctx *gin.Context) {
	category := model.Category(ctx.Query("category"))

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			util.BadRequest(ctx, "invalid limit")
			return
		}
		limit = v
	}

	entries, err := c.ProgressService.GetLeaderboard(ctx.Request.Context(), category, limit)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
