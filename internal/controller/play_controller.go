package controller

import (
	"tangle_play_backend/internal/service"
	"tangle_play_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlayController struct {
	PlayService *service.PlayService
}

func NewPlayController(playService *service.PlayService) *PlayController {
	return &PlayController{PlayService: playService}
}

// @Summary Evaluate the level's phase for the caller
// @Tags play
// @Security ApiKeyAuth
// @Produce json
// @Param category path string true "category"
// @Param levelNumber path int true "level number"
// @Success 200 {object} util.Response
// @Router /levels/{category}/{levelNumber}/phase [get]
func (c *PlayController) EvaluatePhase(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	category, ok := categoryParam(ctx)
	if !ok {
		return
	}
	number, ok := levelNumberParam(ctx)
	if !ok {
		return
	}

	phase, err := c.PlayService.EvaluatePhase(claims.UserID, category, number)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"phase": phase})
}

// @Summary Record a scored attempt
// @Tags play
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param category path string true "category"
// @Param levelNumber path int true "level number"
// @Param body body service.AttemptRequest true "attempt outcome"
// @Success 201 {object} util.Response
// @Router /levels/{category}/{levelNumber}/attempts [post]
func (c *PlayController) RecordAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	category, ok := categoryParam(ctx)
	if !ok {
		return
	}
	number, ok := levelNumberParam(ctx)
	if !ok {
		return
	}

	var req service.AttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PlayService.RecordAttempt(claims.UserID, category, number, req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
