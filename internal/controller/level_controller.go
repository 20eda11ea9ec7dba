package controller

import (
	"encoding/json"
	"io"
	"strconv"

	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/service"
	"tangle_play_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LevelController struct {
	LevelService *service.LevelService
	Ingest       service.PageExtractor
}

func NewLevelController(levelService *service.LevelService, ingest service.PageExtractor) *LevelController {
	return &LevelController{LevelService: levelService, Ingest: ingest}
}

func categoryParam(ctx *gin.Context) (model.Category, bool) {
	category := model.Category(ctx.Param("category"))
	if !category.Valid() {
		util.BadRequest(ctx, "unknown category")
		return "", false
	}
	return category, true
}

func levelNumberParam(ctx *gin.Context) (int, bool) {
	n, err := strconv.Atoi(ctx.Param("levelNumber"))
	if err != nil || n < 1 {
		util.BadRequest(ctx, "invalid level number")
		return 0, false
	}
	return n, true
}

// @Summary List a category's levels with the caller's phase per level
// @Tags levels
// @Security ApiKeyAuth
// @Produce json
// @Param category path string true "category"
// @Success 200 {object} util.Response
// @Router /levels/{category} [get]
func (c *LevelController) ListLevels(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	category, ok := categoryParam(ctx)
	if !ok {
		return
	}

	levels, err := c.LevelService.ListLevelsForUser(claims.UserID, category)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, levels)
}

// @Summary Get one level
// @Tags levels
// @Security ApiKeyAuth
// @Produce json
// @Param category path string true "category"
// @Param levelNumber path int true "level number"
// @Success 200 {object} util.Response
// @Router /levels/{category}/{levelNumber} [get]
func (c *LevelController) GetLevel(ctx *gin.Context) {
	category, ok := categoryParam(ctx)
	if !ok {
		return
	}
	number, ok := levelNumberParam(ctx)
	if !ok {
		return
	}

	level, err := c.LevelService.GetLevel(category, number)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, level)
}

// @Summary Upload a PDF and create one level per page
// @Tags admin
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param category path string true "category"
// @Param pdf formData file true "puzzle sheet PDF"
// @Success 201 {object} util.Response
// @Router /admin/levels/{category}/upload [post]
func (c *LevelController) UploadLevels(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	category, ok := categoryParam(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("pdf")
	if err != nil {
		util.BadRequest(ctx, "pdf file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	pages, err := c.Ingest.ExtractPages(ctx.Request.Context(), category, document)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	levels, err := c.LevelService.CreateLevelsFromPages(category, pages, claims.Email)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, levels)
}

// @Summary Patch a level's mutable fields
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param category path string true "category"
// @Param levelNumber path int true "level number"
// @Param body body service.LevelPatch true "fields to change"
// @Success 200 {object} util.Response
// @Router /admin/levels/{category}/{levelNumber} [patch]
func (c *LevelController) UpdateLevel(ctx *gin.Context) {
	category, ok := categoryParam(ctx)
	if !ok {
		return
	}
	number, ok := levelNumberParam(ctx)
	if !ok {
		return
	}

	// strict decode: unknown fields are rejected, not forwarded
	var patch service.LevelPatch
	decoder := json.NewDecoder(ctx.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	level, err := c.LevelService.UpdateLevel(category, number, patch)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, level)
}

// @Summary Delete a level and its progress rows
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param category path string true "category"
// @Param levelNumber path int true "level number"
// @Success 200 {object} util.Response
// @Router /admin/levels/{category}/{levelNumber} [delete]
func (c *LevelController) DeleteLevel(ctx *gin.Context) {
	category, ok := categoryParam(ctx)
	if !ok {
		return
	}
	number, ok := levelNumberParam(ctx)
	if !ok {
		return
	}

	if err := c.LevelService.DeleteLevel(category, number); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary List every level across categories
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /admin/levels [get]
func (c *LevelController) ListAllLevels(ctx *gin.Context) {
	levels, err := c.LevelService.ListAllLevels()
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, levels)
}
