package controller

import (
	"tangle_play_backend/internal/service"
	"tangle_play_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService    *service.AdminService
	ProgressService *service.ProgressService
}

func NewAdminController(adminService *service.AdminService, progressService *service.ProgressService) *AdminController {
	return &AdminController{AdminService: adminService, ProgressService: progressService}
}

// @Summary Platform usage dashboard
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /admin/dashboard [get]
func (c *AdminController) GetDashboard(ctx *gin.Context) {
	stats, err := c.AdminService.GetDashboard()
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary List all users
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.AdminService.ListUsers()
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// @Summary One user with progress and stats
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {object} util.Response
// @Router /admin/users/{userId} [get]
func (c *AdminController) GetUserDetail(ctx *gin.Context) {
	detail, err := c.AdminService.GetUserDetail(ctx.Param("userId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary Delete a user and their progress
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {object} util.Response
// @Router /admin/users/{userId} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.AdminService.DeleteUser(ctx.Param("userId")); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary Any user's attempts in one reporting week
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param userId path string true "user id"
// @Param weekKey path string true "week key, e.g. 2026-W09"
// @Success 200 {object} util.Response
// @Router /admin/users/{userId}/weekly/{weekKey} [get]
func (c *AdminController) GetUserWeeklyAttempts(ctx *gin.Context) {
	rows, err := c.ProgressService.GetWeeklyAttempts(ctx.Param("userId"), ctx.Param("weekKey"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
