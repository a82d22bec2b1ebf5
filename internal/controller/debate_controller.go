package controller

import (
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/service"
	"lms_authoring_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DebateController struct {
	Service *service.DebateService
}

func NewDebateController(svc *service.DebateService) *DebateController {
	return &DebateController{Service: svc}
}

// @Summary 创建辩论
// @Tags 辩论
// @Accept json
// @Produce json
// @Param body body service.CreateDebateRequest true "辩论"
// @Success 201 {object} util.Response{data=model.Debate}
// @Router /debates [post]
func (c *DebateController) Create(ctx *gin.Context) {
	var req service.CreateDebateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	d, err := c.Service.Create(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, d)
}

// @Summary 辩论列表
// @Tags 辩论
// @Produce json
// @Success 200 {object} util.Response
// @Router /debates [get]
func (c *DebateController) List(ctx *gin.Context) {
	util.Success(ctx, c.Service.List())
}

// @Summary 辩论详情
// @Tags 辩论
// @Produce json
// @Param id path string true "辩论ID"
// @Success 200 {object} util.Response{data=model.Debate}
// @Router /debates/{id} [get]
func (c *DebateController) Get(ctx *gin.Context) {
	d, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// @Summary 添加参与者
// @Tags 辩论
// @Accept json
// @Produce json
// @Param id path string true "辩论ID"
// @Param body body model.Participant true "参与者"
// @Success 200 {object} util.Response{data=model.Debate}
// @Router /debates/{id}/participants [post]
func (c *DebateController) AddParticipant(ctx *gin.Context) {
	var p model.Participant
	if err := ctx.ShouldBindJSON(&p); err != nil {
		util.BindError(ctx, err)
		return
	}

	d, err := c.Service.AddParticipant(ctx.Param("id"), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

type assignTeamRequest struct {
	Team model.Position `json:"team" binding:"required,oneof=for against"`
}

// @Summary 分配队伍
// @Tags 辩论
// @Accept json
// @Produce json
// @Param id path string true "辩论ID"
// @Param userId path string true "参与者ID"
// @Param body body assignTeamRequest true "队伍"
// @Success 200 {object} util.Response{data=model.Debate}
// @Router /debates/{id}/participants/{userId}/team [put]
func (c *DebateController) AssignTeam(ctx *gin.Context) {
	var req assignTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	d, err := c.Service.AssignTeam(ctx.Param("id"), ctx.Param("userId"), req.Team)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// @Summary 辩论统计
// @Tags 辩论
// @Produce json
// @Param id path string true "辩论ID"
// @Success 200 {object} util.Response{data=model.DebateAnalytics}
// @Router /debates/{id}/analytics [get]
func (c *DebateController) Analytics(ctx *gin.Context) {
	a, err := c.Service.Analytics(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}
