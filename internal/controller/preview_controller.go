package controller

import (
	"lms_authoring_backend/internal/service"
	"lms_authoring_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PreviewController 学习者预览答题
type PreviewController struct {
	Service *service.PreviewService
}

func NewPreviewController(svc *service.PreviewService) *PreviewController {
	return &PreviewController{Service: svc}
}

// @Summary 创建预览会话
// @Tags 学习者预览
// @Produce json
// @Param id path string true "评估ID"
// @Success 201 {object} util.Response{data=model.PreviewView}
// @Router /assessments/{id}/previews [post]
func (c *PreviewController) Create(ctx *gin.Context) {
	v, err := c.Service.Create(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, v)
}

// @Summary 当前题目
// @Tags 学习者预览
// @Produce json
// @Param id path string true "预览ID"
// @Success 200 {object} util.Response{data=model.PreviewView}
// @Router /previews/{id} [get]
func (c *PreviewController) View(ctx *gin.Context) {
	v, err := c.Service.View(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, v)
}

// @Summary 关闭预览
// @Tags 学习者预览
// @Produce json
// @Param id path string true "预览ID"
// @Success 200 {object} util.Response
// @Router /previews/{id} [delete]
func (c *PreviewController) Discard(ctx *gin.Context) {
	if err := c.Service.Discard(ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 开始答题
// @Tags 学习者预览
// @Produce json
// @Param id path string true "预览ID"
// @Success 200 {object} util.Response{data=model.PreviewView}
// @Router /previews/{id}/start [post]
func (c *PreviewController) Start(ctx *gin.Context) {
	v, err := c.Service.Start(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, v)
}

type answerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Value      string `json:"value"`
}

// @Summary 作答
// @Description 覆盖该题之前的答案
// @Tags 学习者预览
// @Accept json
// @Produce json
// @Param id path string true "预览ID"
// @Param body body answerRequest true "答案"
// @Success 200 {object} util.Response{data=model.PreviewView}
// @Router /previews/{id}/answers [put]
func (c *PreviewController) Answer(ctx *gin.Context) {
	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	v, err := c.Service.Answer(ctx.Param("id"), req.QuestionID, req.Value)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, v)
}

// @Summary 下一题
// @Tags 学习者预览
// @Produce json
// @Param id path string true "预览ID"
// @Success 200 {object} util.Response{data=model.PreviewView}
// @Router /previews/{id}/next [post]
func (c *PreviewController) Next(ctx *gin.Context) {
	v, err := c.Service.Next(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, v)
}

// @Summary 上一题
// @Tags 学习者预览
// @Produce json
// @Param id path string true "预览ID"
// @Success 200 {object} util.Response{data=model.PreviewView}
// @Router /previews/{id}/previous [post]
func (c *PreviewController) Previous(ctx *gin.Context) {
	v, err := c.Service.Previous(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, v)
}

// @Summary 交卷
// @Description 带上学习者信息时会生成一条提交记录供教师评分
// @Tags 学习者预览
// @Accept json
// @Produce json
// @Param id path string true "预览ID"
// @Param body body service.Learner false "学习者"
// @Success 200 {object} util.Response{data=model.PreviewResult}
// @Router /previews/{id}/submit [post]
func (c *PreviewController) Submit(ctx *gin.Context) {
	var learner *service.Learner
	body := &service.Learner{}
	ok, err := util.BindOptionalJSON(ctx, body)
	if err != nil {
		util.BindError(ctx, err)
		return
	}
	if ok {
		learner = body
	}

	result, err := c.Service.Submit(ctx.Request.Context(), ctx.Param("id"), learner)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
