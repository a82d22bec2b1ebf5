package controller

import (
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/service"
	"lms_authoring_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SubmissionController 教师评分面板
type SubmissionController struct {
	Service *service.SubmissionService
}

func NewSubmissionController(svc *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Service: svc}
}

func submissionFilter(ctx *gin.Context) (repository.SubmissionFilter, bool) {
	filter := repository.SubmissionFilter{
		AssessmentID: ctx.Query("assessmentId"),
		DebateID:     ctx.Query("debateId"),
		UserName:     ctx.Query("userName"),
	}
	if raw := ctx.Query("scored"); raw != "" {
		scored, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "scored must be true or false")
			return filter, false
		}
		filter.Scored = &scored
	}
	return filter, true
}

// @Summary 创建提交
// @Tags 评分
// @Accept json
// @Produce json
// @Param body body service.CreateSubmissionRequest true "提交"
// @Success 201 {object} util.Response{data=model.Submission}
// @Router /submissions [post]
func (c *SubmissionController) Create(ctx *gin.Context) {
	var req service.CreateSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	sub, err := c.Service.Create(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// @Summary 提交列表
// @Tags 评分
// @Produce json
// @Param assessmentId query string false "评估ID"
// @Param debateId query string false "辩论ID"
// @Param userName query string false "学生姓名"
// @Param scored query bool false "是否已评分"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /submissions [get]
func (c *SubmissionController) List(ctx *gin.Context) {
	filter, ok := submissionFilter(ctx)
	if !ok {
		return
	}
	page, limit := util.ParsePage(ctx)

	all := c.Service.List(filter)
	util.Success(ctx, util.PageResponse{
		List:  util.Paginate(all, page, limit),
		Total: int64(len(all)),
		Page:  page,
		Limit: limit,
	})
}

// @Summary 提交详情
// @Tags 评分
// @Produce json
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response{data=model.Submission}
// @Router /submissions/{id} [get]
func (c *SubmissionController) Get(ctx *gin.Context) {
	sub, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// @Summary 删除提交
// @Tags 评分
// @Produce json
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response
// @Router /submissions/{id} [delete]
func (c *SubmissionController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type scoreRequest struct {
	Score    *int   `json:"score" binding:"required"`
	Feedback string `json:"feedback"`
}

// @Summary 评分
// @Description 分数必须在 0 到满分之间，重复评分会覆盖
// @Tags 评分
// @Accept json
// @Produce json
// @Param id path string true "提交ID"
// @Param body body scoreRequest true "分数与评语"
// @Success 200 {object} util.Response{data=model.Submission}
// @Router /submissions/{id}/score [put]
func (c *SubmissionController) Score(ctx *gin.Context) {
	var req scoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	sub, err := c.Service.Score(ctx.Request.Context(), ctx.Param("id"), *req.Score, req.Feedback)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// @Summary 分数统计
// @Description 按当前过滤条件实时计算
// @Tags 评分
// @Produce json
// @Param assessmentId query string false "评估ID"
// @Param debateId query string false "辩论ID"
// @Success 200 {object} util.Response{data=model.ScoreStats}
// @Router /submissions/analytics [get]
func (c *SubmissionController) Analytics(ctx *gin.Context) {
	filter, ok := submissionFilter(ctx)
	if !ok {
		return
	}
	util.Success(ctx, c.Service.Analytics(filter))
}
