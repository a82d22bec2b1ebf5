package controller

import (
	"fmt"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/service"
	"lms_authoring_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// @Summary 评估列表
// @Tags 评估
// @Produce json
// @Param status query string false "draft 或 published"
// @Param category query string false "分类"
// @Param q query string false "标题关键字"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	filter := repository.AssessmentFilter{
		Status:   model.AssessmentStatus(ctx.Query("status")),
		Category: ctx.Query("category"),
		Query:    ctx.Query("q"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		util.BadRequest(ctx, "status must be draft or published")
		return
	}
	page, limit := util.ParsePage(ctx)

	list, total := c.Service.List(filter, page, limit)
	util.Success(ctx, util.PageResponse{
		List:  list,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 评估详情
// @Tags 评估
// @Produce json
// @Param id path string true "评估ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	a, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 删除评估
// @Description 同时删除该评估的全部提交
// @Tags 评估
// @Produce json
// @Param id path string true "评估ID"
// @Success 200 {object} util.Response
// @Router /assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 导出评估 JSON
// @Tags 评估
// @Produce json
// @Param id path string true "评估ID"
// @Success 200 {object} model.Assessment
// @Router /assessments/{id}/export [get]
func (c *AssessmentController) Export(ctx *gin.Context) {
	a, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="assessment_%s.json"`, a.ID))
	ctx.JSON(http.StatusOK, a)
}

// @Summary 导入评估 JSON
// @Description 使用导出格式，作为新评估保存
// @Tags 评估
// @Accept json
// @Produce json
// @Param body body model.Assessment true "评估"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Router /assessments/import [post]
func (c *AssessmentController) Import(ctx *gin.Context) {
	var in model.Assessment
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BindError(ctx, err)
		return
	}

	a, err := c.Service.Import(ctx.Request.Context(), in)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, a)
}
