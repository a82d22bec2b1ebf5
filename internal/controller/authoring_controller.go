package controller

import (
	"lms_authoring_backend/internal/service"
	"lms_authoring_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AuthoringController 出题界面：详情步骤、题目步骤、保存与发布
type AuthoringController struct {
	Service *service.AuthoringService
}

func NewAuthoringController(svc *service.AuthoringService) *AuthoringController {
	return &AuthoringController{Service: svc}
}

// @Summary 新建出题会话
// @Tags 评估编辑
// @Accept json
// @Produce json
// @Param body body service.AssessmentDetailsRequest false "评估详情"
// @Success 201 {object} util.Response
// @Router /authoring/sessions [post]
func (c *AuthoringController) CreateSession(ctx *gin.Context) {
	var req service.AssessmentDetailsRequest
	if _, err := util.BindOptionalJSON(ctx, &req); err != nil {
		util.BindError(ctx, err)
		return
	}

	sess, err := c.Service.CreateSession(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, sess)
}

// @Summary 打开已保存的评估继续编辑
// @Tags 评估编辑
// @Produce json
// @Param id path string true "评估ID"
// @Success 201 {object} util.Response
// @Router /assessments/{id}/edit [post]
func (c *AuthoringController) OpenSession(ctx *gin.Context) {
	sess, err := c.Service.OpenSession(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, sess)
}

// @Summary 获取出题会话
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id} [get]
func (c *AuthoringController) GetSession(ctx *gin.Context) {
	sess, err := c.Service.GetSession(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary 放弃出题会话
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id} [delete]
func (c *AuthoringController) DiscardSession(ctx *gin.Context) {
	if err := c.Service.DiscardSession(ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 修改评估详情
// @Tags 评估编辑
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param body body service.AssessmentDetailsRequest true "评估详情"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/details [put]
func (c *AuthoringController) UpdateDetails(ctx *gin.Context) {
	var req service.AssessmentDetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	sess, err := c.Service.UpdateDetails(ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary 进入题目步骤
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/continue [post]
func (c *AuthoringController) ContinueToQuestions(ctx *gin.Context) {
	sess, err := c.Service.ContinueToQuestions(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary 返回详情步骤
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/back [post]
func (c *AuthoringController) BackToDetails(ctx *gin.Context) {
	sess, err := c.Service.BackToDetails(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary 修改当前题目草稿
// @Tags 评估编辑
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param body body service.QuestionDraftRequest true "草稿字段"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/draft [patch]
func (c *AuthoringController) UpdateDraft(ctx *gin.Context) {
	var req service.QuestionDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	sess, err := c.Service.UpdateDraft(ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary 草稿追加选项
// @Description 已有6个选项时不做修改
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/draft/options [post]
func (c *AuthoringController) AddOption(ctx *gin.Context) {
	sess, err := c.Service.AddOption(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

type updateOptionRequest struct {
	Value string `json:"value"`
}

// @Summary 修改草稿选项
// @Tags 评估编辑
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param index path int true "选项下标"
// @Param body body updateOptionRequest true "选项内容"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/draft/options/{index} [put]
func (c *AuthoringController) UpdateOption(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "invalid option index")
		return
	}
	var req updateOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	sess, err := c.Service.UpdateOption(ctx.Param("id"), index, req.Value)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary 删除草稿选项
// @Description 剩余不足2个时不做修改
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Param index path int true "选项下标"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/draft/options/{index} [delete]
func (c *AuthoringController) RemoveOption(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "invalid option index")
		return
	}

	sess, err := c.Service.RemoveOption(ctx.Param("id"), index)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary 提交草稿为题目
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Success 201 {object} util.Response
// @Router /authoring/sessions/{id}/questions [post]
func (c *AuthoringController) AddQuestion(ctx *gin.Context) {
	sess, q, err := c.Service.AddQuestion(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{
		"session":  sess,
		"question": q,
	})
}

// @Summary 删除题目
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Param questionId path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/questions/{questionId} [delete]
func (c *AuthoringController) DeleteQuestion(ctx *gin.Context) {
	sess, err := c.Service.DeleteQuestion(ctx.Param("id"), ctx.Param("questionId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary 保存为草稿
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/save [post]
func (c *AuthoringController) SaveAsDraft(ctx *gin.Context) {
	a, err := c.Service.SaveAsDraft(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 发布评估
// @Tags 评估编辑
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /authoring/sessions/{id}/publish [post]
func (c *AuthoringController) Publish(ctx *gin.Context) {
	a, err := c.Service.Publish(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}
