package controller

import (
	"lms_authoring_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	started time.Time
}

func NewHealthController() *HealthController {
	return &HealthController{started: time.Now()}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status": "ok",
		"uptime": time.Since(c.started).Round(time.Second).String(),
		"components": gin.H{
			"store": "memory",
		},
	})
}
