package controller

import (
	"lms_authoring_backend/internal/service"
	"lms_authoring_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	Service *service.AttendanceService
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{Service: svc}
}

// queryDate 未传 date 时使用当天
func (c *AttendanceController) queryDate(ctx *gin.Context) string {
	if d := ctx.Query("date"); d != "" {
		return d
	}
	return c.Service.Today()
}

func attendanceFilter(ctx *gin.Context) service.AttendanceFilter {
	return service.AttendanceFilter{
		Search: ctx.Query("search"),
		Status: ctx.DefaultQuery("status", "all"),
	}
}

// @Summary 添加学生
// @Tags 考勤
// @Accept json
// @Produce json
// @Param body body service.AddStudentRequest true "学生"
// @Success 201 {object} util.Response{data=model.Student}
// @Router /attendance/students [post]
func (c *AttendanceController) AddStudent(ctx *gin.Context) {
	var req service.AddStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	st, err := c.Service.AddStudent(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, st)
}

// @Summary 学生名册
// @Tags 考勤
// @Produce json
// @Success 200 {object} util.Response
// @Router /attendance/students [get]
func (c *AttendanceController) ListStudents(ctx *gin.Context) {
	util.Success(ctx, c.Service.ListStudents())
}

// @Summary 记录考勤
// @Description 未来日期只读
// @Tags 考勤
// @Accept json
// @Produce json
// @Param body body service.MarkAttendanceRequest true "考勤记录"
// @Success 200 {object} util.Response{data=model.AttendanceRecord}
// @Router /attendance/records [put]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	rec, err := c.Service.Mark(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary 某日考勤列表
// @Description 未来日期返回空列表
// @Tags 考勤
// @Produce json
// @Param date query string false "yyyy-MM-dd，默认今天"
// @Param search query string false "姓名或邮箱"
// @Param status query string false "all|present|absent|late|unmarked"
// @Success 200 {object} util.Response
// @Router /attendance/records [get]
func (c *AttendanceController) List(ctx *gin.Context) {
	rows, err := c.Service.List(c.queryDate(ctx), attendanceFilter(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 某日考勤汇总
// @Tags 考勤
// @Produce json
// @Param date query string false "yyyy-MM-dd，默认今天"
// @Success 200 {object} util.Response{data=model.AttendanceSummary}
// @Router /attendance/summary [get]
func (c *AttendanceController) Summary(ctx *gin.Context) {
	s, err := c.Service.Summary(c.queryDate(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, s)
}

// @Summary 导出考勤 CSV
// @Description 未来日期返回 204，不产生文件
// @Tags 考勤
// @Produce text/csv
// @Param date query string false "yyyy-MM-dd，默认今天"
// @Param search query string false "姓名或邮箱"
// @Param status query string false "all|present|absent|late|unmarked"
// @Success 200 {file} file
// @Success 204
// @Router /attendance/export [get]
func (c *AttendanceController) Export(ctx *gin.Context) {
	filename, data, ok, err := c.Service.ExportCSV(c.queryDate(ctx), attendanceFilter(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if !ok {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
