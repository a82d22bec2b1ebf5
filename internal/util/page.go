package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePage 读取 page/limit 查询参数，非法值回退默认值
func ParsePage(c *gin.Context) (int, int) {
	page := DefaultPage
	limit := DefaultLimit
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Paginate 对已排序的切片分页，页码超出范围时返回空切片
// 先按页数比较再相乘，超大页码不会溢出
func Paginate[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return []T{}
	}
	pages := (len(items) + limit - 1) / limit
	if page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
