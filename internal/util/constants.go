package util

const DateFormat = "2006-01-02"

// 题目编辑约束
const (
	MinOptions         = 2
	MaxOptions         = 6
	DefaultOptionSlots = 4
	DefaultPoints      = 1
	DefaultTimeLimit   = 60 // 秒
)

// 评估默认值
const (
	DefaultAssessmentMinutes = 15
	MaxPassingScore          = 100
)

// 分页
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)
