package service

import (
	"lms_authoring_backend/internal/model"

	"github.com/shopspring/decimal"
)

// ComputeAnalytics 对提交列表实时汇总，只统计已评分的提交
// 没有已评分提交时平均分、最高分、最低分都为 0
func ComputeAnalytics(submissions []model.Submission) model.ScoreStats {
	stats := model.ScoreStats{Count: len(submissions)}

	sum := 0
	for _, s := range submissions {
		if s.Score == nil {
			continue
		}
		v := *s.Score
		if stats.CompletedCount == 0 {
			stats.Min, stats.Max = v, v
		} else {
			if v < stats.Min {
				stats.Min = v
			}
			if v > stats.Max {
				stats.Max = v
			}
		}
		sum += v
		stats.CompletedCount++
	}

	if stats.CompletedCount > 0 {
		avg := decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(stats.CompletedCount))).
			Round(1)
		stats.Average = avg.InexactFloat64()
	}
	return stats
}

// CountBy 按 key 返回的类别计数
func CountBy[T any](items []T, key func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[key(item)]++
	}
	return counts
}
