// 校验导出的评估 JSON 文件
//
// 使用与导入接口相同的规则检查文件，不启动服务。
// 用法: go run scripts/validate_assessment.go assessment.json [more.json ...]

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/service"
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("用法: go run scripts/validate_assessment.go <file.json>...")
	}

	svc := service.NewAssessmentService(repository.NewAssessmentRepository(), repository.NewSubmissionRepository())

	failed := 0
	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("%s: 无法读取文件: %v", path, err)
			failed++
			continue
		}

		var in model.Assessment
		if err := json.Unmarshal(data, &in); err != nil {
			log.Printf("%s: JSON 解析失败: %v", path, err)
			failed++
			continue
		}

		a, err := svc.Import(context.Background(), in)
		if err != nil {
			log.Printf("%s: 校验失败: %v", path, err)
			failed++
			continue
		}
		fmt.Printf("%s: ok (%q, %d 道题, 满分 %d, 状态 %s)\n", path, a.Title, len(a.Questions), a.TotalPoints(), a.Status)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
