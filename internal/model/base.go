package model

import (
	"github.com/google/uuid"
)

// NewID 生成实体ID，删除后不会复用
func NewID() string {
	return uuid.New().String()
}
