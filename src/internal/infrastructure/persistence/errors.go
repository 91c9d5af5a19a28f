package persistence

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// uniqueViolationMarkers 各資料庫的唯一約束違反訊息
// SQLite: "UNIQUE constraint failed"；PostgreSQL: "duplicate key"；MySQL: "Duplicate entry"
var uniqueViolationMarkers = []string{"UNIQUE constraint", "duplicate key", "Duplicate entry"}

// isUniqueConstraintError 是否為唯一約束違反
func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, marker := range uniqueViolationMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// mapError 映射 GORM 錯誤到 Domain 錯誤
//
//	gorm.ErrRecordNotFound → notFound
//	唯一約束違反          → exists
//	其他                  → 包裝後的原始錯誤
func mapError(err, notFound, exists error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case isUniqueConstraintError(err):
		return exists
	default:
		return fmt.Errorf("database error: %w", err)
	}
}
