package qc

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// CheckRepository 品檢倉儲介面
type CheckRepository interface {
	// Save 保存新品檢
	// 錯誤：ErrCheckAlreadyExists
	Save(ctx shared.TransactionContext, check *Check) error

	// FindByID 查找品檢
	// 錯誤：ErrCheckNotFound
	FindByID(ctx shared.TransactionContext, id CheckID) (*Check, error)

	// Update 保存判定結果
	// 錯誤：ErrCheckNotFound
	Update(ctx shared.TransactionContext, check *Check) error

	// FindByTask 依排入時間列出任務的品檢紀錄
	FindByTask(ctx shared.TransactionContext, taskID string) ([]*Check, error)
}
