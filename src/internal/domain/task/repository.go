package task

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// TaskRepository 任務倉儲介面
//
// 寫方法應在 TransactionManager.InTransaction 內呼叫。
type TaskRepository interface {
	// Save 保存新任務
	// 錯誤：ErrTaskAlreadyExists
	Save(ctx shared.TransactionContext, task *Task) error

	// FindByID 查找任務
	// 錯誤：ErrTaskNotFound
	FindByID(ctx shared.TransactionContext, id TaskID) (*Task, error)

	// Update 更新任務狀態
	// 錯誤：ErrTaskNotFound
	Update(ctx shared.TransactionContext, task *Task) error

	// FindByWorkspace 依建立時間列出工作區內的任務
	FindByWorkspace(ctx shared.TransactionContext, workspaceID string) ([]*Task, error)
}
