package issue

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// IssueRepository 問題倉儲介面
type IssueRepository interface {
	// Save 保存新問題
	// 錯誤：ErrIssueAlreadyExists
	Save(ctx shared.TransactionContext, issue *Issue) error

	// FindByID 查找問題
	// 錯誤：ErrIssueNotFound
	FindByID(ctx shared.TransactionContext, id IssueID) (*Issue, error)

	// Update 保存結案結果
	// 錯誤：ErrIssueNotFound
	Update(ctx shared.TransactionContext, issue *Issue) error

	// FindOpenByTask 任務尚未結案的問題
	FindOpenByTask(ctx shared.TransactionContext, taskID string) ([]*Issue, error)
}
