package workspace

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// WorkspaceRepository 工作區倉儲介面
type WorkspaceRepository interface {
	// Save 保存新工作區
	// 錯誤：ErrWorkspaceAlreadyExists
	Save(ctx shared.TransactionContext, ws *Workspace) error

	// FindByID 查找工作區
	// 錯誤：ErrWorkspaceNotFound
	FindByID(ctx shared.TransactionContext, id WorkspaceID) (*Workspace, error)

	// FindByOwner 依建立時間列出擁有者的工作區
	FindByOwner(ctx shared.TransactionContext, ownerID string) ([]*Workspace, error)
}
