package member

import (
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
)

// ===========================
// MemberRepository Interface
// ===========================

// MemberRepository 成員倉儲介面
//
// 事務管理策略：
//
// 寫操作（Save、Update）ctx 應為 non-nil，與重複性檢查在同一事務中執行：
//
//	txManager.InTransaction(func(ctx shared.TransactionContext) error {
//	    exists, _ := repo.ExistsByUser(ctx, workspaceID, userID)
//	    if exists {
//	        return ErrMemberAlreadyExists
//	    }
//	    return repo.Save(ctx, m)
//	})
//
// 讀操作 ctx 可為 nil，此時使用獨立連接。
type MemberRepository interface {
	// Save 保存新成員
	// 錯誤：ErrMemberAlreadyExists（同一工作區 UserID 重複）
	Save(ctx shared.TransactionContext, m *Member) error

	// Update 以樂觀鎖更新成員（比對載入時的 version）
	// 錯誤：ErrMemberNotFound（不存在或 version 已被其他寫入推進）
	Update(ctx shared.TransactionContext, m *Member) error

	// FindByUser 查找工作區內的使用者
	// 錯誤：ErrMemberNotFound
	FindByUser(ctx shared.TransactionContext, workspaceID, userID string) (*Member, error)

	// FindByWorkspace 依加入時間列出工作區成員
	FindByWorkspace(ctx shared.TransactionContext, workspaceID string) ([]*Member, error)

	// ExistsByUser 使用者是否已是工作區成員（COUNT 查詢）
	ExistsByUser(ctx shared.TransactionContext, workspaceID, userID string) (bool, error)
}
