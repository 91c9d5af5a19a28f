// Package workspace 管理工作區 runtime（工作區上下文 + 專屬事件匯流排）與工作區 Use Case
package workspace

import (
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
)

// ===========================
// WorkspaceContext
// ===========================

// Descriptor 建立 runtime 所需的工作區資訊
//
// UserID 為 runtime 代表的使用者，用於解析權限。
type Descriptor struct {
	ID      string
	Name    string
	OwnerID string
	UserID  string
}

// DescriptorOf 由工作區聚合建立 Descriptor
func DescriptorOf(ws *workspace.Workspace, userID string) Descriptor {
	return Descriptor{
		ID:      ws.ID().String(),
		Name:    ws.Name(),
		OwnerID: ws.OwnerID(),
		UserID:  userID,
	}
}

// WorkspaceContext runtime 內不可變的工作區上下文
type WorkspaceContext struct {
	WorkspaceID string
	Name        string
	OwnerID     string
	UserID      string
	Permissions workspace.PermissionSet
}

// Can 是否擁有權限
func (c WorkspaceContext) Can(p workspace.Permission) bool {
	return c.Permissions.Has(p)
}

// Require 缺少權限時返回 ErrPermissionDenied
func (c WorkspaceContext) Require(p workspace.Permission) error {
	if c.Can(p) {
		return nil
	}
	return shared.ErrPermissionDenied.WithContext(
		"workspace_id", c.WorkspaceID,
		"user_id", c.UserID,
		"permission", string(p),
	)
}

// ===========================
// WorkspaceRuntime
// ===========================

// WorkspaceRuntime 工作區上下文與其專屬事件匯流排
//
// 由 WorkspaceRuntimeFactory 建立與銷毀；不同工作區的匯流排互不共享訂閱。
type WorkspaceRuntime struct {
	Context  WorkspaceContext
	EventBus shared.EventBus

	moduleBus ModuleEventBus
}

// WorkspaceID 工作區 ID
func (r *WorkspaceRuntime) WorkspaceID() string {
	return r.Context.WorkspaceID
}

// ModuleBus 交給功能模組使用的受限匯流排
func (r *WorkspaceRuntime) ModuleBus() ModuleEventBus {
	return r.moduleBus
}
