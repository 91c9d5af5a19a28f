package workspace

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// ===========================
// 工作區事件
// ===========================

// 事件類型
const (
	EventWorkspaceCreated  = "WorkspaceCreated"
	EventWorkspaceSwitched = "WorkspaceSwitched"
)

// WorkspaceCreatedPayload 工作區已建立
type WorkspaceCreatedPayload struct {
	Name    string `json:"name"`
	OwnerID string `json:"ownerId"`
}

// WorkspaceSwitchedPayload 使用者切換工作區
//
// FromWorkspaceID 為空代表首次進入。
type WorkspaceSwitchedPayload struct {
	UserID          string `json:"userId"`
	FromWorkspaceID string `json:"fromWorkspaceId"`
	ToWorkspaceID   string `json:"toWorkspaceId"`
}

// NewWorkspaceCreatedEvent 建立 WorkspaceCreated 事件
//
// 聚合根與分區鍵皆為工作區本身。
func NewWorkspaceCreatedEvent(id WorkspaceID, payload WorkspaceCreatedPayload, opts ...shared.EventOption) *shared.Event[WorkspaceCreatedPayload] {
	return shared.NewEvent(EventWorkspaceCreated, id.String(), id.String(), payload, opts...)
}

// NewWorkspaceSwitchedEvent 建立 WorkspaceSwitched 事件，歸屬於目標工作區
func NewWorkspaceSwitchedEvent(payload WorkspaceSwitchedPayload, opts ...shared.EventOption) *shared.Event[WorkspaceSwitchedPayload] {
	return shared.NewEvent(EventWorkspaceSwitched, payload.ToWorkspaceID, payload.ToWorkspaceID, payload, opts...)
}
