package member

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// ===========================
// 成員事件
// ===========================

// 事件類型
const (
	EventMemberJoined      = "MemberJoined"
	EventMemberRoleChanged = "MemberRoleChanged"
)

// MemberJoinedPayload 使用者加入工作區
type MemberJoinedPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
	AddedBy     string `json:"addedBy"`
}

// MemberRoleChangedPayload 成員角色變更
type MemberRoleChangedPayload struct {
	UserID    string `json:"userId"`
	From      Role   `json:"from"`
	To        Role   `json:"to"`
	ChangedBy string `json:"changedBy"`
}

// NewMemberJoinedEvent 建立 MemberJoined 事件
func NewMemberJoinedEvent(id MemberID, workspaceID string, payload MemberJoinedPayload, opts ...shared.EventOption) *shared.Event[MemberJoinedPayload] {
	return shared.NewEvent(EventMemberJoined, id.String(), workspaceID, payload, opts...)
}

// NewMemberRoleChangedEvent 建立 MemberRoleChanged 事件
func NewMemberRoleChangedEvent(id MemberID, workspaceID string, payload MemberRoleChangedPayload, opts ...shared.EventOption) *shared.Event[MemberRoleChangedPayload] {
	return shared.NewEvent(EventMemberRoleChanged, id.String(), workspaceID, payload, opts...)
}
