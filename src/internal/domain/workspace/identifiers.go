package workspace

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// WorkspaceMarker WorkspaceID 的標記類型
type WorkspaceMarker struct{}

// WorkspaceID 工作區唯一標識（UUID）
//
// 事件與 runtime 以 String() 作為分區鍵。
type WorkspaceID = shared.EntityID[WorkspaceMarker]

// NewWorkspaceID 生成新的工作區 ID
func NewWorkspaceID() WorkspaceID {
	return shared.NewEntityID[WorkspaceMarker]()
}

// WorkspaceIDFromString 從字串解析工作區 ID
func WorkspaceIDFromString(s string) (WorkspaceID, error) {
	return shared.EntityIDFromString[WorkspaceMarker](s, shared.ErrInvalidWorkspaceID)
}
