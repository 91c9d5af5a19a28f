package workspace

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
)

// MaxNameLength 工作區名稱長度上限（字元）
const MaxNameLength = 100

// ===========================
// Workspace 聚合根
// ===========================

// Workspace 工作區聚合根
//
// 工作區是事件的分區單位：每個工作區擁有獨立的事件匯流排，
// 所有事件以工作區 ID 作為 WorkspaceID。
type Workspace struct {
	id        WorkspaceID
	name      string
	ownerID   string
	createdAt time.Time

	shared.PendingEvents
}

// NewWorkspace 建立新工作區並記錄 WorkspaceCreated
func NewWorkspace(name, ownerID string, causation shared.Causation) (*Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrInvalidName.WithContext("name", name, "max_length", MaxNameLength)
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidOwnerID
	}

	ws := &Workspace{
		id:        NewWorkspaceID(),
		name:      name,
		ownerID:   ownerID,
		createdAt: time.Now(),
	}

	ws.Record(NewWorkspaceCreatedEvent(ws.id, WorkspaceCreatedPayload{
		Name:    name,
		OwnerID: ownerID,
	}, causation.Options()...))

	return ws, nil
}

// ReconstructWorkspace 從持久化資料重建（不產生事件）
func ReconstructWorkspace(id WorkspaceID, name, ownerID string, createdAt time.Time) *Workspace {
	return &Workspace{
		id:        id,
		name:      name,
		ownerID:   ownerID,
		createdAt: createdAt,
	}
}

// ID 工作區 ID
func (w *Workspace) ID() WorkspaceID {
	return w.id
}

// Name 工作區名稱
func (w *Workspace) Name() string {
	return w.name
}

// OwnerID 擁有者 ID
func (w *Workspace) OwnerID() string {
	return w.ownerID
}

// CreatedAt 建立時間
func (w *Workspace) CreatedAt() time.Time {
	return w.createdAt
}

// PermissionsFor 使用者在此工作區的權限
func (w *Workspace) PermissionsFor(userID string) PermissionSet {
	if userID == w.ownerID {
		return OwnerPermissions()
	}
	return MemberPermissions()
}
