package member

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
)

// MaxDisplayNameLength 顯示名稱長度上限（字元）
const MaxDisplayNameLength = 100

// ===========================
// Member Aggregate Root
// ===========================

// Member 工作區成員聚合根
//
// 聚合邊界：
// - 成員身分（MemberID, WorkspaceID, UserID, DisplayName）
// - 角色（Role）
// - 審計欄位（JoinedAt, UpdatedAt, Version）
//
// 不變量（Invariants）：
// 1. 同一工作區內 UserID 唯一（由 Repository 保證）
// 2. 必須有顯示名稱
// 3. JoinedAt 不可變更
// 4. 每次角色變更 version + 1（樂觀鎖）
type Member struct {
	memberID    MemberID
	workspaceID string
	userID      string
	displayName string
	role        Role

	joinedAt  time.Time
	updatedAt time.Time
	version   int

	shared.PendingEvents
}

// NewMemberParams 加入成員參數
type NewMemberParams struct {
	WorkspaceID string
	UserID      string
	DisplayName string
	Role        Role
	AddedBy     string
	Causation   shared.Causation
}

// NewMember 建立成員並記錄 MemberJoined
//
// 業務規則：
// 1. UserID 與 DisplayName 不能為空
// 2. Role 為空時視為 RoleMember
// 3. 初始 version 為 1
func NewMember(p NewMemberParams) (*Member, error) {
	userID := strings.TrimSpace(p.UserID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	displayName := strings.TrimSpace(p.DisplayName)
	if displayName == "" || utf8.RuneCountInString(displayName) > MaxDisplayNameLength {
		return nil, ErrInvalidDisplayName.WithContext("display_name", p.DisplayName, "max_length", MaxDisplayNameLength)
	}

	role, err := ParseRole(string(p.Role))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m := &Member{
		memberID:    NewMemberID(),
		workspaceID: p.WorkspaceID,
		userID:      userID,
		displayName: displayName,
		role:        role,
		joinedAt:    now,
		updatedAt:   now,
		version:     1,
	}

	m.Record(NewMemberJoinedEvent(m.memberID, m.workspaceID, MemberJoinedPayload{
		UserID:      userID,
		DisplayName: displayName,
		Role:        role,
		AddedBy:     p.AddedBy,
	}, p.Causation.Options()...))

	return m, nil
}

// ReconstructParams 重建參數（僅 Repository 使用）
type ReconstructParams struct {
	MemberID    MemberID
	WorkspaceID string
	UserID      string
	DisplayName string
	Role        Role
	JoinedAt    time.Time
	UpdatedAt   time.Time
	Version     int
}

// ReconstructMember 從資料庫載入（不執行業務規則，不產生事件）
func ReconstructMember(p ReconstructParams) (*Member, error) {
	if p.DisplayName == "" {
		return nil, ErrInvalidDisplayName
	}
	if _, err := ParseRole(string(p.Role)); err != nil {
		return nil, err
	}

	return &Member{
		memberID:    p.MemberID,
		workspaceID: p.WorkspaceID,
		userID:      p.UserID,
		displayName: p.DisplayName,
		role:        p.Role,
		joinedAt:    p.JoinedAt,
		updatedAt:   p.UpdatedAt,
		version:     p.Version,
	}, nil
}

// ===========================
// Member Aggregate Behavior Methods
// ===========================

// ChangeRole 變更角色並記錄 MemberRoleChanged
//
// 角色相同時返回 ErrRoleUnchanged，不產生事件。
func (m *Member) ChangeRole(role Role, changedBy string, causation shared.Causation) error {
	parsed, err := ParseRole(string(role))
	if err != nil {
		return err
	}
	if parsed == m.role {
		return ErrRoleUnchanged.WithContext("member_id", m.memberID.String(), "role", parsed.String())
	}

	from := m.role
	m.role = parsed
	m.updatedAt = time.Now()
	m.version++

	m.Record(NewMemberRoleChangedEvent(m.memberID, m.workspaceID, MemberRoleChangedPayload{
		UserID:    m.userID,
		From:      from,
		To:        parsed,
		ChangedBy: changedBy,
	}, causation.Options()...))
	return nil
}

// Permissions 成員目前角色的權限
func (m *Member) Permissions() workspace.PermissionSet {
	return m.role.Permissions()
}

// ===========================
// Member Aggregate Getters
// ===========================

// MemberID 成員 ID
func (m *Member) MemberID() MemberID {
	return m.memberID
}

// WorkspaceID 所屬工作區
func (m *Member) WorkspaceID() string {
	return m.workspaceID
}

// UserID 使用者 ID
func (m *Member) UserID() string {
	return m.userID
}

// DisplayName 顯示名稱
func (m *Member) DisplayName() string {
	return m.displayName
}

// Role 目前角色
func (m *Member) Role() Role {
	return m.role
}

// JoinedAt 加入時間
func (m *Member) JoinedAt() time.Time {
	return m.joinedAt
}

// UpdatedAt 更新時間
func (m *Member) UpdatedAt() time.Time {
	return m.updatedAt
}

// Version 版本號（用於樂觀鎖）
func (m *Member) Version() int {
	return m.version
}
