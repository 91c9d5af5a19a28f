package member

import (
	"strings"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
)

// ===========================
// Role Value Object
// ===========================

// Role 成員在工作區內的角色
//
// 工作區擁有者不是成員，權限由 workspace.OwnerPermissions 決定。
type Role string

const (
	RoleMember   Role = "member"   // 建立、提交任務，回報問題
	RoleReviewer Role = "reviewer" // 另可判定品檢、結案問題
	RoleManager  Role = "manager"  // 全部權限
)

// ParseRole 解析角色字串（不分大小寫），空字串視為 RoleMember
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case "":
		return RoleMember, nil
	case RoleMember, RoleReviewer, RoleManager:
		return r, nil
	default:
		return "", ErrInvalidRole.WithContext("input", s)
	}
}

// String 角色字串
func (r Role) String() string {
	return string(r)
}

// Permissions 角色對應的工作區權限
func (r Role) Permissions() workspace.PermissionSet {
	switch r {
	case RoleManager:
		return workspace.OwnerPermissions()
	case RoleReviewer:
		return workspace.NewPermissionSet(
			workspace.PermTaskCreate,
			workspace.PermTaskSubmit,
			workspace.PermIssueCreate,
			workspace.PermQCReview,
			workspace.PermIssueResolve,
		)
	case RoleMember:
		return workspace.MemberPermissions()
	default:
		return workspace.NewPermissionSet()
	}
}
