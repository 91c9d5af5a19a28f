package workspace

import (
	"sort"
	"strings"
)

// ===========================
// Permission 權限
// ===========================

// Permission 工作區內的操作權限
type Permission string

const (
	PermWorkspaceManage Permission = "workspace:manage"
	PermTaskCreate      Permission = "task:create"
	PermTaskSubmit      Permission = "task:submit"
	PermQCReview        Permission = "qc:review"
	PermIssueCreate     Permission = "issue:create"
	PermIssueResolve    Permission = "issue:resolve"
)

var allPermissions = []Permission{
	PermWorkspaceManage,
	PermTaskCreate,
	PermTaskSubmit,
	PermQCReview,
	PermIssueCreate,
	PermIssueResolve,
}

// ParsePermission 解析權限字串（不分大小寫）
func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allPermissions {
		if p == known {
			return p, nil
		}
	}
	return "", ErrInvalidPermission.WithContext("input", s)
}

// ===========================
// PermissionSet 權限集合（值對象）
// ===========================

// PermissionSet 不可變的權限集合
type PermissionSet struct {
	perms map[Permission]struct{}
}

// NewPermissionSet 建立權限集合，重複項目會合併
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := PermissionSet{perms: make(map[Permission]struct{}, len(perms))}
	for _, p := range perms {
		set.perms[p] = struct{}{}
	}
	return set
}

// OwnerPermissions 擁有者擁有全部權限
func OwnerPermissions() PermissionSet {
	return NewPermissionSet(allPermissions...)
}

// MemberPermissions 一般成員：可建立與提交任務、回報問題
func MemberPermissions() PermissionSet {
	return NewPermissionSet(PermTaskCreate, PermTaskSubmit, PermIssueCreate)
}

// Has 是否擁有指定權限
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s.perms[p]
	return ok
}

// Len 權限數量
func (s PermissionSet) Len() int {
	return len(s.perms)
}

// List 排序後的權限列表
func (s PermissionSet) List() []Permission {
	out := make([]Permission, 0, len(s.perms))
	for p := range s.perms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
