package member

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// ===========================
// Member Domain 錯誤定義
// ===========================

const (
	ErrCodeMemberAlreadyExists shared.ErrorCode = "MEMBER_ALREADY_EXISTS"
	ErrCodeMemberNotFound      shared.ErrorCode = "MEMBER_NOT_FOUND"
	ErrCodeInvalidMemberID     shared.ErrorCode = "INVALID_MEMBER_ID"
	ErrCodeInvalidDisplayName  shared.ErrorCode = "INVALID_DISPLAY_NAME"
	ErrCodeInvalidUserID       shared.ErrorCode = "INVALID_USER_ID"
	ErrCodeInvalidRole         shared.ErrorCode = "INVALID_MEMBER_ROLE"
	ErrCodeRoleUnchanged       shared.ErrorCode = "MEMBER_ROLE_UNCHANGED"
	ErrCodeOwnerIsNotMember    shared.ErrorCode = "OWNER_IS_NOT_MEMBER"
)

var (
	// ErrMemberAlreadyExists 使用者已是工作區成員
	ErrMemberAlreadyExists = &shared.DomainError{
		Code:    ErrCodeMemberAlreadyExists,
		Message: "使用者已是工作區成員",
	}

	// ErrMemberNotFound 成員不存在
	ErrMemberNotFound = &shared.DomainError{
		Code:    ErrCodeMemberNotFound,
		Message: "成員不存在",
	}

	// ErrInvalidMemberID 成員 ID 無效
	ErrInvalidMemberID = &shared.DomainError{
		Code:    ErrCodeInvalidMemberID,
		Message: "成員 ID 格式無效",
	}

	// ErrInvalidDisplayName 顯示名稱為空或過長
	ErrInvalidDisplayName = &shared.DomainError{
		Code:    ErrCodeInvalidDisplayName,
		Message: "顯示名稱無效",
	}

	// ErrInvalidUserID 使用者 ID 為空
	ErrInvalidUserID = &shared.DomainError{
		Code:    ErrCodeInvalidUserID,
		Message: "使用者 ID 不能為空",
	}

	// ErrInvalidRole 未知的成員角色
	ErrInvalidRole = &shared.DomainError{
		Code:    ErrCodeInvalidRole,
		Message: "無效的成員角色",
	}

	// ErrRoleUnchanged 角色與目前相同
	ErrRoleUnchanged = &shared.DomainError{
		Code:    ErrCodeRoleUnchanged,
		Message: "成員角色未變更",
	}

	// ErrOwnerIsNotMember 擁有者不以成員身分加入自己的工作區
	ErrOwnerIsNotMember = &shared.DomainError{
		Code:    ErrCodeOwnerIsNotMember,
		Message: "工作區擁有者不需加入為成員",
	}
)
