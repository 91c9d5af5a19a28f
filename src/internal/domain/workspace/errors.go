package workspace

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidName            shared.ErrorCode = "WORKSPACE_NAME_INVALID"
	ErrCodeInvalidOwnerID         shared.ErrorCode = "WORKSPACE_OWNER_INVALID"
	ErrCodeInvalidPermission      shared.ErrorCode = "WORKSPACE_PERMISSION_INVALID"
	ErrCodeWorkspaceNotFound      shared.ErrorCode = "WORKSPACE_NOT_FOUND"
	ErrCodeWorkspaceAlreadyExists shared.ErrorCode = "WORKSPACE_ALREADY_EXISTS"
	ErrCodeSameWorkspace          shared.ErrorCode = "WORKSPACE_SWITCH_SAME"
)

var (
	// ErrInvalidName 工作區名稱為空或過長
	ErrInvalidName = &shared.DomainError{
		Code:    ErrCodeInvalidName,
		Message: "無效的工作區名稱",
	}

	// ErrInvalidOwnerID 擁有者 ID 為空
	ErrInvalidOwnerID = &shared.DomainError{
		Code:    ErrCodeInvalidOwnerID,
		Message: "無效的工作區擁有者",
	}

	// ErrInvalidPermission 未知的權限字串
	ErrInvalidPermission = &shared.DomainError{
		Code:    ErrCodeInvalidPermission,
		Message: "無效的權限",
	}

	// ErrWorkspaceNotFound 工作區不存在
	ErrWorkspaceNotFound = &shared.DomainError{
		Code:    ErrCodeWorkspaceNotFound,
		Message: "工作區不存在",
	}

	// ErrWorkspaceAlreadyExists 工作區已存在
	ErrWorkspaceAlreadyExists = &shared.DomainError{
		Code:    ErrCodeWorkspaceAlreadyExists,
		Message: "工作區已存在",
	}

	// ErrSameWorkspace 切換到目前所在的工作區
	ErrSameWorkspace = &shared.DomainError{
		Code:    ErrCodeSameWorkspace,
		Message: "已在目標工作區",
	}
)
