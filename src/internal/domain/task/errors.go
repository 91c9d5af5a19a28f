package task

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidTaskID     shared.ErrorCode = "TASK_ID_INVALID"
	ErrCodeInvalidTitle      shared.ErrorCode = "TASK_TITLE_INVALID"
	ErrCodeInvalidBudget     shared.ErrorCode = "TASK_BUDGET_INVALID"
	ErrCodeInvalidTransition shared.ErrorCode = "TASK_STATUS_TRANSITION_INVALID"
	ErrCodeInvalidStatus     shared.ErrorCode = "TASK_STATUS_INVALID"
	ErrCodeTaskNotFound      shared.ErrorCode = "TASK_NOT_FOUND"
	ErrCodeTaskAlreadyExists shared.ErrorCode = "TASK_ALREADY_EXISTS"
	ErrCodeMissingWorkspace  shared.ErrorCode = "TASK_WORKSPACE_MISSING"
)

var (
	// ErrInvalidTaskID 無效的任務 ID
	ErrInvalidTaskID = &shared.DomainError{
		Code:    ErrCodeInvalidTaskID,
		Message: "無效的任務 ID",
	}

	// ErrInvalidTitle 任務標題為空或過長
	ErrInvalidTitle = &shared.DomainError{
		Code:    ErrCodeInvalidTitle,
		Message: "無效的任務標題",
	}

	// ErrInvalidBudget 預算為負數
	ErrInvalidBudget = &shared.DomainError{
		Code:    ErrCodeInvalidBudget,
		Message: "任務預算不能為負數",
	}

	// ErrInvalidTransition 目前狀態不允許此操作
	ErrInvalidTransition = &shared.DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: "任務狀態不允許此操作",
	}

	// ErrInvalidStatus 未知的狀態字串
	ErrInvalidStatus = &shared.DomainError{
		Code:    ErrCodeInvalidStatus,
		Message: "無效的任務狀態",
	}

	// ErrTaskNotFound 任務不存在
	ErrTaskNotFound = &shared.DomainError{
		Code:    ErrCodeTaskNotFound,
		Message: "任務不存在",
	}

	// ErrTaskAlreadyExists 任務已存在
	ErrTaskAlreadyExists = &shared.DomainError{
		Code:    ErrCodeTaskAlreadyExists,
		Message: "任務已存在",
	}

	// ErrMissingWorkspace 任務必須屬於工作區
	ErrMissingWorkspace = &shared.DomainError{
		Code:    ErrCodeMissingWorkspace,
		Message: "任務缺少工作區",
	}
)
