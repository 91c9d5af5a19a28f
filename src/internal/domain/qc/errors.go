package qc

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

const (
	ErrCodeInvalidCheckID     shared.ErrorCode = "QC_ID_INVALID"
	ErrCodeMissingTask        shared.ErrorCode = "QC_TASK_MISSING"
	ErrCodeMissingReviewer    shared.ErrorCode = "QC_REVIEWER_MISSING"
	ErrCodeMissingReason      shared.ErrorCode = "QC_REASON_MISSING"
	ErrCodeAlreadyDecided     shared.ErrorCode = "QC_ALREADY_DECIDED"
	ErrCodeInvalidStatus      shared.ErrorCode = "QC_STATUS_INVALID"
	ErrCodeCheckNotFound      shared.ErrorCode = "QC_NOT_FOUND"
	ErrCodeCheckAlreadyExists shared.ErrorCode = "QC_ALREADY_EXISTS"
)

var (
	// ErrInvalidCheckID 無效的品檢 ID
	ErrInvalidCheckID = &shared.DomainError{Code: ErrCodeInvalidCheckID, Message: "無效的品檢 ID"}

	// ErrMissingTask 品檢必須對應任務
	ErrMissingTask = &shared.DomainError{Code: ErrCodeMissingTask, Message: "品檢缺少任務"}

	// ErrMissingReviewer 判定必須有審查者
	ErrMissingReviewer = &shared.DomainError{Code: ErrCodeMissingReviewer, Message: "品檢缺少審查者"}

	// ErrMissingReason 不通過必須附原因
	ErrMissingReason = &shared.DomainError{Code: ErrCodeMissingReason, Message: "品檢不通過必須說明原因"}

	// ErrAlreadyDecided 品檢已判定
	ErrAlreadyDecided = &shared.DomainError{Code: ErrCodeAlreadyDecided, Message: "品檢已完成判定"}

	// ErrInvalidStatus 未知的狀態字串
	ErrInvalidStatus = &shared.DomainError{Code: ErrCodeInvalidStatus, Message: "無效的品檢狀態"}

	// ErrCheckNotFound 品檢不存在
	ErrCheckNotFound = &shared.DomainError{Code: ErrCodeCheckNotFound, Message: "品檢不存在"}

	// ErrCheckAlreadyExists 品檢已存在
	ErrCheckAlreadyExists = &shared.DomainError{Code: ErrCodeCheckAlreadyExists, Message: "品檢已存在"}
)
