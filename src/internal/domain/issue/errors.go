package issue

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

const (
	ErrCodeInvalidIssueID     shared.ErrorCode = "ISSUE_ID_INVALID"
	ErrCodeInvalidTitle       shared.ErrorCode = "ISSUE_TITLE_INVALID"
	ErrCodeInvalidSource      shared.ErrorCode = "ISSUE_SOURCE_INVALID"
	ErrCodeInvalidStatus      shared.ErrorCode = "ISSUE_STATUS_INVALID"
	ErrCodeMissingResolution  shared.ErrorCode = "ISSUE_RESOLUTION_MISSING"
	ErrCodeAlreadyResolved    shared.ErrorCode = "ISSUE_ALREADY_RESOLVED"
	ErrCodeIssueNotFound      shared.ErrorCode = "ISSUE_NOT_FOUND"
	ErrCodeIssueAlreadyExists shared.ErrorCode = "ISSUE_ALREADY_EXISTS"
)

var (
	// ErrInvalidIssueID 無效的問題 ID
	ErrInvalidIssueID = &shared.DomainError{Code: ErrCodeInvalidIssueID, Message: "無效的問題 ID"}

	// ErrInvalidTitle 問題標題為空或過長
	ErrInvalidTitle = &shared.DomainError{Code: ErrCodeInvalidTitle, Message: "無效的問題標題"}

	// ErrInvalidSource 未知的問題來源
	ErrInvalidSource = &shared.DomainError{Code: ErrCodeInvalidSource, Message: "無效的問題來源"}

	// ErrInvalidStatus 未知的狀態字串
	ErrInvalidStatus = &shared.DomainError{Code: ErrCodeInvalidStatus, Message: "無效的問題狀態"}

	// ErrMissingResolution 結案必須說明處理方式
	ErrMissingResolution = &shared.DomainError{Code: ErrCodeMissingResolution, Message: "結案必須說明處理方式"}

	// ErrAlreadyResolved 問題已結案
	ErrAlreadyResolved = &shared.DomainError{Code: ErrCodeAlreadyResolved, Message: "問題已結案"}

	// ErrIssueNotFound 問題不存在
	ErrIssueNotFound = &shared.DomainError{Code: ErrCodeIssueNotFound, Message: "問題不存在"}

	// ErrIssueAlreadyExists 問題已存在
	ErrIssueAlreadyExists = &shared.DomainError{Code: ErrCodeIssueAlreadyExists, Message: "問題已存在"}
)
