package issue

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// IssueMarker IssueID 的標記類型
type IssueMarker struct{}

// IssueID 問題唯一標識
type IssueID = shared.EntityID[IssueMarker]

// NewIssueID 生成新的問題 ID
func NewIssueID() IssueID {
	return shared.NewEntityID[IssueMarker]()
}

// IssueIDFromString 從字串解析問題 ID
func IssueIDFromString(s string) (IssueID, error) {
	return shared.EntityIDFromString[IssueMarker](s, ErrInvalidIssueID)
}
