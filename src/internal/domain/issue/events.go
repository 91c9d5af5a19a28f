package issue

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// 事件類型
const (
	EventIssueCreated  = "IssueCreated"
	EventIssueResolved = "IssueResolved"
)

// IssueCreatedPayload 問題已建立
type IssueCreatedPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TaskID      string `json:"taskId"`
	Source      Source `json:"source"`
	QCCheckID   string `json:"qcCheckId"`
	ReportedBy  string `json:"reportedBy"`
}

// IssueResolvedPayload 問題已結案
type IssueResolvedPayload struct {
	TaskID     string `json:"taskId"`
	Resolution string `json:"resolution"`
	ResolvedBy string `json:"resolvedBy"`
}

// NewIssueCreatedEvent 建立 IssueCreated 事件
func NewIssueCreatedEvent(id IssueID, workspaceID string, payload IssueCreatedPayload, opts ...shared.EventOption) *shared.Event[IssueCreatedPayload] {
	return shared.NewEvent(EventIssueCreated, id.String(), workspaceID, payload, opts...)
}

// NewIssueResolvedEvent 建立 IssueResolved 事件
func NewIssueResolvedEvent(id IssueID, workspaceID string, payload IssueResolvedPayload, opts ...shared.EventOption) *shared.Event[IssueResolvedPayload] {
	return shared.NewEvent(EventIssueResolved, id.String(), workspaceID, payload, opts...)
}
