package task

import (
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// 任務事件
// ===========================

// 事件類型
const (
	EventTaskCreated        = "TaskCreated"
	EventTaskSubmittedForQC = "TaskSubmittedForQC"
	EventTaskCompleted      = "TaskCompleted"
	EventTaskReopened       = "TaskReopened"
)

// TaskCreatedPayload 任務已建立
type TaskCreatedPayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	AssigneeID  string          `json:"assigneeId"`
	Budget      decimal.Decimal `json:"budget"`
	CreatedBy   string          `json:"createdBy"`
}

// TaskSubmittedForQCPayload 任務已提交品檢
type TaskSubmittedForQCPayload struct {
	SubmittedBy string `json:"submittedBy"`
}

// TaskCompletedPayload 任務已完成（品檢通過）
type TaskCompletedPayload struct {
	QCCheckID string `json:"qcCheckId"`
}

// TaskReopenedPayload 任務重新開啟（品檢未通過）
type TaskReopenedPayload struct {
	QCCheckID string `json:"qcCheckId"`
	Reason    string `json:"reason"`
}

// NewTaskCreatedEvent 建立 TaskCreated 事件
func NewTaskCreatedEvent(id TaskID, workspaceID string, payload TaskCreatedPayload, opts ...shared.EventOption) *shared.Event[TaskCreatedPayload] {
	return shared.NewEvent(EventTaskCreated, id.String(), workspaceID, payload, opts...)
}

// NewTaskSubmittedForQCEvent 建立 TaskSubmittedForQC 事件
func NewTaskSubmittedForQCEvent(id TaskID, workspaceID string, payload TaskSubmittedForQCPayload, opts ...shared.EventOption) *shared.Event[TaskSubmittedForQCPayload] {
	return shared.NewEvent(EventTaskSubmittedForQC, id.String(), workspaceID, payload, opts...)
}

// NewTaskCompletedEvent 建立 TaskCompleted 事件
func NewTaskCompletedEvent(id TaskID, workspaceID string, payload TaskCompletedPayload, opts ...shared.EventOption) *shared.Event[TaskCompletedPayload] {
	return shared.NewEvent(EventTaskCompleted, id.String(), workspaceID, payload, opts...)
}

// NewTaskReopenedEvent 建立 TaskReopened 事件
func NewTaskReopenedEvent(id TaskID, workspaceID string, payload TaskReopenedPayload, opts ...shared.EventOption) *shared.Event[TaskReopenedPayload] {
	return shared.NewEvent(EventTaskReopened, id.String(), workspaceID, payload, opts...)
}
