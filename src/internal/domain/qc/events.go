package qc

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// 事件類型
const (
	EventQCRequested = "QCRequested"
	EventQCPassed    = "QCPassed"
	EventQCFailed    = "QCFailed"
)

// QCRequestedPayload 品檢已排入
type QCRequestedPayload struct {
	TaskID string `json:"taskId"`
}

// QCPassedPayload 品檢通過
type QCPassedPayload struct {
	TaskID     string `json:"taskId"`
	ReviewerID string `json:"reviewerId"`
	Notes      string `json:"notes"`
}

// QCFailedPayload 品檢不通過
//
// Defects 為缺失項目；事件建立與讀取時皆複製切片。
type QCFailedPayload struct {
	TaskID     string   `json:"taskId"`
	ReviewerID string   `json:"reviewerId"`
	Reason     string   `json:"reason"`
	Defects    []string `json:"defects"`
}

// ClonePayload 實現 shared.PayloadCloner
func (p QCFailedPayload) ClonePayload() QCFailedPayload {
	if p.Defects != nil {
		p.Defects = append([]string(nil), p.Defects...)
	}
	return p
}

// NewQCRequestedEvent 建立 QCRequested 事件
func NewQCRequestedEvent(id CheckID, workspaceID string, payload QCRequestedPayload, opts ...shared.EventOption) *shared.Event[QCRequestedPayload] {
	return shared.NewEvent(EventQCRequested, id.String(), workspaceID, payload, opts...)
}

// NewQCPassedEvent 建立 QCPassed 事件
func NewQCPassedEvent(id CheckID, workspaceID string, payload QCPassedPayload, opts ...shared.EventOption) *shared.Event[QCPassedPayload] {
	return shared.NewEvent(EventQCPassed, id.String(), workspaceID, payload, opts...)
}

// NewQCFailedEvent 建立 QCFailed 事件
func NewQCFailedEvent(id CheckID, workspaceID string, payload QCFailedPayload, opts ...shared.EventOption) *shared.Event[QCFailedPayload] {
	return shared.NewEvent(EventQCFailed, id.String(), workspaceID, payload, opts...)
}
