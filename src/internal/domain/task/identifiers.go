package task

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// TaskMarker TaskID 的標記類型
type TaskMarker struct{}

// TaskID 任務唯一標識
type TaskID = shared.EntityID[TaskMarker]

// NewTaskID 生成新的任務 ID
func NewTaskID() TaskID {
	return shared.NewEntityID[TaskMarker]()
}

// TaskIDFromString 從字串解析任務 ID
func TaskIDFromString(s string) (TaskID, error) {
	return shared.EntityIDFromString[TaskMarker](s, ErrInvalidTaskID)
}
