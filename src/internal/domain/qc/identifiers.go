package qc

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// CheckMarker CheckID 的標記類型
type CheckMarker struct{}

// CheckID 品檢唯一標識
type CheckID = shared.EntityID[CheckMarker]

// NewCheckID 生成新的品檢 ID
func NewCheckID() CheckID {
	return shared.NewEntityID[CheckMarker]()
}

// CheckIDFromString 從字串解析品檢 ID
func CheckIDFromString(s string) (CheckID, error) {
	return shared.EntityIDFromString[CheckMarker](s, ErrInvalidCheckID)
}
