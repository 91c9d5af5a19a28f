package member

import "github.com/jackyeh168/workspace_hub/src/internal/domain/shared"

// MemberMarker MemberID 的標記類型
type MemberMarker struct{}

// MemberID 成員唯一標識（UUID）
type MemberID = shared.EntityID[MemberMarker]

// NewMemberID 生成新的成員 ID
func NewMemberID() MemberID {
	return shared.NewEntityID[MemberMarker]()
}

// MemberIDFromString 從字串解析成員 ID
//
// 解析失敗時返回 ErrInvalidMemberID（附帶 input 上下文）。
func MemberIDFromString(value string) (MemberID, error) {
	return shared.EntityIDFromString[MemberMarker](value, ErrInvalidMemberID)
}
