package shared

import "time"

// Clock 時間來源抽象
//
// 事件工廠與聚合根透過 Clock 取得時間，測試可注入固定時間。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用 time.Now 的預設實作
type SystemClock struct{}

// Now 返回當前時間
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock 固定時間（測試用），每次 Now 都返回同一時刻
type FixedClock struct {
	At time.Time
}

// Now 返回固定時刻
func (c FixedClock) Now() time.Time {
	return c.At
}
