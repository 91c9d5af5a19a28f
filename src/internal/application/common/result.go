// Package common 提供 Use Case 共用的結果型別與 append→publish 編排
package common

// Result Use Case 執行結果
//
// Use Case 不把錯誤或 panic 往外拋：失敗一律轉成 Success=false 與可讀的 Error 訊息。
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Succeeded 成功結果
func Succeeded() Result {
	return Result{Success: true}
}

// Failed 由錯誤建立失敗結果
func Failed(err error) Result {
	if err == nil {
		return Result{Success: false, Error: "unknown error"}
	}
	return Result{Success: false, Error: err.Error()}
}

// Failed 是否失敗
func (r Result) Failed() bool {
	return !r.Success
}
