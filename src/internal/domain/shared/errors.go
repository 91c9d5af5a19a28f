package shared

import (
	"fmt"
	"sort"
	"strings"
)

// ===========================
// 錯誤代碼定義
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 事件基礎設施錯誤代碼
const (
	ErrCodeNilEvent           ErrorCode = "EVENT_NIL"
	ErrCodeDanglingCausation  ErrorCode = "EVENT_DANGLING_CAUSATION"
	ErrCodeHandlerFailed      ErrorCode = "EVENT_HANDLER_FAILED"
	ErrCodeHandlerPanicked    ErrorCode = "EVENT_HANDLER_PANICKED"
	ErrCodeRuntimeNotFound    ErrorCode = "WORKSPACE_RUNTIME_NOT_FOUND"
	ErrCodePermissionDenied   ErrorCode = "PERMISSION_DENIED"
	ErrCodeInvalidWorkspaceID ErrorCode = "WORKSPACE_ID_INVALID"
)

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
//
// Code 用於 errors.Is 比對，Context 只用於日誌與除錯。
// 實例建立後不可修改，WithContext 會返回新實例。
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %s)", e.Code, e.Message, formatContext(e.Context))
}

// WithContext 添加上下文信息（key-value 成對）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 以錯誤代碼判斷相等（支援 errors.Is）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// formatContext 依 key 排序輸出，保證錯誤訊息穩定
func formatContext(ctx map[string]interface{}) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(parts, ", ")
}

// ===========================
// 預定義錯誤
// ===========================

var (
	// ErrNilEvent 傳入 nil 事件（程式錯誤）
	ErrNilEvent = &DomainError{
		Code:    ErrCodeNilEvent,
		Message: "事件不能為 nil",
	}

	// ErrDanglingCausation causationID 指向從未寫入的事件
	ErrDanglingCausation = &DomainError{
		Code:    ErrCodeDanglingCausation,
		Message: "causation 指向不存在的事件",
	}

	// ErrHandlerFailed 訂閱者返回錯誤
	ErrHandlerFailed = &DomainError{
		Code:    ErrCodeHandlerFailed,
		Message: "事件處理器執行失敗",
	}

	// ErrHandlerPanicked 訂閱者 panic（已被匯流排攔截）
	ErrHandlerPanicked = &DomainError{
		Code:    ErrCodeHandlerPanicked,
		Message: "事件處理器發生 panic",
	}

	// ErrRuntimeNotFound 工作區尚未建立 runtime
	ErrRuntimeNotFound = &DomainError{
		Code:    ErrCodeRuntimeNotFound,
		Message: "工作區 runtime 不存在",
	}

	// ErrPermissionDenied 工作區上下文缺少所需權限
	ErrPermissionDenied = &DomainError{
		Code:    ErrCodePermissionDenied,
		Message: "權限不足",
	}

	// ErrInvalidWorkspaceID 無效的工作區 ID
	ErrInvalidWorkspaceID = &DomainError{
		Code:    ErrCodeInvalidWorkspaceID,
		Message: "無效的工作區 ID",
	}
)
