package shared

// TransactionContext 事務上下文介面
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行
// - ctx == nil: auto-commit 模式（只建議用於單一讀操作）
//
// Repository 寫方法（Save / Update）應在事務中呼叫；讀方法可傳 nil。
// 具體實作在 Infrastructure Layer（GORM）。
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// fn 返回錯誤或 panic 時回滾，否則提交。
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}
