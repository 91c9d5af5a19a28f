// Package persistence GORM 實作的倉儲、事務管理與事件歸檔
package persistence

import (
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext 封裝 *gorm.DB，避免洩漏到 Domain Layer
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 獲取 GORM DB 連接（僅供 Infrastructure Layer 內部使用）
func (ctx *gormTransactionContext) GetDB() *gorm.DB {
	return ctx.db
}

// ===========================
// GORMTransactionManager
// ===========================

// GORMTransactionManager 以 GORM 事務實作 shared.TransactionManager
//
// fn 返回錯誤時回滾；fn panic 時回滾後重新拋出。
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{db: db}
}

var _ shared.TransactionManager = (*GORMTransactionManager)(nil)

// InTransaction 在單一事務中執行 fn
func (m *GORMTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) (err error) {
	tx := m.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(NewGORMTransactionContext(tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// dbFrom 事務上下文中的 DB；ctx 為 nil 或非 GORM 實作時使用預設 DB（auto-commit）
func dbFrom(ctx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if gormCtx, ok := ctx.(*gormTransactionContext); ok {
		return gormCtx.GetDB()
	}
	return fallback
}
