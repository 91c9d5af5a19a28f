package persistence

import (
	"errors"
	"testing"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// TransactionManager Integration Tests
// ===========================
//
// 驗證 TransactionManager 的核心保證：
// 1. 錯誤時回滾，成功時提交
// 2. panic 時回滾並重新拋出
// 3. 多個操作在同一事務中同時成功或失敗

func newTestTask(t *testing.T, workspaceID string) *task.Task {
	t.Helper()
	created, err := task.NewTask(task.NewTaskParams{
		WorkspaceID: workspaceID,
		Title:       "Install windows",
		Budget:      decimal.RequireFromString("300"),
		CreatedBy:   "owner-1",
	})
	require.NoError(t, err)
	return created
}

// Test 1: 返回錯誤時回滾
func TestRollbackOnError_DoesNotCommit(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	repo := NewTaskRepository(db)
	pending := newTestTask(t, "ws-1")

	// Act
	err := txManager.InTransaction(func(ctx shared.TransactionContext) error {
		require.NoError(t, repo.Save(ctx, pending), "Save should succeed within transaction")
		return errors.New("simulated error - trigger rollback")
	})

	// Assert
	require.Error(t, err)
	assert.Equal(t, "simulated error - trigger rollback", err.Error())

	_, err = repo.FindByID(nil, pending.ID())
	assert.ErrorIs(t, err, task.ErrTaskNotFound, "task should not exist after rollback")
}

// Test 2: 成功時提交
func TestCommitOnSuccess_SavesData(t *testing.T) {
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	repo := NewTaskRepository(db)
	pending := newTestTask(t, "ws-1")

	err := txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return repo.Save(ctx, pending)
	})

	require.NoError(t, err)
	found, err := repo.FindByID(nil, pending.ID())
	require.NoError(t, err, "task should exist after commit")
	assert.Equal(t, pending.ID().String(), found.ID().String())
}

// Test 3: panic 時回滾並重新拋出
func TestPanicRecovery_RollsBackAndRepanics(t *testing.T) {
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	repo := NewTaskRepository(db)
	pending := newTestTask(t, "ws-1")

	assert.Panics(t, func() {
		_ = txManager.InTransaction(func(ctx shared.TransactionContext) error {
			require.NoError(t, repo.Save(ctx, pending))
			panic("simulated panic - should rollback")
		})
	}, "panic should be re-thrown")

	_, err := repo.FindByID(nil, pending.ID())
	assert.ErrorIs(t, err, task.ErrTaskNotFound, "task should not exist after panic rollback")
}

// Test 4: 多個操作原子回滾
func TestMultipleOperations_AtomicRollback(t *testing.T) {
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	repo := NewTaskRepository(db)
	first := newTestTask(t, "ws-1")
	second := newTestTask(t, "ws-1")

	err := txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if err := repo.Save(ctx, first); err != nil {
			return err
		}
		if err := repo.Save(ctx, second); err != nil {
			return err
		}
		return errors.New("second operation failed")
	})

	require.Error(t, err)
	tasks, err := repo.FindByWorkspace(nil, "ws-1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

// Test 5: nil context 為 auto-commit 模式
func TestRepository_NilContext_AutoCommitMode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	pending := newTestTask(t, "ws-1")

	require.NoError(t, repo.Save(nil, pending))

	found, err := repo.FindByID(nil, pending.ID())
	require.NoError(t, err)
	assert.Equal(t, "Install windows", found.Title())
}
