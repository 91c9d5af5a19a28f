package task

import (
	"context"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	log "github.com/sirupsen/logrus"
)

// ===========================
// SubmitForQC Use Case
// ===========================

// SubmitForQCCommand 提交任務品檢
type SubmitForQCCommand struct {
	WorkspaceID string
	TaskID      string
	SubmittedBy string
	Causation   shared.Causation
}

// SubmitForQCUseCase 將任務由 open 轉為 in_qc 並發布 TaskSubmittedForQC
//
// 品檢模組訂閱此事件後排入品檢。
type SubmitForQCUseCase struct {
	repo      task.TaskRepository
	txManager shared.TransactionManager
	runtimes  wsapp.RuntimeProvider
	store     shared.EventStore
	runner    common.Runner
}

// NewSubmitForQCUseCase 建立 Use Case
func NewSubmitForQCUseCase(
	repo task.TaskRepository,
	txManager shared.TransactionManager,
	runtimes wsapp.RuntimeProvider,
	store shared.EventStore,
	runner common.Runner,
) *SubmitForQCUseCase {
	return &SubmitForQCUseCase{
		repo:      repo,
		txManager: txManager,
		runtimes:  runtimes,
		store:     store,
		runner:    runner,
	}
}

// Execute 執行
func (uc *SubmitForQCUseCase) Execute(ctx context.Context, cmd SubmitForQCCommand) common.Result {
	fields := log.Fields{"workspace_id": cmd.WorkspaceID, "task_id": cmd.TaskID}
	return uc.runner.Run(ctx, "SubmitForQC", fields, func() error {
		rt, err := uc.runtimes.RuntimeFor(cmd.WorkspaceID)
		if err != nil {
			return err
		}
		if err := rt.Context.Require(workspace.PermTaskSubmit); err != nil {
			return err
		}

		taskID, err := task.TaskIDFromString(cmd.TaskID)
		if err != nil {
			return fmt.Errorf("failed to parse task ID: %w", err)
		}

		var events []shared.DomainEvent
		err = uc.txManager.InTransaction(func(tx shared.TransactionContext) error {
			t, err := uc.repo.FindByID(tx, taskID)
			if err != nil {
				return fmt.Errorf("failed to load task: %w", err)
			}
			if t.WorkspaceID() != rt.WorkspaceID() {
				return task.ErrTaskNotFound.WithContext("task_id", cmd.TaskID, "workspace_id", rt.WorkspaceID())
			}
			if err := t.SubmitForQC(cmd.SubmittedBy, cmd.Causation); err != nil {
				return err
			}
			if err := uc.repo.Update(tx, t); err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			events = t.PullEvents()
			return nil
		})
		if err != nil {
			return err
		}

		return common.AppendThenPublish(ctx, uc.store, rt.EventBus, events)
	})
}
