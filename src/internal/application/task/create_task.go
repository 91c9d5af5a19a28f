package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ===========================
// CreateTask Use Case
// ===========================

// CreateTaskCommand 建立任務
//
// Budget 為十進位字串，空字串視為 0。
type CreateTaskCommand struct {
	WorkspaceID string
	Title       string
	Description string
	AssigneeID  string
	Budget      string
	CreatedBy   string
	Causation   shared.Causation
}

// CreateTaskResult 建立結果
type CreateTaskResult struct {
	common.Result
	TaskID string
}

// CreateTaskUseCase 建立任務
//
// 流程：取得工作區 runtime → 檢查權限 → 建立聚合 → 事務內保存 → 寫入 EventStore → 發布。
type CreateTaskUseCase struct {
	repo      task.TaskRepository
	txManager shared.TransactionManager
	runtimes  wsapp.RuntimeProvider
	store     shared.EventStore
	runner    common.Runner
}

// NewCreateTaskUseCase 建立 Use Case
func NewCreateTaskUseCase(
	repo task.TaskRepository,
	txManager shared.TransactionManager,
	runtimes wsapp.RuntimeProvider,
	store shared.EventStore,
	runner common.Runner,
) *CreateTaskUseCase {
	return &CreateTaskUseCase{
		repo:      repo,
		txManager: txManager,
		runtimes:  runtimes,
		store:     store,
		runner:    runner,
	}
}

// Execute 執行
func (uc *CreateTaskUseCase) Execute(ctx context.Context, cmd CreateTaskCommand) CreateTaskResult {
	var out CreateTaskResult

	fields := log.Fields{"workspace_id": cmd.WorkspaceID, "created_by": cmd.CreatedBy}
	out.Result = uc.runner.Run(ctx, "CreateTask", fields, func() error {
		rt, err := uc.runtimes.RuntimeFor(cmd.WorkspaceID)
		if err != nil {
			return err
		}
		if err := rt.Context.Require(workspace.PermTaskCreate); err != nil {
			return err
		}

		budget, err := parseBudget(cmd.Budget)
		if err != nil {
			return err
		}

		t, err := task.NewTask(task.NewTaskParams{
			WorkspaceID: rt.WorkspaceID(),
			Title:       cmd.Title,
			Description: cmd.Description,
			AssigneeID:  cmd.AssigneeID,
			Budget:      budget,
			CreatedBy:   cmd.CreatedBy,
			Causation:   cmd.Causation,
		})
		if err != nil {
			return err
		}

		err = uc.txManager.InTransaction(func(tx shared.TransactionContext) error {
			if err := uc.repo.Save(tx, t); err != nil {
				if errors.Is(err, task.ErrTaskAlreadyExists) {
					return fmt.Errorf("task already exists: %w", err)
				}
				return fmt.Errorf("failed to save task: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		if err := common.AppendThenPublish(ctx, uc.store, rt.EventBus, t.PullEvents()); err != nil {
			return err
		}

		out.TaskID = t.ID().String()
		return nil
	})

	return out
}

func parseBudget(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, task.ErrInvalidBudget.WithContext("input", s, "parse_error", err.Error())
	}
	return d, nil
}
