package workspace

import (
	"context"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	log "github.com/sirupsen/logrus"
)

// ===========================
// CreateWorkspace Use Case
// ===========================

// CreateWorkspaceCommand 建立工作區
type CreateWorkspaceCommand struct {
	Name    string
	OwnerID string
}

// CreateWorkspaceResult 建立結果；成功時 WorkspaceID 為新工作區 ID
type CreateWorkspaceResult struct {
	common.Result
	WorkspaceID string
}

// CreateWorkspaceUseCase 建立工作區、為擁有者建立 runtime 並發布 WorkspaceCreated
type CreateWorkspaceUseCase struct {
	repo      workspace.WorkspaceRepository
	txManager shared.TransactionManager
	runtimes  *WorkspaceRuntimeFactory
	store     shared.EventStore
	runner    common.Runner
}

// NewCreateWorkspaceUseCase 建立 Use Case
func NewCreateWorkspaceUseCase(
	repo workspace.WorkspaceRepository,
	txManager shared.TransactionManager,
	runtimes *WorkspaceRuntimeFactory,
	store shared.EventStore,
	runner common.Runner,
) *CreateWorkspaceUseCase {
	return &CreateWorkspaceUseCase{
		repo:      repo,
		txManager: txManager,
		runtimes:  runtimes,
		store:     store,
		runner:    runner,
	}
}

// Execute 執行
func (uc *CreateWorkspaceUseCase) Execute(ctx context.Context, cmd CreateWorkspaceCommand) CreateWorkspaceResult {
	var out CreateWorkspaceResult

	out.Result = uc.runner.Run(ctx, "CreateWorkspace", log.Fields{"owner_id": cmd.OwnerID}, func() error {
		ws, err := workspace.NewWorkspace(cmd.Name, cmd.OwnerID, shared.Causation{})
		if err != nil {
			return err
		}

		err = uc.txManager.InTransaction(func(tx shared.TransactionContext) error {
			if err := uc.repo.Save(tx, ws); err != nil {
				return fmt.Errorf("failed to save workspace: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		rt := uc.runtimes.CreateRuntime(DescriptorOf(ws, cmd.OwnerID))
		if err := common.AppendThenPublish(ctx, uc.store, rt.EventBus, ws.PullEvents()); err != nil {
			return err
		}

		out.WorkspaceID = ws.ID().String()
		return nil
	})

	return out
}
