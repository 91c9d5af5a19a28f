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
// SwitchWorkspace Use Case
// ===========================

// SwitchWorkspaceCommand 切換工作區
//
// FromWorkspaceID 可為空（首次進入）。ReleasePrevious 為 true 時銷毀來源工作區的 runtime。
type SwitchWorkspaceCommand struct {
	UserID          string
	FromWorkspaceID string
	ToWorkspaceID   string
	ReleasePrevious bool
}

// SwitchWorkspaceResult 切換結果
type SwitchWorkspaceResult struct {
	common.Result
	WorkspaceID string
}

// SwitchWorkspaceUseCase 確保目標工作區 runtime 存在並發布 WorkspaceSwitched
type SwitchWorkspaceUseCase struct {
	repo     workspace.WorkspaceRepository
	runtimes *WorkspaceRuntimeFactory
	store    shared.EventStore
	runner   common.Runner
}

// NewSwitchWorkspaceUseCase 建立 Use Case
func NewSwitchWorkspaceUseCase(
	repo workspace.WorkspaceRepository,
	runtimes *WorkspaceRuntimeFactory,
	store shared.EventStore,
	runner common.Runner,
) *SwitchWorkspaceUseCase {
	return &SwitchWorkspaceUseCase{
		repo:     repo,
		runtimes: runtimes,
		store:    store,
		runner:   runner,
	}
}

// Execute 執行
func (uc *SwitchWorkspaceUseCase) Execute(ctx context.Context, cmd SwitchWorkspaceCommand) SwitchWorkspaceResult {
	var out SwitchWorkspaceResult

	fields := log.Fields{
		"user_id":      cmd.UserID,
		"workspace_id": cmd.ToWorkspaceID,
		"from":         cmd.FromWorkspaceID,
	}
	out.Result = uc.runner.Run(ctx, "SwitchWorkspace", fields, func() error {
		if cmd.FromWorkspaceID == cmd.ToWorkspaceID {
			return workspace.ErrSameWorkspace.WithContext("workspace_id", cmd.ToWorkspaceID)
		}

		targetID, err := workspace.WorkspaceIDFromString(cmd.ToWorkspaceID)
		if err != nil {
			return fmt.Errorf("failed to parse workspace ID: %w", err)
		}

		// 讀操作不需要事務
		ws, err := uc.repo.FindByID(nil, targetID)
		if err != nil {
			return fmt.Errorf("failed to load workspace: %w", err)
		}

		rt := uc.runtimes.CreateRuntime(DescriptorOf(ws, cmd.UserID))

		if cmd.ReleasePrevious && cmd.FromWorkspaceID != "" {
			uc.runtimes.DestroyRuntime(cmd.FromWorkspaceID)
		}

		evt := workspace.NewWorkspaceSwitchedEvent(workspace.WorkspaceSwitchedPayload{
			UserID:          cmd.UserID,
			FromWorkspaceID: cmd.FromWorkspaceID,
			ToWorkspaceID:   rt.WorkspaceID(),
		})
		if err := common.AppendThenPublish(ctx, uc.store, rt.EventBus, []shared.DomainEvent{evt}); err != nil {
			return err
		}

		out.WorkspaceID = rt.WorkspaceID()
		return nil
	})

	return out
}
