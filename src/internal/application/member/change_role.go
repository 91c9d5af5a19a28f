package member

import (
	"context"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/member"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	log "github.com/sirupsen/logrus"
)

// ===========================
// ChangeMemberRole Use Case
// ===========================

// ChangeMemberRoleCommand 變更成員角色
type ChangeMemberRoleCommand struct {
	WorkspaceID string
	UserID      string
	Role        string
	ChangedBy   string
	Causation   shared.Causation
}

// ChangeMemberRoleUseCase 變更角色並發布 MemberRoleChanged
//
// 已存在 runtime 的權限在建立時固定，新角色於下次建立 runtime 時生效。
type ChangeMemberRoleUseCase struct {
	repo      member.MemberRepository
	txManager shared.TransactionManager
	runtimes  wsapp.RuntimeProvider
	store     shared.EventStore
	runner    common.Runner
}

// NewChangeMemberRoleUseCase 建立 Use Case
func NewChangeMemberRoleUseCase(
	repo member.MemberRepository,
	txManager shared.TransactionManager,
	runtimes wsapp.RuntimeProvider,
	store shared.EventStore,
	runner common.Runner,
) *ChangeMemberRoleUseCase {
	return &ChangeMemberRoleUseCase{
		repo:      repo,
		txManager: txManager,
		runtimes:  runtimes,
		store:     store,
		runner:    runner,
	}
}

// Execute 執行
func (uc *ChangeMemberRoleUseCase) Execute(ctx context.Context, cmd ChangeMemberRoleCommand) common.Result {
	fields := log.Fields{
		"workspace_id": cmd.WorkspaceID,
		"user_id":      cmd.UserID,
		"role":         cmd.Role,
	}
	return uc.runner.Run(ctx, "ChangeMemberRole", fields, func() error {
		rt, err := uc.runtimes.RuntimeFor(cmd.WorkspaceID)
		if err != nil {
			return err
		}
		if err := rt.Context.Require(workspace.PermWorkspaceManage); err != nil {
			return err
		}

		var events []shared.DomainEvent
		err = uc.txManager.InTransaction(func(tx shared.TransactionContext) error {
			m, err := uc.repo.FindByUser(tx, rt.WorkspaceID(), cmd.UserID)
			if err != nil {
				return err
			}
			if err := m.ChangeRole(member.Role(cmd.Role), cmd.ChangedBy, cmd.Causation); err != nil {
				return err
			}
			if err := uc.repo.Update(tx, m); err != nil {
				return fmt.Errorf("failed to update member: %w", err)
			}
			events = m.PullEvents()
			return nil
		})
		if err != nil {
			return err
		}

		return common.AppendThenPublish(ctx, uc.store, rt.EventBus, events)
	})
}
