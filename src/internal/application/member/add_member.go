// Package member 工作區成員 Use Case 與以成員角色解析權限
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
// AddMember Use Case
// ===========================

// AddMemberCommand 將使用者加入工作區
//
// Role 為空時為 member。
type AddMemberCommand struct {
	WorkspaceID string
	UserID      string
	DisplayName string
	Role        string
	AddedBy     string
	Causation   shared.Causation
}

// AddMemberResult 加入結果
type AddMemberResult struct {
	common.Result
	MemberID string
}

// AddMemberUseCase 加入成員並發布 MemberJoined
//
// 業務規則：
// 1. 需要 workspace:manage 權限
// 2. 擁有者不以成員身分加入
// 3. 同一工作區內使用者不能重複加入（事務內檢查，資料庫約束兜底）
type AddMemberUseCase struct {
	repo      member.MemberRepository
	txManager shared.TransactionManager
	runtimes  wsapp.RuntimeProvider
	store     shared.EventStore
	runner    common.Runner
}

// NewAddMemberUseCase 建立 Use Case
func NewAddMemberUseCase(
	repo member.MemberRepository,
	txManager shared.TransactionManager,
	runtimes wsapp.RuntimeProvider,
	store shared.EventStore,
	runner common.Runner,
) *AddMemberUseCase {
	return &AddMemberUseCase{
		repo:      repo,
		txManager: txManager,
		runtimes:  runtimes,
		store:     store,
		runner:    runner,
	}
}

// Execute 執行
func (uc *AddMemberUseCase) Execute(ctx context.Context, cmd AddMemberCommand) AddMemberResult {
	var out AddMemberResult

	fields := log.Fields{
		"workspace_id": cmd.WorkspaceID,
		"user_id":      cmd.UserID,
		"added_by":     cmd.AddedBy,
	}
	out.Result = uc.runner.Run(ctx, "AddMember", fields, func() error {
		rt, err := uc.runtimes.RuntimeFor(cmd.WorkspaceID)
		if err != nil {
			return err
		}
		if err := rt.Context.Require(workspace.PermWorkspaceManage); err != nil {
			return err
		}
		if cmd.UserID == rt.Context.OwnerID {
			return member.ErrOwnerIsNotMember.WithContext("user_id", cmd.UserID)
		}

		role, err := member.ParseRole(cmd.Role)
		if err != nil {
			return err
		}

		m, err := member.NewMember(member.NewMemberParams{
			WorkspaceID: rt.WorkspaceID(),
			UserID:      cmd.UserID,
			DisplayName: cmd.DisplayName,
			Role:        role,
			AddedBy:     cmd.AddedBy,
			Causation:   cmd.Causation,
		})
		if err != nil {
			return err
		}

		err = uc.txManager.InTransaction(func(tx shared.TransactionContext) error {
			exists, err := uc.repo.ExistsByUser(tx, m.WorkspaceID(), m.UserID())
			if err != nil {
				return err
			}
			if exists {
				return member.ErrMemberAlreadyExists.WithContext("workspace_id", m.WorkspaceID(), "user_id", m.UserID())
			}
			if err := uc.repo.Save(tx, m); err != nil {
				return fmt.Errorf("failed to save member: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		if err := common.AppendThenPublish(ctx, uc.store, rt.EventBus, m.PullEvents()); err != nil {
			return err
		}

		out.MemberID = m.MemberID().String()
		return nil
	})

	return out
}
