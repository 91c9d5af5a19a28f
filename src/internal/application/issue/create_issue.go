package issue

import (
	"context"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/issue"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	log "github.com/sirupsen/logrus"
)

// ===========================
// CreateIssue Use Case
// ===========================

// CreateIssueCommand 建立問題
//
// 由其他事件觸發時，Causation 應為 shared.CausationOf(觸發事件)。
type CreateIssueCommand struct {
	WorkspaceID string
	TaskID      string
	Title       string
	Description string
	Source      issue.Source
	QCCheckID   string
	ReportedBy  string
	Causation   shared.Causation
}

// CreateIssueResult 建立結果
type CreateIssueResult struct {
	common.Result
	IssueID string
}

// CreateIssueUseCase 建立問題並發布 IssueCreated
type CreateIssueUseCase struct {
	repo      issue.IssueRepository
	txManager shared.TransactionManager
	runtimes  wsapp.RuntimeProvider
	store     shared.EventStore
	runner    common.Runner
}

// NewCreateIssueUseCase 建立 Use Case
func NewCreateIssueUseCase(
	repo issue.IssueRepository,
	txManager shared.TransactionManager,
	runtimes wsapp.RuntimeProvider,
	store shared.EventStore,
	runner common.Runner,
) *CreateIssueUseCase {
	return &CreateIssueUseCase{
		repo:      repo,
		txManager: txManager,
		runtimes:  runtimes,
		store:     store,
		runner:    runner,
	}
}

// Execute 執行（需要 issue:create 權限）
func (uc *CreateIssueUseCase) Execute(ctx context.Context, cmd CreateIssueCommand) CreateIssueResult {
	return uc.execute(ctx, "CreateIssue", cmd, true)
}

// execute checkPermission 為 false 時用於系統觸發的建立
func (uc *CreateIssueUseCase) execute(ctx context.Context, useCase string, cmd CreateIssueCommand, checkPermission bool) CreateIssueResult {
	var out CreateIssueResult

	fields := log.Fields{
		"workspace_id": cmd.WorkspaceID,
		"task_id":      cmd.TaskID,
		"source":       string(cmd.Source),
	}
	out.Result = uc.runner.Run(ctx, useCase, fields, func() error {
		rt, err := uc.runtimes.RuntimeFor(cmd.WorkspaceID)
		if err != nil {
			return err
		}
		if checkPermission {
			if err := rt.Context.Require(workspace.PermIssueCreate); err != nil {
				return err
			}
		}

		i, err := issue.NewIssue(issue.NewIssueParams{
			WorkspaceID: rt.WorkspaceID(),
			TaskID:      cmd.TaskID,
			Title:       cmd.Title,
			Description: cmd.Description,
			Source:      cmd.Source,
			QCCheckID:   cmd.QCCheckID,
			ReportedBy:  cmd.ReportedBy,
			Causation:   cmd.Causation,
		})
		if err != nil {
			return err
		}

		err = uc.txManager.InTransaction(func(tx shared.TransactionContext) error {
			if err := uc.repo.Save(tx, i); err != nil {
				return fmt.Errorf("failed to save issue: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		if err := common.AppendThenPublish(ctx, uc.store, rt.EventBus, i.PullEvents()); err != nil {
			return err
		}

		out.IssueID = i.ID().String()
		return nil
	})

	return out
}
