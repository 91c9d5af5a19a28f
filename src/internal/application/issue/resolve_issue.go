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

// ResolveIssueCommand 結案
type ResolveIssueCommand struct {
	WorkspaceID string
	IssueID     string
	Resolution  string
	ResolvedBy  string
	Causation   shared.Causation
}

// ResolveIssueUseCase 結案並發布 IssueResolved
//
// 未指定 Causation 時延續問題建立事件的因果鏈。
type ResolveIssueUseCase struct {
	repo      issue.IssueRepository
	txManager shared.TransactionManager
	runtimes  wsapp.RuntimeProvider
	store     shared.EventStore
	runner    common.Runner
}

// NewResolveIssueUseCase 建立 Use Case
func NewResolveIssueUseCase(
	repo issue.IssueRepository,
	txManager shared.TransactionManager,
	runtimes wsapp.RuntimeProvider,
	store shared.EventStore,
	runner common.Runner,
) *ResolveIssueUseCase {
	return &ResolveIssueUseCase{
		repo:      repo,
		txManager: txManager,
		runtimes:  runtimes,
		store:     store,
		runner:    runner,
	}
}

// Execute 執行（需要 issue:resolve 權限）
func (uc *ResolveIssueUseCase) Execute(ctx context.Context, cmd ResolveIssueCommand) common.Result {
	fields := log.Fields{"workspace_id": cmd.WorkspaceID, "issue_id": cmd.IssueID}
	return uc.runner.Run(ctx, "ResolveIssue", fields, func() error {
		rt, err := uc.runtimes.RuntimeFor(cmd.WorkspaceID)
		if err != nil {
			return err
		}
		if err := rt.Context.Require(workspace.PermIssueResolve); err != nil {
			return err
		}

		issueID, err := issue.IssueIDFromString(cmd.IssueID)
		if err != nil {
			return fmt.Errorf("failed to parse issue ID: %w", err)
		}

		causation := cmd.Causation
		if causation.IsZero() {
			causation = uc.creationCausation(cmd.IssueID)
		}

		var events []shared.DomainEvent
		err = uc.txManager.InTransaction(func(tx shared.TransactionContext) error {
			i, err := uc.repo.FindByID(tx, issueID)
			if err != nil {
				return fmt.Errorf("failed to load issue: %w", err)
			}
			if i.WorkspaceID() != rt.WorkspaceID() {
				return issue.ErrIssueNotFound.WithContext("issue_id", cmd.IssueID, "workspace_id", rt.WorkspaceID())
			}
			if err := i.Resolve(cmd.Resolution, cmd.ResolvedBy, causation); err != nil {
				return err
			}
			if err := uc.repo.Update(tx, i); err != nil {
				return fmt.Errorf("failed to update issue: %w", err)
			}
			events = i.PullEvents()
			return nil
		})
		if err != nil {
			return err
		}

		return common.AppendThenPublish(ctx, uc.store, rt.EventBus, events)
	})
}

// creationCausation 以歷史中的 IssueCreated 作為結案事件的原因
func (uc *ResolveIssueUseCase) creationCausation(issueID string) shared.Causation {
	for _, e := range uc.store.GetEventsForAggregate(issueID) {
		if e.EventType() == issue.EventIssueCreated {
			return shared.CausationOf(e)
		}
	}
	return shared.Causation{}
}
