package qc

import (
	"context"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/qc"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	log "github.com/sirupsen/logrus"
)

// ===========================
// PassQC / FailQC Use Case
// ===========================

// PassQCCommand 判定品檢通過
//
// Causation 為零值時延續該品檢 QCRequested 的因果鏈。
type PassQCCommand struct {
	WorkspaceID string
	CheckID     string
	ReviewerID  string
	Notes       string
	Causation   shared.Causation
}

// FailQCCommand 判定品檢不通過
type FailQCCommand struct {
	WorkspaceID string
	CheckID     string
	ReviewerID  string
	Reason      string
	Defects     []string
	Causation   shared.Causation
}

// decider PassQC 與 FailQC 共用的依賴與流程
type decider struct {
	repo      qc.CheckRepository
	txManager shared.TransactionManager
	runtimes  wsapp.RuntimeProvider
	store     shared.EventStore
	runner    common.Runner
}

func (d decider) decide(
	ctx context.Context,
	useCase, workspaceID, rawCheckID string,
	causation shared.Causation,
	mutate func(c *qc.Check, causation shared.Causation) error,
) common.Result {
	fields := log.Fields{"workspace_id": workspaceID, "qc_check_id": rawCheckID}
	return d.runner.Run(ctx, useCase, fields, func() error {
		rt, err := d.runtimes.RuntimeFor(workspaceID)
		if err != nil {
			return err
		}
		if err := rt.Context.Require(workspace.PermQCReview); err != nil {
			return err
		}

		checkID, err := qc.CheckIDFromString(rawCheckID)
		if err != nil {
			return fmt.Errorf("failed to parse qc check ID: %w", err)
		}
		if causation.IsZero() {
			causation = d.requestCausation(rawCheckID)
		}

		var events []shared.DomainEvent
		err = d.txManager.InTransaction(func(tx shared.TransactionContext) error {
			c, err := d.repo.FindByID(tx, checkID)
			if err != nil {
				return fmt.Errorf("failed to load qc check: %w", err)
			}
			if c.WorkspaceID() != rt.WorkspaceID() {
				return qc.ErrCheckNotFound.WithContext("qc_check_id", rawCheckID, "workspace_id", rt.WorkspaceID())
			}
			if err := mutate(c, causation); err != nil {
				return err
			}
			if err := d.repo.Update(tx, c); err != nil {
				return fmt.Errorf("failed to update qc check: %w", err)
			}
			events = c.PullEvents()
			return nil
		})
		if err != nil {
			return err
		}

		return common.AppendThenPublish(ctx, d.store, rt.EventBus, events)
	})
}

// requestCausation 以歷史中的 QCRequested 作為判定事件的原因
func (d decider) requestCausation(checkID string) shared.Causation {
	for _, e := range d.store.GetEventsForAggregate(checkID) {
		if e.EventType() == qc.EventQCRequested {
			return shared.CausationOf(e)
		}
	}
	return shared.Causation{}
}

// PassQCUseCase 判定通過並發布 QCPassed
type PassQCUseCase struct {
	decider
}

// NewPassQCUseCase 建立 Use Case
func NewPassQCUseCase(
	repo qc.CheckRepository,
	txManager shared.TransactionManager,
	runtimes wsapp.RuntimeProvider,
	store shared.EventStore,
	runner common.Runner,
) *PassQCUseCase {
	return &PassQCUseCase{decider{repo, txManager, runtimes, store, runner}}
}

// Execute 執行
func (uc *PassQCUseCase) Execute(ctx context.Context, cmd PassQCCommand) common.Result {
	return uc.decide(ctx, "PassQC", cmd.WorkspaceID, cmd.CheckID, cmd.Causation, func(c *qc.Check, causation shared.Causation) error {
		return c.Pass(cmd.ReviewerID, cmd.Notes, causation)
	})
}

// FailQCUseCase 判定不通過並發布 QCFailed
//
// 問題模組訂閱 QCFailed 後自動建立問題。
type FailQCUseCase struct {
	decider
}

// NewFailQCUseCase 建立 Use Case
func NewFailQCUseCase(
	repo qc.CheckRepository,
	txManager shared.TransactionManager,
	runtimes wsapp.RuntimeProvider,
	store shared.EventStore,
	runner common.Runner,
) *FailQCUseCase {
	return &FailQCUseCase{decider{repo, txManager, runtimes, store, runner}}
}

// Execute 執行
func (uc *FailQCUseCase) Execute(ctx context.Context, cmd FailQCCommand) common.Result {
	return uc.decide(ctx, "FailQC", cmd.WorkspaceID, cmd.CheckID, cmd.Causation, func(c *qc.Check, causation shared.Causation) error {
		return c.Fail(cmd.ReviewerID, cmd.Reason, cmd.Defects, causation)
	})
}
