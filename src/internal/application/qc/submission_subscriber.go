package qc

import (
	"context"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/qc"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	log "github.com/sirupsen/logrus"
)

// SubmissionSubscriber 任務提交品檢時排入新的品檢
//
// TaskSubmittedForQC → RequestCheck → QCRequested（延續因果鏈）
type SubmissionSubscriber struct {
	repo      qc.CheckRepository
	txManager shared.TransactionManager
	store     shared.EventStore
	runner    common.Runner
}

// NewSubmissionSubscriber 建立訂閱者
func NewSubmissionSubscriber(
	repo qc.CheckRepository,
	txManager shared.TransactionManager,
	store shared.EventStore,
	runner common.Runner,
) *SubmissionSubscriber {
	return &SubmissionSubscriber{
		repo:      repo,
		txManager: txManager,
		store:     store,
		runner:    runner,
	}
}

// Register 在模組匯流排上訂閱 TaskSubmittedForQC
func (s *SubmissionSubscriber) Register(bus wsapp.ModuleEventBus) shared.Subscription {
	return bus.Subscribe(task.EventTaskSubmittedForQC, shared.HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
		return s.handle(ctx, bus, e)
	}))
}

// Initializer 作為 runtime 初始化鉤子使用
func (s *SubmissionSubscriber) Initializer() wsapp.RuntimeInitializer {
	return func(rt *wsapp.WorkspaceRuntime) {
		s.Register(rt.ModuleBus())
	}
}

func (s *SubmissionSubscriber) handle(ctx context.Context, bus wsapp.ModuleEventBus, e shared.DomainEvent) error {
	fields := log.Fields{
		"workspace_id":   bus.WorkspaceID(),
		"task_id":        e.AggregateID(),
		"correlation_id": e.CorrelationID(),
	}
	res := s.runner.Run(ctx, "RequestQC", fields, func() error {
		c, err := qc.RequestCheck(bus.WorkspaceID(), e.AggregateID(), shared.CausationOf(e))
		if err != nil {
			return err
		}

		err = s.txManager.InTransaction(func(tx shared.TransactionContext) error {
			return s.repo.Save(tx, c)
		})
		if err != nil {
			return fmt.Errorf("failed to save qc check: %w", err)
		}

		return common.AppendThenPublish(ctx, s.store, bus, c.PullEvents())
	})

	if !res.Success {
		return fmt.Errorf("request qc for task %s: %s", e.AggregateID(), res.Error)
	}
	return nil
}
