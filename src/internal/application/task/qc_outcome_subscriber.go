package task

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

// ===========================
// QC 結果訂閱者
// ===========================

// QCOutcomeSubscriber 依品檢結果推進任務狀態
//
//	QCPassed → Task.Complete → TaskCompleted
//	QCFailed → Task.Reopen   → TaskReopened
//
// 產生的事件延續觸發事件的因果鏈。此為系統動作，不檢查使用者權限。
type QCOutcomeSubscriber struct {
	repo      task.TaskRepository
	txManager shared.TransactionManager
	store     shared.EventStore
	runner    common.Runner
}

// NewQCOutcomeSubscriber 建立訂閱者
func NewQCOutcomeSubscriber(
	repo task.TaskRepository,
	txManager shared.TransactionManager,
	store shared.EventStore,
	runner common.Runner,
) *QCOutcomeSubscriber {
	return &QCOutcomeSubscriber{
		repo:      repo,
		txManager: txManager,
		store:     store,
		runner:    runner,
	}
}

// Register 在模組匯流排上訂閱品檢結果
func (s *QCOutcomeSubscriber) Register(bus wsapp.ModuleEventBus) []shared.Subscription {
	return []shared.Subscription{
		bus.Subscribe(qc.EventQCPassed, shared.HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			return s.onPassed(ctx, bus, e)
		})),
		bus.Subscribe(qc.EventQCFailed, shared.HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			return s.onFailed(ctx, bus, e)
		})),
	}
}

// Initializer 作為 runtime 初始化鉤子使用
func (s *QCOutcomeSubscriber) Initializer() wsapp.RuntimeInitializer {
	return func(rt *wsapp.WorkspaceRuntime) {
		s.Register(rt.ModuleBus())
	}
}

func (s *QCOutcomeSubscriber) onPassed(ctx context.Context, bus wsapp.ModuleEventBus, e shared.DomainEvent) error {
	payload, ok := shared.EventAs[qc.QCPassedPayload](e)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e.Data(), e.EventType())
	}
	return s.advance(ctx, bus, e, payload.TaskID, func(t *task.Task) error {
		return t.Complete(e.AggregateID(), shared.CausationOf(e))
	})
}

func (s *QCOutcomeSubscriber) onFailed(ctx context.Context, bus wsapp.ModuleEventBus, e shared.DomainEvent) error {
	payload, ok := shared.EventAs[qc.QCFailedPayload](e)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e.Data(), e.EventType())
	}
	return s.advance(ctx, bus, e, payload.TaskID, func(t *task.Task) error {
		return t.Reopen(e.AggregateID(), payload.Reason, shared.CausationOf(e))
	})
}

func (s *QCOutcomeSubscriber) advance(
	ctx context.Context,
	bus wsapp.ModuleEventBus,
	trigger shared.DomainEvent,
	rawTaskID string,
	mutate func(t *task.Task) error,
) error {
	fields := log.Fields{
		"workspace_id":   bus.WorkspaceID(),
		"task_id":        rawTaskID,
		"trigger":        trigger.EventType(),
		"correlation_id": trigger.CorrelationID(),
	}
	res := s.runner.Run(ctx, "AdvanceTaskOnQC", fields, func() error {
		taskID, err := task.TaskIDFromString(rawTaskID)
		if err != nil {
			return err
		}

		var events []shared.DomainEvent
		err = s.txManager.InTransaction(func(tx shared.TransactionContext) error {
			t, err := s.repo.FindByID(tx, taskID)
			if err != nil {
				return err
			}
			if err := mutate(t); err != nil {
				return err
			}
			if err := s.repo.Update(tx, t); err != nil {
				return err
			}
			events = t.PullEvents()
			return nil
		})
		if err != nil {
			return err
		}

		return common.AppendThenPublish(ctx, s.store, bus, events)
	})

	if !res.Success {
		return fmt.Errorf("advance task %s: %s", rawTaskID, res.Error)
	}
	return nil
}
