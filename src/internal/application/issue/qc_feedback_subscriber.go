package issue

import (
	"context"
	"fmt"
	"strings"

	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/issue"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/qc"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
)

// QCFeedbackSubscriber 品檢不通過時自動建立問題
//
// 建立的 IssueCreated：causationID = QCFailed.EventID，correlationID = QCFailed.CorrelationID。
type QCFeedbackSubscriber struct {
	createIssue *CreateIssueUseCase
}

// NewQCFeedbackSubscriber 建立訂閱者
func NewQCFeedbackSubscriber(createIssue *CreateIssueUseCase) *QCFeedbackSubscriber {
	return &QCFeedbackSubscriber{createIssue: createIssue}
}

// Register 在模組匯流排上訂閱 QCFailed
func (s *QCFeedbackSubscriber) Register(bus wsapp.ModuleEventBus) shared.Subscription {
	return bus.Subscribe(qc.EventQCFailed, shared.HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
		return s.handle(ctx, bus.WorkspaceID(), e)
	}))
}

// Initializer 作為 runtime 初始化鉤子使用
func (s *QCFeedbackSubscriber) Initializer() wsapp.RuntimeInitializer {
	return func(rt *wsapp.WorkspaceRuntime) {
		s.Register(rt.ModuleBus())
	}
}

func (s *QCFeedbackSubscriber) handle(ctx context.Context, workspaceID string, e shared.DomainEvent) error {
	payload, ok := shared.EventAs[qc.QCFailedPayload](e)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e.Data(), e.EventType())
	}

	res := s.createIssue.execute(ctx, "CreateIssueFromQC", CreateIssueCommand{
		WorkspaceID: workspaceID,
		TaskID:      payload.TaskID,
		Title:       feedbackTitle(payload),
		Description: strings.Join(payload.Defects, "\n"),
		Source:      issue.SourceQC,
		QCCheckID:   e.AggregateID(),
		ReportedBy:  payload.ReviewerID,
		Causation:   shared.CausationOf(e),
	}, false)

	if !res.Success {
		return fmt.Errorf("create issue from qc %s: %s", e.AggregateID(), res.Error)
	}
	return nil
}

func feedbackTitle(p qc.QCFailedPayload) string {
	title := "QC failed: " + p.Reason
	if runes := []rune(title); len(runes) > issue.MaxTitleLength {
		title = string(runes[:issue.MaxTitleLength])
	}
	return title
}
