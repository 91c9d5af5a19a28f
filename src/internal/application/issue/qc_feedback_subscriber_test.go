package issue

import (
	"context"
	"strings"
	"testing"

	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/issue"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/qc"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: QCFailed 自動建立問題，整條因果鏈可由 correlation 查回
func TestQCFeedbackSubscriber_CreatesIssueInSameChain(t *testing.T) {
	// Arrange
	f := newIssueFixture()
	rt := f.openRuntime("member-1")
	NewQCFeedbackSubscriber(f.create).Register(rt.ModuleBus())

	root := task.NewTaskSubmittedForQCEvent(task.NewTaskID(), testWorkspaceID, task.TaskSubmittedForQCPayload{SubmittedBy: "member-1"})
	checkID := qc.NewCheckID()
	failed := qc.NewQCFailedEvent(checkID, testWorkspaceID, qc.QCFailedPayload{
		TaskID:     root.AggregateID(),
		ReviewerID: "reviewer-1",
		Reason:     "uneven surface",
		Defects:    []string{"bay 2", "bay 4"},
	}, shared.CausedBy(root))
	require.NoError(t, f.store.AppendBatch([]shared.DomainEvent{root, failed}))

	// Act
	require.NoError(t, rt.EventBus.Publish(context.Background(), failed))

	// Assert
	chain := f.store.GetEventsByCausality(root.CorrelationID())
	require.Len(t, chain, 3)
	created := chain[2]
	assert.Equal(t, issue.EventIssueCreated, created.EventType())
	assert.Equal(t, failed.EventID(), created.CausationID())
	assert.Equal(t, root.EventID(), root.CorrelationID())

	payload, ok := shared.EventAs[issue.IssueCreatedPayload](created)
	require.True(t, ok)
	assert.Equal(t, issue.SourceQC, payload.Source)
	assert.Equal(t, checkID.String(), payload.QCCheckID)
	assert.Equal(t, root.AggregateID(), payload.TaskID)
	assert.Equal(t, "reviewer-1", payload.ReportedBy)
	assert.Equal(t, "QC failed: uneven surface", payload.Title)
	assert.Equal(t, "bay 2\nbay 4", payload.Description)
}

// Test 2: 系統動作不受使用者權限限制
func TestQCFeedbackSubscriber_SkipsPermissionCheck(t *testing.T) {
	f := newIssueFixture(wsapp.WithPermissionResolver(func(wsapp.Descriptor) workspace.PermissionSet {
		return workspace.NewPermissionSet()
	}))
	rt := f.openRuntime("viewer-1")
	require.False(t, rt.Context.Can(workspace.PermIssueCreate))
	NewQCFeedbackSubscriber(f.create).Register(rt.ModuleBus())

	failed := qc.NewQCFailedEvent(qc.NewCheckID(), testWorkspaceID, qc.QCFailedPayload{TaskID: "task-1", Reason: "bad"})
	require.NoError(t, f.store.Append(failed))

	require.NoError(t, rt.EventBus.Publish(context.Background(), failed))

	assert.Len(t, f.store.GetEventsByType(issue.EventIssueCreated), 1)
}

// Test 3: 過長原因會截斷為合法標題
func TestFeedbackTitle_Truncates(t *testing.T) {
	title := feedbackTitle(qc.QCFailedPayload{Reason: strings.Repeat("裂", issue.MaxTitleLength)})

	assert.Equal(t, issue.MaxTitleLength, len([]rune(title)))
	assert.True(t, strings.HasPrefix(title, "QC failed: "))
}

// Test 4: Initializer 於 runtime 建立時註冊
func TestQCFeedbackSubscriber_Initializer(t *testing.T) {
	f := newIssueFixture()
	sub := NewQCFeedbackSubscriber(f.create)
	rt := f.openRuntime(testOwnerID)
	sub.Initializer()(rt)

	failed := qc.NewQCFailedEvent(qc.NewCheckID(), testWorkspaceID, qc.QCFailedPayload{TaskID: "task-1", Reason: "bad"})
	require.NoError(t, f.store.Append(failed))
	require.NoError(t, rt.EventBus.Publish(context.Background(), failed))

	assert.Equal(t, 1, f.repo.SaveCallCount)
}
