package task_test

import (
	"testing"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(t *testing.T) *task.Task {
	t.Helper()
	tk, err := task.NewTask(task.NewTaskParams{
		WorkspaceID: "ws-1",
		Title:       "Pour foundation",
		Budget:      decimal.RequireFromString("1250.50"),
		CreatedBy:   "user-1",
	})
	require.NoError(t, err)
	return tk
}

// ===== 建立 =====

// Test 1: 建立任務記錄 TaskCreated，新因果鏈
func TestNewTask_RecordsTaskCreated(t *testing.T) {
	// Act
	tk := newTask(t)

	// Assert
	assert.Equal(t, task.StatusOpen, tk.Status())
	events := tk.PullEvents()
	require.Len(t, events, 1)

	evt := events[0]
	assert.Equal(t, task.EventTaskCreated, evt.EventType())
	assert.Equal(t, tk.ID().String(), evt.AggregateID())
	assert.Equal(t, "ws-1", evt.WorkspaceID())
	assert.Equal(t, evt.EventID(), evt.CorrelationID())
	assert.Equal(t, "", evt.CausationID())

	payload, ok := shared.EventAs[task.TaskCreatedPayload](evt)
	require.True(t, ok)
	assert.Equal(t, "Pour foundation", payload.Title)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(payload.Budget))
}

// Test 2: 攜帶因果上下文時延續鏈
func TestNewTask_WithCausation(t *testing.T) {
	parent := shared.NewEvent("IssueCreated", "issue-1", "ws-1", struct{}{})

	tk, err := task.NewTask(task.NewTaskParams{
		WorkspaceID: "ws-1",
		Title:       "Fix crack",
		Causation:   shared.CausationOf(parent),
	})
	require.NoError(t, err)

	evt := tk.PullEvents()[0]
	assert.Equal(t, parent.CorrelationID(), evt.CorrelationID())
	assert.Equal(t, parent.EventID(), evt.CausationID())
}

// Test 3: 驗證
func TestNewTask_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params task.NewTaskParams
		want   error
	}{
		{"missing workspace", task.NewTaskParams{Title: "x"}, task.ErrMissingWorkspace},
		{"blank title", task.NewTaskParams{WorkspaceID: "ws-1", Title: "  "}, task.ErrInvalidTitle},
		{"negative budget", task.NewTaskParams{WorkspaceID: "ws-1", Title: "x", Budget: decimal.NewFromInt(-1)}, task.ErrInvalidBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := task.NewTask(tt.params)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ===== 狀態轉換 =====

// Test 4: open → in_qc → completed
func TestTask_SubmitThenComplete(t *testing.T) {
	tk := newTask(t)
	tk.PullEvents()

	require.NoError(t, tk.SubmitForQC("user-1", shared.Causation{}))
	assert.Equal(t, task.StatusInQC, tk.Status())

	require.NoError(t, tk.Complete("qc-1", shared.Causation{}))
	assert.Equal(t, task.StatusCompleted, tk.Status())

	events := tk.PullEvents()
	require.Len(t, events, 2)
	assert.Equal(t, task.EventTaskSubmittedForQC, events[0].EventType())
	assert.Equal(t, task.EventTaskCompleted, events[1].EventType())
}

// Test 5: in_qc → open
func TestTask_Reopen(t *testing.T) {
	tk := newTask(t)
	require.NoError(t, tk.SubmitForQC("user-1", shared.Causation{}))
	tk.PullEvents()

	require.NoError(t, tk.Reopen("qc-1", "cracks found", shared.Causation{}))

	assert.Equal(t, task.StatusOpen, tk.Status())
	payload, ok := shared.EventAs[task.TaskReopenedPayload](tk.PullEvents()[0])
	require.True(t, ok)
	assert.Equal(t, "cracks found", payload.Reason)
}

// Test 6: 非法轉換不記錄事件
func TestTask_InvalidTransitions(t *testing.T) {
	tk := newTask(t)
	tk.PullEvents()

	assert.ErrorIs(t, tk.Complete("qc-1", shared.Causation{}), task.ErrInvalidTransition)
	assert.ErrorIs(t, tk.Reopen("qc-1", "x", shared.Causation{}), task.ErrInvalidTransition)

	require.NoError(t, tk.SubmitForQC("user-1", shared.Causation{}))
	assert.ErrorIs(t, tk.SubmitForQC("user-1", shared.Causation{}), task.ErrInvalidTransition)

	assert.Equal(t, 1, tk.PendingCount())
}

// Test 7: ParseStatus
func TestParseStatus(t *testing.T) {
	s, err := task.ParseStatus("in_qc")
	require.NoError(t, err)
	assert.Equal(t, task.StatusInQC, s)

	_, err = task.ParseStatus("archived")
	assert.ErrorIs(t, err, task.ErrInvalidStatus)
}
