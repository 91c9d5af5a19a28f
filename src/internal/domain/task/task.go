package task

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxTitleLength 標題長度上限（字元）
const MaxTitleLength = 200

// ===========================
// Task 聚合根
// ===========================

// Task 任務聚合根
//
// 不變條件：
// - title 非空
// - budget >= 0
// - 狀態只能依 Status 圖轉換
type Task struct {
	id          TaskID
	workspaceID string
	title       string
	description string
	assigneeID  string
	budget      decimal.Decimal
	status      Status
	createdBy   string
	createdAt   time.Time
	updatedAt   time.Time

	shared.PendingEvents
}

// NewTaskParams 建立任務參數
type NewTaskParams struct {
	WorkspaceID string
	Title       string
	Description string
	AssigneeID  string
	Budget      decimal.Decimal
	CreatedBy   string
	Causation   shared.Causation
}

// NewTask 建立任務並記錄 TaskCreated
func NewTask(p NewTaskParams) (*Task, error) {
	if strings.TrimSpace(p.WorkspaceID) == "" {
		return nil, ErrMissingWorkspace
	}

	title := strings.TrimSpace(p.Title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, ErrInvalidTitle.WithContext("title", p.Title, "max_length", MaxTitleLength)
	}

	if p.Budget.IsNegative() {
		return nil, ErrInvalidBudget.WithContext("budget", p.Budget.String())
	}

	now := time.Now()
	t := &Task{
		id:          NewTaskID(),
		workspaceID: p.WorkspaceID,
		title:       title,
		description: strings.TrimSpace(p.Description),
		assigneeID:  p.AssigneeID,
		budget:      p.Budget,
		status:      StatusOpen,
		createdBy:   p.CreatedBy,
		createdAt:   now,
		updatedAt:   now,
	}

	t.Record(NewTaskCreatedEvent(t.id, t.workspaceID, TaskCreatedPayload{
		Title:       t.title,
		Description: t.description,
		AssigneeID:  t.assigneeID,
		Budget:      t.budget,
		CreatedBy:   t.createdBy,
	}, p.Causation.Options()...))

	return t, nil
}

// ReconstructParams 重建參數（僅 Repository 使用）
type ReconstructParams struct {
	ID          TaskID
	WorkspaceID string
	Title       string
	Description string
	AssigneeID  string
	Budget      decimal.Decimal
	Status      Status
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReconstructTask 從持久化資料重建，不驗證也不產生事件
func ReconstructTask(p ReconstructParams) *Task {
	return &Task{
		id:          p.ID,
		workspaceID: p.WorkspaceID,
		title:       p.Title,
		description: p.Description,
		assigneeID:  p.AssigneeID,
		budget:      p.Budget,
		status:      p.Status,
		createdBy:   p.CreatedBy,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}
}

// ===========================
// Getters
// ===========================

func (t *Task) ID() TaskID              { return t.id }
func (t *Task) WorkspaceID() string     { return t.workspaceID }
func (t *Task) Title() string           { return t.title }
func (t *Task) Description() string     { return t.description }
func (t *Task) AssigneeID() string      { return t.assigneeID }
func (t *Task) Budget() decimal.Decimal { return t.budget }
func (t *Task) Status() Status          { return t.status }
func (t *Task) CreatedBy() string       { return t.createdBy }
func (t *Task) CreatedAt() time.Time    { return t.createdAt }
func (t *Task) UpdatedAt() time.Time    { return t.updatedAt }

// ===========================
// 命令方法
// ===========================

// SubmitForQC open → in_qc
func (t *Task) SubmitForQC(submittedBy string, causation shared.Causation) error {
	if err := t.transition(StatusOpen, StatusInQC); err != nil {
		return err
	}
	t.Record(NewTaskSubmittedForQCEvent(t.id, t.workspaceID, TaskSubmittedForQCPayload{
		SubmittedBy: submittedBy,
	}, causation.Options()...))
	return nil
}

// Complete in_qc → completed（品檢通過）
func (t *Task) Complete(qcCheckID string, causation shared.Causation) error {
	if err := t.transition(StatusInQC, StatusCompleted); err != nil {
		return err
	}
	t.Record(NewTaskCompletedEvent(t.id, t.workspaceID, TaskCompletedPayload{
		QCCheckID: qcCheckID,
	}, causation.Options()...))
	return nil
}

// Reopen in_qc → open（品檢未通過）
func (t *Task) Reopen(qcCheckID, reason string, causation shared.Causation) error {
	if err := t.transition(StatusInQC, StatusOpen); err != nil {
		return err
	}
	t.Record(NewTaskReopenedEvent(t.id, t.workspaceID, TaskReopenedPayload{
		QCCheckID: qcCheckID,
		Reason:    reason,
	}, causation.Options()...))
	return nil
}

func (t *Task) transition(from, to Status) error {
	if t.status != from {
		return ErrInvalidTransition.WithContext(
			"task_id", t.id.String(),
			"status", t.status.String(),
			"target", to.String(),
		)
	}
	t.status = to
	t.updatedAt = time.Now()
	return nil
}
