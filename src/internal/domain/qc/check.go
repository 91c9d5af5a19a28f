package qc

import (
	"strings"
	"time"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
)

// Status 品檢狀態
type Status string

const (
	StatusPending Status = "pending"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// ParseStatus 解析持久化的狀態字串
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPassed, StatusFailed:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus.WithContext("input", s)
	}
}

// ===========================
// Check 聚合根
// ===========================

// Check 一次品檢
//
// 每次任務提交品檢產生一個新的 Check；判定只能進行一次。
type Check struct {
	id          CheckID
	workspaceID string
	taskID      string
	status      Status
	reviewerID  string
	notes       string
	defects     []string
	requestedAt time.Time
	decidedAt   time.Time

	shared.PendingEvents
}

// RequestCheck 為任務排入品檢並記錄 QCRequested
func RequestCheck(workspaceID, taskID string, causation shared.Causation) (*Check, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, ErrMissingTask
	}

	c := &Check{
		id:          NewCheckID(),
		workspaceID: workspaceID,
		taskID:      taskID,
		status:      StatusPending,
		requestedAt: time.Now(),
	}
	c.Record(NewQCRequestedEvent(c.id, workspaceID, QCRequestedPayload{TaskID: taskID}, causation.Options()...))
	return c, nil
}

// ReconstructParams 重建參數（僅 Repository 使用）
type ReconstructParams struct {
	ID          CheckID
	WorkspaceID string
	TaskID      string
	Status      Status
	ReviewerID  string
	Notes       string
	Defects     []string
	RequestedAt time.Time
	DecidedAt   time.Time
}

// ReconstructCheck 從持久化資料重建
func ReconstructCheck(p ReconstructParams) *Check {
	return &Check{
		id:          p.ID,
		workspaceID: p.WorkspaceID,
		taskID:      p.TaskID,
		status:      p.Status,
		reviewerID:  p.ReviewerID,
		notes:       p.Notes,
		defects:     append([]string(nil), p.Defects...),
		requestedAt: p.RequestedAt,
		decidedAt:   p.DecidedAt,
	}
}

func (c *Check) ID() CheckID            { return c.id }
func (c *Check) WorkspaceID() string    { return c.workspaceID }
func (c *Check) TaskID() string         { return c.taskID }
func (c *Check) Status() Status         { return c.status }
func (c *Check) ReviewerID() string     { return c.reviewerID }
func (c *Check) Notes() string          { return c.notes }
func (c *Check) RequestedAt() time.Time { return c.requestedAt }
func (c *Check) DecidedAt() time.Time   { return c.decidedAt }

// Defects 缺失項目副本
func (c *Check) Defects() []string {
	return append([]string(nil), c.defects...)
}

// Pass 判定通過並記錄 QCPassed
func (c *Check) Pass(reviewerID, notes string, causation shared.Causation) error {
	if err := c.decide(reviewerID); err != nil {
		return err
	}
	c.status = StatusPassed
	c.notes = notes

	c.Record(NewQCPassedEvent(c.id, c.workspaceID, QCPassedPayload{
		TaskID:     c.taskID,
		ReviewerID: reviewerID,
		Notes:      notes,
	}, causation.Options()...))
	return nil
}

// Fail 判定不通過並記錄 QCFailed
func (c *Check) Fail(reviewerID, reason string, defects []string, causation shared.Causation) error {
	if strings.TrimSpace(reason) == "" {
		return ErrMissingReason
	}
	if err := c.decide(reviewerID); err != nil {
		return err
	}
	c.status = StatusFailed
	c.notes = reason
	c.defects = append([]string(nil), defects...)

	c.Record(NewQCFailedEvent(c.id, c.workspaceID, QCFailedPayload{
		TaskID:     c.taskID,
		ReviewerID: reviewerID,
		Reason:     reason,
		Defects:    c.defects,
	}, causation.Options()...))
	return nil
}

func (c *Check) decide(reviewerID string) error {
	if c.status != StatusPending {
		return ErrAlreadyDecided.WithContext("check_id", c.id.String(), "status", string(c.status))
	}
	if strings.TrimSpace(reviewerID) == "" {
		return ErrMissingReviewer
	}
	c.reviewerID = reviewerID
	c.decidedAt = time.Now()
	return nil
}
