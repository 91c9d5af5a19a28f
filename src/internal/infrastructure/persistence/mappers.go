package persistence

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/issue"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/member"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/qc"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	"github.com/shopspring/decimal"
)

// ===========================
// Domain ↔ GORM Model 轉換函數
// ===========================
//
// toXxxDomain 驗證資料庫中的識別碼與列舉值，資料損壞時返回 DomainError 而非 panic。
// toXxxModel 不做驗證，聚合已保證資料有效。

func toWorkspaceDomain(m *WorkspaceModel) (*workspace.Workspace, error) {
	id, err := workspace.WorkspaceIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	return workspace.ReconstructWorkspace(id, m.Name, m.OwnerID, m.CreatedAt), nil
}

func toWorkspaceModel(ws *workspace.Workspace) *WorkspaceModel {
	return &WorkspaceModel{
		ID:        ws.ID().String(),
		Name:      ws.Name(),
		OwnerID:   ws.OwnerID(),
		CreatedAt: ws.CreatedAt(),
	}
}

func toTaskDomain(m *TaskModel) (*task.Task, error) {
	id, err := task.TaskIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	status, err := task.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	budget, err := decimal.NewFromString(m.Budget)
	if err != nil {
		return nil, task.ErrInvalidBudget.WithContext("task_id", m.ID, "budget", m.Budget)
	}

	return task.ReconstructTask(task.ReconstructParams{
		ID:          id,
		WorkspaceID: m.WorkspaceID,
		Title:       m.Title,
		Description: m.Description,
		AssigneeID:  m.AssigneeID,
		Budget:      budget,
		Status:      status,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}), nil
}

func toTaskModel(t *task.Task) *TaskModel {
	return &TaskModel{
		ID:          t.ID().String(),
		WorkspaceID: t.WorkspaceID(),
		Title:       t.Title(),
		Description: t.Description(),
		AssigneeID:  t.AssigneeID(),
		Budget:      t.Budget().String(),
		Status:      t.Status().String(),
		CreatedBy:   t.CreatedBy(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func toCheckDomain(m *QCCheckModel) (*qc.Check, error) {
	id, err := qc.CheckIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	status, err := qc.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	var defects []string
	if m.Defects != "" {
		if err := sonic.UnmarshalString(m.Defects, &defects); err != nil {
			return nil, fmt.Errorf("decode defects of qc check %s: %w", m.ID, err)
		}
	}

	return qc.ReconstructCheck(qc.ReconstructParams{
		ID:          id,
		WorkspaceID: m.WorkspaceID,
		TaskID:      m.TaskID,
		Status:      status,
		ReviewerID:  m.ReviewerID,
		Notes:       m.Notes,
		Defects:     defects,
		RequestedAt: m.RequestedAt,
		DecidedAt:   fromNullable(m.DecidedAt),
	}), nil
}

func toCheckModel(c *qc.Check) (*QCCheckModel, error) {
	var defects string
	if d := c.Defects(); len(d) > 0 {
		encoded, err := sonic.MarshalString(d)
		if err != nil {
			return nil, fmt.Errorf("encode defects of qc check %s: %w", c.ID().String(), err)
		}
		defects = encoded
	}

	return &QCCheckModel{
		ID:          c.ID().String(),
		WorkspaceID: c.WorkspaceID(),
		TaskID:      c.TaskID(),
		Status:      string(c.Status()),
		ReviewerID:  c.ReviewerID(),
		Notes:       c.Notes(),
		Defects:     defects,
		RequestedAt: c.RequestedAt(),
		DecidedAt:   toNullable(c.DecidedAt()),
	}, nil
}

func toIssueDomain(m *IssueModel) (*issue.Issue, error) {
	id, err := issue.IssueIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	source, err := issue.ParseSource(m.Source)
	if err != nil {
		return nil, err
	}
	status, err := issue.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return issue.ReconstructIssue(issue.ReconstructParams{
		ID:          id,
		WorkspaceID: m.WorkspaceID,
		TaskID:      m.TaskID,
		Title:       m.Title,
		Description: m.Description,
		Source:      source,
		QCCheckID:   m.QCCheckID,
		ReportedBy:  m.ReportedBy,
		Status:      status,
		Resolution:  m.Resolution,
		ResolvedBy:  m.ResolvedBy,
		CreatedAt:   m.CreatedAt,
		ResolvedAt:  fromNullable(m.ResolvedAt),
	}), nil
}

func toIssueModel(i *issue.Issue) *IssueModel {
	return &IssueModel{
		ID:          i.ID().String(),
		WorkspaceID: i.WorkspaceID(),
		TaskID:      i.TaskID(),
		Title:       i.Title(),
		Description: i.Description(),
		Source:      string(i.Source()),
		QCCheckID:   i.QCCheckID(),
		ReportedBy:  i.ReportedBy(),
		Status:      string(i.Status()),
		Resolution:  i.Resolution(),
		ResolvedBy:  i.ResolvedBy(),
		CreatedAt:   i.CreatedAt(),
		ResolvedAt:  toNullable(i.ResolvedAt()),
	}
}

// toNullable 零值時間存為 NULL
func toMemberDomain(m *MemberModel) (*member.Member, error) {
	id, err := member.MemberIDFromString(m.MemberID)
	if err != nil {
		return nil, err
	}
	return member.ReconstructMember(member.ReconstructParams{
		MemberID:    id,
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		Role:        member.Role(m.Role),
		JoinedAt:    m.JoinedAt,
		UpdatedAt:   m.UpdatedAt,
		Version:     m.Version,
	})
}

func toMemberModel(m *member.Member) *MemberModel {
	return &MemberModel{
		MemberID:    m.MemberID().String(),
		WorkspaceID: m.WorkspaceID(),
		UserID:      m.UserID(),
		DisplayName: m.DisplayName(),
		Role:        m.Role().String(),
		JoinedAt:    m.JoinedAt(),
		UpdatedAt:   m.UpdatedAt(),
		Version:     m.Version(),
	}
}

func toNullable(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func fromNullable(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
