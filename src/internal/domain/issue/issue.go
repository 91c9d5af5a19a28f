package issue

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
)

// MaxTitleLength 標題長度上限（字元）
const MaxTitleLength = 200

// Source 問題來源
type Source string

const (
	SourceManual Source = "manual" // 使用者回報
	SourceQC     Source = "qc"     // 品檢不通過自動建立
)

// ParseSource 解析來源字串
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceManual, SourceQC:
		return Source(s), nil
	default:
		return "", ErrInvalidSource.WithContext("input", s)
	}
}

// Status 問題狀態
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// ParseStatus 解析持久化的狀態字串
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusResolved:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus.WithContext("input", s)
	}
}

// ===========================
// Issue 聚合根
// ===========================

// Issue 問題追蹤
type Issue struct {
	id          IssueID
	workspaceID string
	taskID      string
	title       string
	description string
	source      Source
	qcCheckID   string
	reportedBy  string
	status      Status
	resolution  string
	resolvedBy  string
	createdAt   time.Time
	resolvedAt  time.Time

	shared.PendingEvents
}

// NewIssueParams 建立問題參數
type NewIssueParams struct {
	WorkspaceID string
	TaskID      string
	Title       string
	Description string
	Source      Source
	QCCheckID   string
	ReportedBy  string
	Causation   shared.Causation
}

// NewIssue 建立問題並記錄 IssueCreated
func NewIssue(p NewIssueParams) (*Issue, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, ErrInvalidTitle.WithContext("title", p.Title, "max_length", MaxTitleLength)
	}

	source := p.Source
	if source == "" {
		source = SourceManual
	}
	if _, err := ParseSource(string(source)); err != nil {
		return nil, err
	}

	i := &Issue{
		id:          NewIssueID(),
		workspaceID: p.WorkspaceID,
		taskID:      p.TaskID,
		title:       title,
		description: strings.TrimSpace(p.Description),
		source:      source,
		qcCheckID:   p.QCCheckID,
		reportedBy:  p.ReportedBy,
		status:      StatusOpen,
		createdAt:   time.Now(),
	}

	i.Record(NewIssueCreatedEvent(i.id, i.workspaceID, IssueCreatedPayload{
		Title:       i.title,
		Description: i.description,
		TaskID:      i.taskID,
		Source:      i.source,
		QCCheckID:   i.qcCheckID,
		ReportedBy:  i.reportedBy,
	}, p.Causation.Options()...))

	return i, nil
}

// ReconstructParams 重建參數（僅 Repository 使用）
type ReconstructParams struct {
	ID          IssueID
	WorkspaceID string
	TaskID      string
	Title       string
	Description string
	Source      Source
	QCCheckID   string
	ReportedBy  string
	Status      Status
	Resolution  string
	ResolvedBy  string
	CreatedAt   time.Time
	ResolvedAt  time.Time
}

// ReconstructIssue 從持久化資料重建
func ReconstructIssue(p ReconstructParams) *Issue {
	return &Issue{
		id:          p.ID,
		workspaceID: p.WorkspaceID,
		taskID:      p.TaskID,
		title:       p.Title,
		description: p.Description,
		source:      p.Source,
		qcCheckID:   p.QCCheckID,
		reportedBy:  p.ReportedBy,
		status:      p.Status,
		resolution:  p.Resolution,
		resolvedBy:  p.ResolvedBy,
		createdAt:   p.CreatedAt,
		resolvedAt:  p.ResolvedAt,
	}
}

func (i *Issue) ID() IssueID           { return i.id }
func (i *Issue) WorkspaceID() string   { return i.workspaceID }
func (i *Issue) TaskID() string        { return i.taskID }
func (i *Issue) Title() string         { return i.title }
func (i *Issue) Description() string   { return i.description }
func (i *Issue) Source() Source        { return i.source }
func (i *Issue) QCCheckID() string     { return i.qcCheckID }
func (i *Issue) ReportedBy() string    { return i.reportedBy }
func (i *Issue) Status() Status        { return i.status }
func (i *Issue) Resolution() string    { return i.resolution }
func (i *Issue) ResolvedBy() string    { return i.resolvedBy }
func (i *Issue) CreatedAt() time.Time  { return i.createdAt }
func (i *Issue) ResolvedAt() time.Time { return i.resolvedAt }

// Resolve 結案並記錄 IssueResolved
func (i *Issue) Resolve(resolution, resolvedBy string, causation shared.Causation) error {
	if i.status == StatusResolved {
		return ErrAlreadyResolved.WithContext("issue_id", i.id.String())
	}
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return ErrMissingResolution
	}

	i.status = StatusResolved
	i.resolution = resolution
	i.resolvedBy = resolvedBy
	i.resolvedAt = time.Now()

	i.Record(NewIssueResolvedEvent(i.id, i.workspaceID, IssueResolvedPayload{
		TaskID:     i.taskID,
		Resolution: resolution,
		ResolvedBy: resolvedBy,
	}, causation.Options()...))
	return nil
}
