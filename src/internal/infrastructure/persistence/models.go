package persistence

import (
	"time"
)

// ===========================
// GORM Model 定義
// ===========================

// WorkspaceModel 工作區資料表
type WorkspaceModel struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	OwnerID   string    `gorm:"column:owner_id;type:varchar(64);index;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (WorkspaceModel) TableName() string {
	return "workspaces"
}

// TaskModel 任務資料表
//
// Budget 以十進位字串保存，避免浮點誤差。
type TaskModel struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey"`
	WorkspaceID string    `gorm:"column:workspace_id;type:varchar(64);index;not null"`
	Title       string    `gorm:"column:title;type:varchar(255);not null"`
	Description string    `gorm:"column:description;type:text"`
	AssigneeID  string    `gorm:"column:assignee_id;type:varchar(64)"`
	Budget      string    `gorm:"column:budget;type:varchar(64);not null;default:'0'"`
	Status      string    `gorm:"column:status;type:varchar(16);not null"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64)"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (TaskModel) TableName() string {
	return "tasks"
}

// QCCheckModel 品檢資料表
//
// Defects 以 JSON 陣列保存。
type QCCheckModel struct {
	ID          string     `gorm:"column:id;type:varchar(36);primaryKey"`
	WorkspaceID string     `gorm:"column:workspace_id;type:varchar(64);index;not null"`
	TaskID      string     `gorm:"column:task_id;type:varchar(64);index;not null"`
	Status      string     `gorm:"column:status;type:varchar(16);not null"`
	ReviewerID  string     `gorm:"column:reviewer_id;type:varchar(64)"`
	Notes       string     `gorm:"column:notes;type:text"`
	Defects     string     `gorm:"column:defects;type:text"`
	RequestedAt time.Time  `gorm:"column:requested_at;not null"`
	DecidedAt   *time.Time `gorm:"column:decided_at"`
}

// TableName 指定表名
func (QCCheckModel) TableName() string {
	return "qc_checks"
}

// IssueModel 問題資料表
type IssueModel struct {
	ID          string     `gorm:"column:id;type:varchar(36);primaryKey"`
	WorkspaceID string     `gorm:"column:workspace_id;type:varchar(64);index;not null"`
	TaskID      string     `gorm:"column:task_id;type:varchar(64);index"`
	Title       string     `gorm:"column:title;type:varchar(255);not null"`
	Description string     `gorm:"column:description;type:text"`
	Source      string     `gorm:"column:source;type:varchar(16);not null"`
	QCCheckID   string     `gorm:"column:qc_check_id;type:varchar(36)"`
	ReportedBy  string     `gorm:"column:reported_by;type:varchar(64)"`
	Status      string     `gorm:"column:status;type:varchar(16);not null"`
	Resolution  string     `gorm:"column:resolution;type:text"`
	ResolvedBy  string     `gorm:"column:resolved_by;type:varchar(64)"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
}

// TableName 指定表名
func (IssueModel) TableName() string {
	return "issues"
}

// MemberModel 工作區成員資料表
//
// (workspace_id, user_id) 唯一；Version 為樂觀鎖。
type MemberModel struct {
	MemberID    string    `gorm:"column:member_id;type:varchar(36);primaryKey"`
	WorkspaceID string    `gorm:"column:workspace_id;type:varchar(64);uniqueIndex:idx_members_workspace_user;not null"`
	UserID      string    `gorm:"column:user_id;type:varchar(64);uniqueIndex:idx_members_workspace_user;not null"`
	DisplayName string    `gorm:"column:display_name;type:varchar(255);not null"`
	Role        string    `gorm:"column:role;type:varchar(16);not null"`
	JoinedAt    time.Time `gorm:"column:joined_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
	Version     int       `gorm:"column:version;not null;default:1"`
}

// TableName 指定表名
func (MemberModel) TableName() string {
	return "members"
}

// EventRecordModel 事件歸檔資料表
//
// Seq 保留寫入順序；Body 為 codec 編碼的完整信封。
type EventRecordModel struct {
	Seq           uint64    `gorm:"column:seq;primaryKey;autoIncrement"`
	EventID       string    `gorm:"column:event_id;type:varchar(36);uniqueIndex;not null"`
	EventType     string    `gorm:"column:event_type;type:varchar(64);index;not null"`
	AggregateID   string    `gorm:"column:aggregate_id;type:varchar(64);index;not null"`
	WorkspaceID   string    `gorm:"column:workspace_id;type:varchar(64);index"`
	CorrelationID string    `gorm:"column:correlation_id;type:varchar(36);index;not null"`
	CausationID   string    `gorm:"column:causation_id;type:varchar(36)"`
	OccurredAt    time.Time `gorm:"column:occurred_at;index;not null"`
	Body          []byte    `gorm:"column:body;not null"`
}

// TableName 指定表名
func (EventRecordModel) TableName() string {
	return "event_records"
}
