package persistence

import (
	"github.com/jackyeh168/workspace_hub/src/internal/domain/issue"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMIssueRepository GORM 實作的問題倉儲
type GORMIssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository 創建問題倉儲
func NewIssueRepository(db *gorm.DB) *GORMIssueRepository {
	return &GORMIssueRepository{db: db}
}

var _ issue.IssueRepository = (*GORMIssueRepository)(nil)

// Save 保存新問題
func (r *GORMIssueRepository) Save(ctx shared.TransactionContext, i *issue.Issue) error {
	db := dbFrom(ctx, r.db)

	if err := db.Create(toIssueModel(i)).Error; err != nil {
		return mapError(err,
			issue.ErrIssueNotFound,
			issue.ErrIssueAlreadyExists.WithContext("issue_id", i.ID().String()),
		)
	}
	return nil
}

// FindByID 根據 ID 查找問題
func (r *GORMIssueRepository) FindByID(ctx shared.TransactionContext, id issue.IssueID) (*issue.Issue, error) {
	db := dbFrom(ctx, r.db)

	var model IssueModel
	if err := db.First(&model, "id = ?", id.String()).Error; err != nil {
		return nil, mapError(err,
			issue.ErrIssueNotFound.WithContext("issue_id", id.String()),
			issue.ErrIssueAlreadyExists,
		)
	}
	return toIssueDomain(&model)
}

// Update 保存結案結果
func (r *GORMIssueRepository) Update(ctx shared.TransactionContext, i *issue.Issue) error {
	db := dbFrom(ctx, r.db)

	model := toIssueModel(i)
	result := db.Model(&IssueModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return mapError(result.Error, issue.ErrIssueNotFound, issue.ErrIssueAlreadyExists)
	}
	if result.RowsAffected == 0 {
		return issue.ErrIssueNotFound.WithContext("issue_id", model.ID)
	}
	return nil
}

// FindOpenByTask 任務尚未結案的問題，依建立時間排序
func (r *GORMIssueRepository) FindOpenByTask(ctx shared.TransactionContext, taskID string) ([]*issue.Issue, error) {
	db := dbFrom(ctx, r.db)

	var models []IssueModel
	err := db.Where("task_id = ? AND status = ?", taskID, string(issue.StatusOpen)).
		Order("created_at, id").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err, issue.ErrIssueNotFound, issue.ErrIssueAlreadyExists)
	}

	out := make([]*issue.Issue, 0, len(models))
	for i := range models {
		found, err := toIssueDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, found)
	}
	return out, nil
}
