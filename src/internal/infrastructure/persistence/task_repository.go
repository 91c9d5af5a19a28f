package persistence

import (
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	"gorm.io/gorm"
)

// ===========================
// GORM TaskRepository 實作
// ===========================

// GORMTaskRepository GORM 實作的任務倉儲
//
// 只負責 Domain ↔ GORM 轉換與錯誤映射，不包含業務邏輯。
type GORMTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository 創建任務倉儲
func NewTaskRepository(db *gorm.DB) *GORMTaskRepository {
	return &GORMTaskRepository{db: db}
}

var _ task.TaskRepository = (*GORMTaskRepository)(nil)

// Save 保存新任務
// 錯誤：ErrTaskAlreadyExists
func (r *GORMTaskRepository) Save(ctx shared.TransactionContext, t *task.Task) error {
	db := dbFrom(ctx, r.db)

	if err := db.Create(toTaskModel(t)).Error; err != nil {
		return mapError(err,
			task.ErrTaskNotFound,
			task.ErrTaskAlreadyExists.WithContext("task_id", t.ID().String()),
		)
	}
	return nil
}

// FindByID 根據 ID 查找任務
// 錯誤：ErrTaskNotFound
func (r *GORMTaskRepository) FindByID(ctx shared.TransactionContext, id task.TaskID) (*task.Task, error) {
	db := dbFrom(ctx, r.db)

	var model TaskModel
	if err := db.First(&model, "id = ?", id.String()).Error; err != nil {
		return nil, mapError(err,
			task.ErrTaskNotFound.WithContext("task_id", id.String()),
			task.ErrTaskAlreadyExists,
		)
	}
	return toTaskDomain(&model)
}

// Update 更新任務
//
// WHERE 條件確保只更新存在的記錄；RowsAffected == 0 表示記錄不存在。
// Select("*") 讓零值欄位也寫回。
func (r *GORMTaskRepository) Update(ctx shared.TransactionContext, t *task.Task) error {
	db := dbFrom(ctx, r.db)

	model := toTaskModel(t)
	result := db.Model(&TaskModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return mapError(result.Error, task.ErrTaskNotFound, task.ErrTaskAlreadyExists)
	}
	if result.RowsAffected == 0 {
		return task.ErrTaskNotFound.WithContext("task_id", model.ID)
	}
	return nil
}

// FindByWorkspace 依建立時間列出工作區內的任務
func (r *GORMTaskRepository) FindByWorkspace(ctx shared.TransactionContext, workspaceID string) ([]*task.Task, error) {
	db := dbFrom(ctx, r.db)

	var models []TaskModel
	if err := db.Where("workspace_id = ?", workspaceID).Order("created_at, id").Find(&models).Error; err != nil {
		return nil, mapError(err, task.ErrTaskNotFound, task.ErrTaskAlreadyExists)
	}

	out := make([]*task.Task, 0, len(models))
	for i := range models {
		t, err := toTaskDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
