package persistence

import (
	"github.com/jackyeh168/workspace_hub/src/internal/domain/qc"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMCheckRepository GORM 實作的品檢倉儲
type GORMCheckRepository struct {
	db *gorm.DB
}

// NewCheckRepository 創建品檢倉儲
func NewCheckRepository(db *gorm.DB) *GORMCheckRepository {
	return &GORMCheckRepository{db: db}
}

var _ qc.CheckRepository = (*GORMCheckRepository)(nil)

// Save 保存新品檢
func (r *GORMCheckRepository) Save(ctx shared.TransactionContext, c *qc.Check) error {
	db := dbFrom(ctx, r.db)

	model, err := toCheckModel(c)
	if err != nil {
		return err
	}
	if err := db.Create(model).Error; err != nil {
		return mapError(err,
			qc.ErrCheckNotFound,
			qc.ErrCheckAlreadyExists.WithContext("check_id", model.ID),
		)
	}
	return nil
}

// FindByID 根據 ID 查找品檢
func (r *GORMCheckRepository) FindByID(ctx shared.TransactionContext, id qc.CheckID) (*qc.Check, error) {
	db := dbFrom(ctx, r.db)

	var model QCCheckModel
	if err := db.First(&model, "id = ?", id.String()).Error; err != nil {
		return nil, mapError(err,
			qc.ErrCheckNotFound.WithContext("check_id", id.String()),
			qc.ErrCheckAlreadyExists,
		)
	}
	return toCheckDomain(&model)
}

// Update 保存判定結果
func (r *GORMCheckRepository) Update(ctx shared.TransactionContext, c *qc.Check) error {
	db := dbFrom(ctx, r.db)

	model, err := toCheckModel(c)
	if err != nil {
		return err
	}
	result := db.Model(&QCCheckModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return mapError(result.Error, qc.ErrCheckNotFound, qc.ErrCheckAlreadyExists)
	}
	if result.RowsAffected == 0 {
		return qc.ErrCheckNotFound.WithContext("check_id", model.ID)
	}
	return nil
}

// FindByTask 依排入時間列出任務的品檢紀錄
func (r *GORMCheckRepository) FindByTask(ctx shared.TransactionContext, taskID string) ([]*qc.Check, error) {
	db := dbFrom(ctx, r.db)

	var models []QCCheckModel
	if err := db.Where("task_id = ?", taskID).Order("requested_at, id").Find(&models).Error; err != nil {
		return nil, mapError(err, qc.ErrCheckNotFound, qc.ErrCheckAlreadyExists)
	}

	out := make([]*qc.Check, 0, len(models))
	for i := range models {
		c, err := toCheckDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
