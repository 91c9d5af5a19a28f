package persistence

import (
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	"gorm.io/gorm"
)

// GORMWorkspaceRepository GORM 實作的工作區倉儲
type GORMWorkspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository 創建工作區倉儲
func NewWorkspaceRepository(db *gorm.DB) *GORMWorkspaceRepository {
	return &GORMWorkspaceRepository{db: db}
}

var _ workspace.WorkspaceRepository = (*GORMWorkspaceRepository)(nil)

// Save 保存新工作區
func (r *GORMWorkspaceRepository) Save(ctx shared.TransactionContext, ws *workspace.Workspace) error {
	db := dbFrom(ctx, r.db)

	if err := db.Create(toWorkspaceModel(ws)).Error; err != nil {
		return mapError(err,
			workspace.ErrWorkspaceNotFound,
			workspace.ErrWorkspaceAlreadyExists.WithContext("workspace_id", ws.ID().String()),
		)
	}
	return nil
}

// FindByID 根據 ID 查找工作區
func (r *GORMWorkspaceRepository) FindByID(ctx shared.TransactionContext, id workspace.WorkspaceID) (*workspace.Workspace, error) {
	db := dbFrom(ctx, r.db)

	var model WorkspaceModel
	if err := db.First(&model, "id = ?", id.String()).Error; err != nil {
		return nil, mapError(err,
			workspace.ErrWorkspaceNotFound.WithContext("workspace_id", id.String()),
			workspace.ErrWorkspaceAlreadyExists,
		)
	}
	return toWorkspaceDomain(&model)
}

// FindByOwner 依建立時間列出擁有者的工作區
func (r *GORMWorkspaceRepository) FindByOwner(ctx shared.TransactionContext, ownerID string) ([]*workspace.Workspace, error) {
	db := dbFrom(ctx, r.db)

	var models []WorkspaceModel
	if err := db.Where("owner_id = ?", ownerID).Order("created_at, id").Find(&models).Error; err != nil {
		return nil, mapError(err, workspace.ErrWorkspaceNotFound, workspace.ErrWorkspaceAlreadyExists)
	}

	out := make([]*workspace.Workspace, 0, len(models))
	for i := range models {
		ws, err := toWorkspaceDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, nil
}
