package persistence

import (
	"github.com/jackyeh168/workspace_hub/src/internal/domain/member"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORMMemberRepository
// ===========================

// GORMMemberRepository GORM 實作的成員倉儲
//
// 同一工作區的 user_id 唯一性由資料庫約束保證，違反時轉為 ErrMemberAlreadyExists。
type GORMMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 創建成員倉儲
func NewMemberRepository(db *gorm.DB) *GORMMemberRepository {
	return &GORMMemberRepository{db: db}
}

var _ member.MemberRepository = (*GORMMemberRepository)(nil)

// Save 保存新成員
func (r *GORMMemberRepository) Save(ctx shared.TransactionContext, m *member.Member) error {
	db := dbFrom(ctx, r.db)

	if err := db.Create(toMemberModel(m)).Error; err != nil {
		return mapError(err,
			member.ErrMemberNotFound,
			member.ErrMemberAlreadyExists.WithContext("workspace_id", m.WorkspaceID(), "user_id", m.UserID()),
		)
	}
	return nil
}

// Update 以樂觀鎖更新成員
//
// 每次 Update 對應一次狀態變更：資料庫中的 version 必須等於聚合 version - 1。
// RowsAffected == 0 表示記錄不存在或已被其他寫入推進。
func (r *GORMMemberRepository) Update(ctx shared.TransactionContext, m *member.Member) error {
	db := dbFrom(ctx, r.db)

	model := toMemberModel(m)
	result := db.Model(&MemberModel{}).
		Where("member_id = ? AND version = ?", model.MemberID, model.Version-1).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return mapError(result.Error, member.ErrMemberNotFound, member.ErrMemberAlreadyExists)
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound.WithContext("member_id", model.MemberID, "expected_version", model.Version-1)
	}
	return nil
}

// FindByUser 查找工作區內的使用者
func (r *GORMMemberRepository) FindByUser(ctx shared.TransactionContext, workspaceID, userID string) (*member.Member, error) {
	db := dbFrom(ctx, r.db)

	var model MemberModel
	err := db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&model).Error
	if err != nil {
		return nil, mapError(err,
			member.ErrMemberNotFound.WithContext("workspace_id", workspaceID, "user_id", userID),
			member.ErrMemberAlreadyExists,
		)
	}
	return toMemberDomain(&model)
}

// FindByWorkspace 依加入時間列出工作區成員
func (r *GORMMemberRepository) FindByWorkspace(ctx shared.TransactionContext, workspaceID string) ([]*member.Member, error) {
	db := dbFrom(ctx, r.db)

	var models []MemberModel
	if err := db.Where("workspace_id = ?", workspaceID).Order("joined_at, member_id").Find(&models).Error; err != nil {
		return nil, mapError(err, member.ErrMemberNotFound, member.ErrMemberAlreadyExists)
	}

	out := make([]*member.Member, 0, len(models))
	for i := range models {
		m, err := toMemberDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// ExistsByUser 使用者是否已是工作區成員
func (r *GORMMemberRepository) ExistsByUser(ctx shared.TransactionContext, workspaceID, userID string) (bool, error) {
	db := dbFrom(ctx, r.db)

	var count int64
	err := db.Model(&MemberModel{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error
	if err != nil {
		return false, mapError(err, member.ErrMemberNotFound, member.ErrMemberAlreadyExists)
	}
	return count > 0, nil
}
