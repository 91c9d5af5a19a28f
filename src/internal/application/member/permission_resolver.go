package member

import (
	"errors"

	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/member"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	log "github.com/sirupsen/logrus"
)

// PermissionResolver 以成員角色解析 runtime 權限
//
// 擁有者（或未指定使用者）取得全部權限；成員依角色；非成員沒有任何權限。
// 查詢失敗時記錄錯誤並以非成員處理。
func PermissionResolver(repo member.MemberRepository, logger log.FieldLogger) wsapp.PermissionResolver {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return func(d wsapp.Descriptor) workspace.PermissionSet {
		if d.UserID == "" || d.UserID == d.OwnerID {
			return workspace.OwnerPermissions()
		}

		m, err := repo.FindByUser(nil, d.ID, d.UserID)
		if err != nil {
			if !errors.Is(err, member.ErrMemberNotFound) {
				logger.WithFields(log.Fields{
					"workspace_id": d.ID,
					"user_id":      d.UserID,
				}).WithError(err).Error("unable to resolve member permissions")
			}
			return workspace.NewPermissionSet()
		}
		return m.Permissions()
	}
}
