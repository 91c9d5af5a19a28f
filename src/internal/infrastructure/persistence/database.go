package persistence

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 開啟 SQLite 資料庫並遷移所有資料表
//
// dsn 例：file:workspace_hub?mode=memory&cache=shared
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 建立或更新資料表
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&WorkspaceModel{},
		&TaskModel{},
		&QCCheckModel{},
		&IssueModel{},
		&MemberModel{},
		&EventRecordModel{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// Close 關閉底層連線
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
