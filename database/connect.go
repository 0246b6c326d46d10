// file: database/connect.go
package database

import (
	"log"
	"time"

	"github.com/bytehatacademy/alien-recon-portal/config"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	var err error
	// TranslateError 开启后，唯一键冲突会被翻译为 gorm.ErrDuplicatedKey，
	// 通关记录的并发判重依赖它
	DB, err = gorm.Open(mysql.Open(config.App.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	// 避免 MySQL wait_timeout 导致的失效连接。
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

// MigrateTables 自动建表，生产环境建议改用迁移脚本
func MigrateTables() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Mission{},
		&models.Hint{},
		&models.MissionCompletion{},
		&models.Activity{},
		&models.SubmissionLog{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
