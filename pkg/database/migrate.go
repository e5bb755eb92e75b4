package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 启动时将数据库结构升级到最新版本
// 迁移脚本编译期内嵌，部署时无需携带 SQL 文件
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载内嵌迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	err = m.Up()
	switch {
	case err == nil:
		version, _, _ := m.Version()
		logger.Info("数据库结构已升级", zap.Uint("version", version))
	case errors.Is(err, migrate.ErrNoChange):
		version, dirty, _ := m.Version()
		if dirty {
			logger.Warn("数据库迁移处于 dirty 状态，需人工介入", zap.Uint("version", version))
		} else {
			logger.Info("数据库结构已是最新", zap.Uint("version", version))
		}
	default:
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	return nil
}
