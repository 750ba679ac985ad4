package db

import (
	"fmt"
	"strings"
	"time"

	"jiansou/backend/app/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Path     string
}

func (c Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case "mysql":
		if c.Password == "" {
			return nil, fmt.Errorf("mysql password is required")
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", c.User, c.Password, c.Host, c.Port, c.DBName)
		return mysql.Open(dsn), nil
	case "sqlite", "":
		// foreign keys are off by default in sqlite; cascades depend on them
		sep := "?"
		if strings.Contains(c.Path, "?") {
			sep = "&"
		}
		return sqlite.Open(c.Path + sep + "_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", c.Driver)
	}
}

func Connect(cfg Config) (*gorm.DB, error) {
	dial, err := cfg.dialector()
	if err != nil {
		return nil, err
	}
	gdb, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "mysql" {
		sqlDB.SetMaxOpenConns(30)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}
	return gdb, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
