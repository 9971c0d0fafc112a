package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"studentresults/internal/config"
)

// Open connects to the database named by cfg.Backend. The memory backend has
// no database and is rejected here.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the %s database: %w", cfg.Backend, err)
	}

	if cfg.Backend == config.BackendSQLite {
		// an in-memory sqlite database exists per connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	case config.BackendPostgres:
		return postgres.Open(PostgresDSN(cfg)), nil
	case config.BackendMySQL:
		return mysql.Open(MySQLDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("backend %q has no database", cfg.Backend)
	}
}

func PostgresDSN(cfg *config.Config) string {
	return "host=" + cfg.DBHost + " user=" + cfg.DBUser + " password=" + cfg.DBPassword + " dbname=" + cfg.DBName + " port=" + cfg.DBPort + " sslmode=disable"
}

func MySQLDSN(cfg *config.Config) string {
	return cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
}
