package database

import (
	"context"
	"fmt"
	"time"

	"github.com/unishowcase/server/internal/shared/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// New creates a new database connection.
// Slow queries and errors are written to log. A nil log silences GORM.
func New(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: newGormLogger(cfg, log),
		// Surface unique violations as gorm.ErrDuplicatedKey
		TranslateError: true,
		// Users can be removed while their requests and badges remain
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func newGormLogger(cfg *config.DatabaseConfig, log *zap.Logger) logger.Interface {
	if log == nil {
		return logger.Default.LogMode(logger.Silent)
	}

	threshold := cfg.SlowQueryThreshold
	if threshold <= 0 {
		threshold = defaultSlowQueryThreshold
	}

	// Lookups map not-found to nil results, so it is not worth a log line
	return logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             threshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Ping checks that the database accepts connections.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
