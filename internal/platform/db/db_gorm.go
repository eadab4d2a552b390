// Package db opens the relational store, runs migrations and scopes transactions.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"task_backend/config"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
	userentity "task_backend/internal/feature/users/domain/entity"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

const memoryPath = ":memory:"

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN returns the driver-specific data source name for cfg.
// SQLite always runs with foreign keys enabled so task rows follow their owner on delete.
func BuildDSN(cfg config.DB) string {
	if cfg.Driver == config.DriverPostgres {
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
	}
	return cfg.Path + "?_foreign_keys=on&_busy_timeout=5000"
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, errors.Wrapf(err, "db connect failed after %s", timeout)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects to the store described by cfg, registers read replicas and,
// when cfg.Migrate is set, migrates the schema.
func Open(cfg config.DB, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		// Driver errors are translated so duplicates surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         newGormSlogLogger(logger, cfg.Debug),
	}

	opener := func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialector(cfg.Driver, dsn), gormCfg)
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == config.DriverSQLite && cfg.Path == memoryPath {
		// Every connection to :memory: is a separate database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "get sql.DB failed")
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := useReplicas(db, cfg); err != nil {
		return nil, err
	}

	if cfg.Migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates the users and tasks tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userentity.User{}, &taskentity.Task{}); err != nil {
		return errors.Wrap(err, "failed to migrate")
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB failed")
	}
	return sqlDB.Close()
}

// Pinger checks that the database answers.
type Pinger struct {
	db *gorm.DB
}

func NewPinger(db *gorm.DB) *Pinger {
	return &Pinger{db: db}
}

// Ping reports an error when the database cannot be reached.
func (p *Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB failed")
	}
	return sqlDB.PingContext(ctx)
}

func dialector(driver, dsn string) gorm.Dialector {
	if driver == config.DriverPostgres {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// useReplicas routes reads outside transactions to the configured postgres replicas.
func useReplicas(db *gorm.DB, cfg config.DB) error {
	if cfg.Driver != config.DriverPostgres || len(cfg.Replicas) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
	for _, dsn := range cfg.Replicas {
		replicas = append(replicas, postgres.Open(dsn))
	}
	if err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	})); err != nil {
		return errors.Wrap(err, "register read replicas failed")
	}
	return nil
}
