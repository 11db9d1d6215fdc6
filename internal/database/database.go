package database

import (
	"fmt"
	"log"
	"time"

	"transactions-dashboard/internal/config"
	"transactions-dashboard/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.DriverPostgres, "":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.Transaction{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// SeedSampleTransactions inserts the two sample records shown by the first
// version of the dashboard, unless the table already has rows.
func (db *DB) SeedSampleTransactions() error {
	var count int64
	if err := db.DB.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}
	if count > 0 {
		return nil
	}

	samples := SampleTransactions()
	if err := db.DB.Create(&samples).Error; err != nil {
		return fmt.Errorf("failed to seed transactions: %w", err)
	}

	log.Printf("Seeded %d sample transactions", len(samples))
	return nil
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	migrated := false
	if cfg.Database.Driver != config.DriverSQLite {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}

		// SQL migrations with golang-migrate when AUTO_MIGRATE=true
		ran, err := RunMigrationsIfEnabled(sqlDB)
		if err != nil {
			log.Printf("Warning: migration runner failed: %v", err)
			log.Println("Falling back to GORM AutoMigrate...")
		}
		migrated = ran && err == nil
	}

	if !migrated {
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if config.SeedEnabled() {
		if err := db.SeedSampleTransactions(); err != nil {
			log.Printf("Warning: failed to seed transactions: %v", err)
		}
	}

	log.Println("Database initialized successfully")

	return db, nil
}
