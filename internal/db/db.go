// Package db opens the database and keeps its schema current. The DSN picks
// the driver: postgres URLs go to the postgres driver, everything else is
// treated as a sqlite file path.
package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/exportdocs/internal/models"
)

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// ConnectAndMigrate opens the configured database and brings the schema up
// to date. With MIGRATIONS=1 the SQL files under ./migrations run via
// golang-migrate; otherwise AutoMigrate keeps dev setups working.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("database DSN is empty")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	if isPostgresDSN(dsn) {
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			log.Println("retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates or updates every table of the document pipeline.
func AutoMigrate(db *gorm.DB) error {
	toMigrate := []any{
		&models.Company{}, &models.Client{}, &models.Contact{},
		&models.Product{}, &models.ProductEquivalence{}, &models.ClientProductLink{},
		&models.ClientDocumentNote{}, &models.DocumentTemplate{},
		&models.DocumentVersion{}, &models.DocumentVersionField{},
	}
	for _, m := range toMigrate {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

func runSQLMigrations(dsn string) error {
	source := dsn
	if !isPostgresDSN(source) {
		source = "sqlite3://" + source
	}
	m, err := migrate.New("file://migrations", source)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
