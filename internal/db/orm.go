package db

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

// InitORM opens the GORM connection. DB_DRIVER=sqlite switches to a local
// file database (SQLITE_PATH, default registry.db) for development; anything
// else connects to Postgres with the given DSN.
func InitORM(dsn string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "registry.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		PgDB = db
		log.Println("Connected to SQLite via GORM")
		return db, nil
	}

	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	log.Println("Connected to Postgres via GORM")
	return db, nil
}
