package database

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rorfeny/workhours-api/pkg/models"
)

// InitDB opens the shift store and migrates the schema. With DATABASE_URL set
// it connects to Postgres and refuses to start if the server is unreachable:
// a silent fallback to sqlite once sent production writes to a throwaway
// local file, so an unreachable configured backend is fatal here. Without
// DATABASE_URL it opens the embedded sqlite file at DATA_PATH.
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
		if err != nil {
			log.Fatalf("DATABASE_URL is set but unusable: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("failed to unwrap database handle: %v", err)
		}
		if err := sqlDB.Ping(); err != nil {
			log.Fatalf("DATABASE_URL is set but the server is unreachable: %v", err)
		}
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "workhours.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
	}

	if err := db.AutoMigrate(&models.Shift{}); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}
