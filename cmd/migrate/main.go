package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/recipehub/backend/internal/database"
)

func main() {
	rollback := flag.Bool("rollback", false, "Roll back the last migration")
	dir := flag.String("dir", "migrations", "Directory containing SQL migrations")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	if *rollback {
		if err := database.RollbackMigration(db, *dir); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		log.Println("Rolled back last migration")
		return
	}

	if err := database.RunMigrations(db, *dir); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("Database migrations completed")
}
