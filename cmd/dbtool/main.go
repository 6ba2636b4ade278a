package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"strings"
	"trip-route-service/internal/config"
	"trip-route-service/internal/platform/db"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
)

// dbtool applies the route cache schema to the configured database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := flag.String("database-url", config.Get("DATABASE_URL", ""), "Postgres connection string")
	dbPath := flag.String("db-path", config.Get("DB_PATH", ""), "SQLite database file")
	flag.Parse()

	var (
		conn    *sql.DB
		dialect goose.Dialect
		err     error
	)
	switch {
	case strings.TrimSpace(*databaseURL) != "":
		conn, err = db.Open(*databaseURL)
		dialect = goose.DialectPostgres
	case strings.TrimSpace(*dbPath) != "":
		conn, err = db.OpenSQLite(*dbPath)
		dialect = goose.DialectSQLite3
	default:
		log.Fatal("DATABASE_URL or DB_PATH is required")
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Applying route cache migrations...")
	if err := db.Migrate(context.Background(), conn, dialect); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("Schema ready.")
}
