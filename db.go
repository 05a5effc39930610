package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    skills_offered JSONB NOT NULL DEFAULT '[]',
    skills_wanted JSONB NOT NULL DEFAULT '[]',
    location_lon DOUBLE PRECISION,
    location_lat DOUBLE PRECISION,
    use_distance_matching BOOLEAN NOT NULL DEFAULT FALSE,
    max_match_distance DOUBLE PRECISION NOT NULL DEFAULT 50,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS skill_embeddings (
    id BIGSERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    skill TEXT NOT NULL,
    embedding vector(1536) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, skill)
);

CREATE INDEX IF NOT EXISTS idx_skill_embeddings_user ON skill_embeddings (user_id);
`

func initDB() *sql.DB {
	// Get database URL from environment variable, fallback to default for development
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = "user=admin password=password dbname=skillswapdb sslmode=disable"
		log.Println("Warning: DATABASE_URL not set, using default connection string")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Error connecting to the database:", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("Cannot reach the database:", err)
	}

	if _, err := db.Exec(schema); err != nil {
		log.Fatal("Error applying schema:", err)
	}
	log.Println("Database connection established successfully")
	return db
}
