package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL,
		product_name TEXT NOT NULL,
		item_type TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		is_public BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_products_owner_created
		ON products (username, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_products_natural_key
		ON products (username, product_name, item_type);

	CREATE TABLE IF NOT EXISTS activity (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		username TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_activity_created ON activity (created_at);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
