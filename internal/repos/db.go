package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Demo users so the watchlist sweep has someone to alert
	// (idempotent; safe to run every start).
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_login TEXT,
  is_active INTEGER NOT NULL DEFAULT 1
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Search log (feeds trending)
CREATE TABLE IF NOT EXISTS searches(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  query TEXT NOT NULL,
  results_count INTEGER NOT NULL DEFAULT 0,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  searched_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_searches_query ON searches(LOWER(query));
CREATE INDEX IF NOT EXISTS idx_searches_at    ON searches(searched_at);

-- Watchlist
CREATE TABLE IF NOT EXISTS watchlist(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  current_price INTEGER NOT NULL CHECK (current_price >= 0),
  target_price INTEGER NOT NULL CHECK (target_price >= 0),
  added_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_checked TEXT,
  is_active INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_watchlist_user   ON watchlist(user_id);
CREATE INDEX IF NOT EXISTS idx_watchlist_active ON watchlist(is_active);
CREATE UNIQUE INDEX IF NOT EXISTS idx_watchlist_user_product
  ON watchlist(user_id, LOWER(product_name));

-- Price history (lowest observed price per search)
CREATE TABLE IF NOT EXISTS price_history(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_name TEXT NOT NULL,
  price INTEGER NOT NULL CHECK (price >= 0),
  platform TEXT,
  recorded_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_history_product ON price_history(LOWER(product_name), recorded_at);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures a demo account exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo user")
	h, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
	_, err := db.Exec(`
		INSERT INTO users(id,email,name,password_hash)
		VALUES('u-demo','demo@pricesmart.test','Demo',?)
		ON CONFLICT(email) DO NOTHING
	`, string(h))
	return err
}
