package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"fontpair/internal/providers"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLiteStore writes through to a local SQLite file, so Restore and Persist
// have nothing to do.
type SQLiteStore struct {
	db     *sql.DB
	logger providers.Logger
}

func NewSQLiteStore(path string, logger providers.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Get(key string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Errorf(providers.TypeApp, "sqlite read of %s failed: %s", key, err)
		}
		return nil, false
	}
	return value, true
}

func (s *SQLiteStore) Set(key string, value []byte) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *SQLiteStore) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (s *SQLiteStore) Keys() []string {
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "sqlite key scan failed: %s", err)
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			s.logger.Errorf(providers.TypeApp, "sqlite key scan failed: %s", err)
			return keys
		}
		keys = append(keys, k)
	}
	return keys
}

func (s *SQLiteStore) Restore() error { return nil }
func (s *SQLiteStore) Persist() error { return nil }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
