// Package store is the client-local fallback persistence used when the
// remote schema has no allowance support: a small key-value table in a
// sqlite file, keyed like "weekly_allowance:<userId>".
package store

import (
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"
)

type Local struct {
	conn *sql.DB
}

// OpenLocal opens (or creates) the fallback store at path. Use
// ":memory:" in tests.
func OpenLocal(path string) (*Local, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}
	if _, err := conn.Exec(
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`); err != nil {
		return nil, err
	}
	return &Local{conn: conn}, nil
}

func (l *Local) Get(key string) (string, bool, error) {
	var v string
	err := l.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (l *Local) Set(key, value string) error {
	_, err := l.conn.Exec(
		`INSERT INTO kv(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (l *Local) Delete(key string) error {
	_, err := l.conn.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (l *Local) Close() error { return l.conn.Close() }
