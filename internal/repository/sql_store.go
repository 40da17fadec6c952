package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type dialect struct {
	name     string
	get      string
	upsert   string
	delete   string
	byPrefix string
	mget     func(keys []string) (string, []any)
}

var postgresDialect = dialect{
	name: "postgres",
	get:  `SELECT value FROM kv_store WHERE key = $1`,
	upsert: `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
	         ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
	delete:   `DELETE FROM kv_store WHERE key = $1`,
	byPrefix: `SELECT key, value FROM kv_store WHERE left(key, length($1::text)) = $1::text ORDER BY key`,
	mget: func(keys []string) (string, []any) {
		return `SELECT key, value FROM kv_store WHERE key = ANY($1)`, []any{pq.Array(keys)}
	},
}

var sqliteDialect = dialect{
	name: "sqlite",
	get:  `SELECT value FROM kv_store WHERE key = ?`,
	upsert: `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	         ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	delete:   `DELETE FROM kv_store WHERE key = ?`,
	byPrefix: `SELECT key, value FROM kv_store WHERE substr(key, 1, length(?1)) = ?1 ORDER BY key`,
	mget: func(keys []string) (string, []any) {
		args := make([]any, len(keys))
		for i, k := range keys {
			args[i] = k
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
		return `SELECT key, value FROM kv_store WHERE key IN (` + placeholders + `)`, args
	},
}

// SQLStore keeps records in a single kv_store table. The Postgres flavour
// stores values as JSONB, the SQLite one as TEXT.
type SQLStore struct {
	db *sql.DB
	d  dialect
}

func NewPostgresStore(cred *Credentials) (*SQLStore, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &SQLStore{db: db, d: postgresDialect}, nil
}

func NewSQLiteStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// a single writer avoids SQLITE_BUSY under concurrent SetMany calls
	db.SetMaxOpenConns(1)
	return &SQLStore{db: db, d: sqliteDialect}, nil
}

func (s *SQLStore) RunMigrations() error {
	return runMigrations(s.db, s.d.name)
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.d.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.d.upsert, key, string(value)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) SetMany(ctx context.Context, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, s.d.upsert)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Key, string(e.Value)); err != nil {
			return fmt.Errorf("set %s: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.d.delete, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) GetByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, s.d.byPrefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("query prefix %s: %w", prefix, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *SQLStore) MGet(ctx context.Context, keys ...string) ([]Entry, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	query, args := s.d.mget(keys)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	found := make(map[string][]byte, len(entries))
	for _, e := range entries {
		found[e.Key] = e.Value
	}
	return orderByKeys(keys, found), nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}
