// Package sqlite implements the durable credential store on SQLite.
// Two logical keys are held between runs: the bearer token and the
// serialized user profile.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"taskflow/internal/domain"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed schema/*.sql
var embedMigrations embed.FS

const (
	keyToken = "token"
	keyUser  = "user"
)

// Store wraps a *sql.DB and implements domain.CredentialStore.
type Store struct {
	sql *sql.DB
}

var _ domain.CredentialStore = (*Store)(nil)

// Open creates the data directory if needed, opens the database file
// and applies migrations.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	path := filepath.Join(dataDir, "taskflow.db")
	s, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.SetMaxOpenConns(1)

	if err := migrate(s); err != nil {
		_ = s.Close()
		return nil, err
	}
	return &Store{sql: s}, nil
}

func migrate(s *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(s, "schema"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (st *Store) Close() error {
	return st.sql.Close()
}

// Load reads the stored session. It returns nil when either key is
// missing: a partial pair cannot authenticate and is treated as absent.
func (st *Store) Load(ctx context.Context) (*domain.StoredSession, error) {
	token, ok, err := st.value(ctx, keyToken)
	if err != nil || !ok {
		return nil, err
	}
	raw, ok, err := st.value(ctx, keyUser)
	if err != nil || !ok {
		return nil, err
	}

	var user domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode stored profile: %w", err)
	}
	return &domain.StoredSession{Token: token, User: user}, nil
}

// Save writes the token/profile pair, replacing any previous session.
func (st *Store) Save(ctx context.Context, session domain.StoredSession) error {
	raw, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	tx, err := st.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `INSERT INTO credentials(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`
	if _, err := tx.ExecContext(ctx, upsert, keyToken, session.Token); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsert, keyUser, string(raw)); err != nil {
		return err
	}
	return tx.Commit()
}

// Clear removes both keys.
func (st *Store) Clear(ctx context.Context) error {
	_, err := st.sql.ExecContext(ctx,
		`DELETE FROM credentials WHERE key IN (?, ?);`, keyToken, keyUser)
	return err
}

func (st *Store) value(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := st.sql.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?;`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
