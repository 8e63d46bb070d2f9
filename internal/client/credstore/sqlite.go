// Package credstore persists the active credential for the lifetime of the
// browsing context. It is the client's analog of session storage: one row
// per key in a local sqlite database, cleared on logout. A second process
// clearing the store is how external revocation becomes observable here.
package credstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/nishant0207/online-filesharing/internal/dbx"
)

const (
	keyIdentity = "identity"
	keyToken    = "token"
)

// Store is a sqlite-backed credential store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS credentials (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing credential store: %w", err)
	}
	return &Store{db: db}, nil
}

// Save stores identity and token together; either both land or neither.
func (s *Store) Save(ctx context.Context, identity, token string) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range map[string]string{keyIdentity: identity, keyToken: token} {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO credentials (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, k, v)
			if err != nil {
				return fmt.Errorf("failed to save credentials[%s]: %w", k, err)
			}
		}
		return nil
	})
}

// Load returns the stored identity and token. Missing rows come back as
// empty strings, not errors.
func (s *Store) Load(ctx context.Context) (identity, token string, err error) {
	identity, err = s.get(ctx, keyIdentity)
	if err != nil {
		return "", "", err
	}
	token, err = s.get(ctx, keyToken)
	if err != nil {
		return "", "", err
	}
	return identity, token, nil
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

// Clear removes everything. Used on logout and revocation.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
