package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aliskhannn/sermas-study-bot/internal/infra/sqlite"
)

// AppStateKey is the slot the application state is stored under.
const AppStateKey = "sermas_app_state"

var ErrStateNotFound = errors.New("state not found")

// StateRepository is a durable key/value slot backed by SQLite.
type StateRepository struct {
	db *sqlx.DB
	tx *sqlite.Transactor
}

func NewStateRepository(db *sqlx.DB) *StateRepository {
	return &StateRepository{
		db: db,
		tx: sqlite.NewTransactor(db),
	}
}

// Get returns the payload stored under key.
func (r *StateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM app_state WHERE key = ?`

	var value string
	if err := r.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("get state %q: %w", key, err)
	}

	return []byte(value), nil
}

// Put replaces the payload stored under key. Readers see either the old
// or the new payload, never a partial one.
func (r *StateRepository) Put(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT OR REPLACE INTO app_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)`

	err := r.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query, key, string(value))
		return err
	})
	if err != nil {
		return fmt.Errorf("put state %q: %w", key, err)
	}

	return nil
}
