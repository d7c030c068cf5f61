package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// KVRepo is the key/value store every tracker collection is persisted in.
// Values are whole JSON documents; writes overwrite, last writer wins.
type KVRepo struct {
	db *sql.DB
	q  querier
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db, q: db}
}

func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, now)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Entry returns the full row for key, or nil when the key is absent.
func (r *KVRepo) Entry(ctx context.Context, key string) (*Entry, error) {
	row := r.q.QueryRowContext(ctx, `SELECT key, value, updated_at FROM kv WHERE key = ?`, key)
	var (
		e       Entry
		updated sql.NullString
	)
	if err := row.Scan(&e.Key, &e.Value, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("kv entry %q: %w", key, err)
	}
	if updated.Valid {
		if t, err := time.Parse(time.RFC3339, updated.String); err == nil {
			e.UpdatedAt = &t
		}
	}
	return &e, nil
}

// Keys lists every key starting with prefix in ascending order.
func (r *KVRepo) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT key FROM kv
		WHERE key LIKE ? ESCAPE '\'
		ORDER BY key ASC
	`, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("kv keys: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv keys scan: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv keys rows: %w", err)
	}
	return out, nil
}

// LatestBefore returns the greatest key that starts with prefix and sorts
// strictly before bound, together with its value.
func (r *KVRepo) LatestBefore(ctx context.Context, prefix, bound string) (string, string, bool, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT key, value FROM kv
		WHERE key LIKE ? ESCAPE '\' AND key < ?
		ORDER BY key DESC
		LIMIT 1
	`, escapeLike(prefix)+"%", bound)
	var key, value string
	if err := row.Scan(&key, &value); err != nil {
		if err == sql.ErrNoRows {
			return "", "", false, nil
		}
		return "", "", false, fmt.Errorf("kv latest before %q: %w", bound, err)
	}
	return key, value, true, nil
}

// Batch runs fn against a repo bound to a single transaction, so either every
// write inside fn lands or none does.
func (r *KVRepo) Batch(ctx context.Context, fn func(kv *KVRepo) error) error {
	if r.db == nil {
		// Already inside a transaction.
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("kv batch begin: %w", err)
	}
	if err := fn(&KVRepo{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("kv batch commit: %w", err)
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
