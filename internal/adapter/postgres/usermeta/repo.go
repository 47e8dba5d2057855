// Package usermeta stores per-user settings as key/value rows in PostgreSQL.
package usermeta

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/writeassist-backend/internal/adapter/postgres"
)

const (
	table     = "user_meta"
	colUserID = "user_id"
	colKey    = "meta_key"
	colValue  = "meta_value"
	colUpdate = "updated_at"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo is the user_meta repository. Writes are last-write-wins.
type Repo struct {
	db postgres.Querier
}

// New creates a new user_meta repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Get returns the value stored under key, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, key string) (string, error) {
	sql, args, err := psql.
		Select(colValue).
		From(table).
		Where(squirrel.Eq{colUserID: userID}).
		Where(squirrel.Eq{colKey: key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build user_meta get: %w", err)
	}

	var value string
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&value)
	if err != nil {
		return "", postgres.MapError(err, fmt.Sprintf("user_meta %s %s", userID, key))
	}
	return value, nil
}

// GetMany returns the values stored under keys. Missing keys are absent from the map.
func (r *Repo) GetMany(ctx context.Context, userID uuid.UUID, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	sql, args, err := psql.
		Select(colKey, colValue).
		From(table).
		Where(squirrel.Eq{colUserID: userID}).
		Where(squirrel.Eq{colKey: keys}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user_meta get many: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, fmt.Sprintf("user_meta %s", userID))
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, postgres.MapError(err, fmt.Sprintf("user_meta %s scan", userID))
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, fmt.Sprintf("user_meta %s rows", userID))
	}

	return out, nil
}

// Set upserts value under key.
func (r *Repo) Set(ctx context.Context, userID uuid.UUID, key, value string) error {
	sql, args, err := psql.
		Insert(table).
		Columns(colUserID, colKey, colValue, colUpdate).
		Values(userID, key, value, squirrel.Expr("now()")).
		Suffix("ON CONFLICT (user_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build user_meta set: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, fmt.Sprintf("user_meta %s %s", userID, key))
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, key string) error {
	sql, args, err := psql.
		Delete(table).
		Where(squirrel.Eq{colUserID: userID}).
		Where(squirrel.Eq{colKey: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build user_meta delete: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, fmt.Sprintf("user_meta %s %s", userID, key))
	}
	return nil
}
