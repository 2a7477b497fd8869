// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/database/schema"
	"github.com/taibuivan/quartoselo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Profile, error) {
	p := schema.Profile
	query := fmt.Sprintf(`SELECT %s, COALESCE(%s, ''), %s, %s, %s, %s FROM %s WHERE %s = $1`,
		p.ID, p.Username, p.FullName, p.Bio, p.AvatarURL, p.UpdatedAt, p.Table, p.ID)

	profile := &Profile{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&profile.ID,
		&profile.Username,
		&profile.FullName,
		&profile.Bio,
		&profile.AvatarURL,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Profile")
	}
	return profile, nil
}

func (repository *PostgresRepository) Upsert(context context.Context, profile *Profile) error {
	return upsert(context, repository.pool, profile)
}

// UpsertTx writes profile inside a caller-owned transaction.
func UpsertTx(context context.Context, tx pgx.Tx, profile *Profile) error {
	return upsert(context, tx, profile)
}

type execer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func upsert(context context.Context, db execer, profile *Profile) error {
	p := schema.Profile
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, now())
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = now()
		RETURNING %s`,
		p.Table, p.ID, p.Username, p.FullName, p.Bio, p.AvatarURL, p.UpdatedAt,
		p.ID,
		p.Username, p.Username,
		p.FullName, p.FullName,
		p.Bio, p.Bio,
		p.AvatarURL, p.AvatarURL,
		p.UpdatedAt,
		p.UpdatedAt,
	)

	err := db.QueryRow(context, query,
		profile.ID,
		strings.TrimSpace(profile.Username),
		profile.FullName,
		profile.Bio,
		profile.AvatarURL,
	).Scan(&profile.UpdatedAt)

	if dberr.IsUniqueViolation(err, p.UsernameKey) {
		return apperr.Conflict("Username is already taken")
	}
	if err != nil {
		return dberr.Wrap(err, "Account")
	}
	return nil
}
