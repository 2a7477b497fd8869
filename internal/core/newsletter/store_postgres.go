// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package newsletter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quartoselo/internal/platform/database/schema"
	"github.com/taibuivan/quartoselo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL newsletter repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Subscribe(context context.Context, subscription *Subscription) error {
	n := schema.NewsletterSubscription
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT (%s) DO NOTHING`,
		n.Table, n.Email, n.CreatedAt, n.Email)

	if _, err := repository.pool.Exec(context, query, subscription.Email, subscription.CreatedAt); err != nil {
		return dberr.Wrap(err, "Subscription")
	}
	return nil
}
