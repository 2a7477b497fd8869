// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tale

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quartoselo/internal/platform/database/schema"
	"github.com/taibuivan/quartoselo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL tale repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectTale = fmt.Sprintf(`SELECT %s FROM %s`,
	strings.Join(schema.Tale.Columns(), ", "), schema.Tale.Table)

func (repository *PostgresRepository) List(context context.Context, limit int) ([]*Tale, error) {
	var builder strings.Builder
	builder.WriteString(selectTale)
	fmt.Fprintf(&builder, ` ORDER BY %s DESC, %s DESC`, schema.Tale.CreatedAt, schema.Tale.ID)

	args := []any{}
	if limit > 0 {
		builder.WriteString(` LIMIT $1`)
		args = append(args, limit)
	}

	rows, err := repository.pool.Query(context, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Tale")
	}
	defer rows.Close()

	tales := make([]*Tale, 0)
	for rows.Next() {
		tale, err := scanTale(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Tale")
		}
		tales = append(tales, tale)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Tale")
	}

	return tales, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Tale, error) {
	query := selectTale + fmt.Sprintf(` WHERE %s = $1`, schema.Tale.ID)

	tale, err := scanTale(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Tale")
	}
	return tale, nil
}

func scanTale(row pgx.Row) (*Tale, error) {
	tale := &Tale{}
	err := row.Scan(
		&tale.ID,
		&tale.Title,
		&tale.Content,
		&tale.Location,
		&tale.Year,
		&tale.Interviewee,
		&tale.Images,
		&tale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tale.Images == nil {
		tale.Images = []string{}
	}
	return tale, nil
}
