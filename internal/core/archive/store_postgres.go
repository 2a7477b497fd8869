// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quartoselo/internal/platform/database/schema"
	"github.com/taibuivan/quartoselo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL archive repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, submission *Submission) error {
	s := schema.ArchiveSubmission
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.Table, strings.Join(s.Columns(), ", "))

	_, err := repository.pool.Exec(context, query,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Title,
		submission.Location,
		submission.Interviewee,
		submission.Story,
		submission.AttachmentKey,
		submission.AttachmentType,
		submission.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Archive submission")
	}
	return nil
}
