// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quartoselo/internal/platform/database/schema"
	"github.com/taibuivan/quartoselo/internal/platform/dberr"
	"github.com/taibuivan/quartoselo/pkg/pointer"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL comment repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) ListApproved(context context.Context, taleID string) ([]*PublicComment, error) {
	c, p := schema.Comment, schema.Profile
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       p.%s, COALESCE(p.%s, ''), p.%s
		FROM %s c
		LEFT JOIN %s p ON p.%s = c.%s
		WHERE c.%s = $1 AND c.%s = true
		ORDER BY c.%s DESC, c.%s DESC`,
		c.ID, c.TaleID, c.UserID, c.Content, c.Approved, c.CreatedAt,
		p.ID, p.Username, p.AvatarURL,
		c.Table,
		p.Table, p.ID, c.UserID,
		c.TaleID, c.Approved,
		c.CreatedAt, c.ID,
	)

	rows, err := repository.pool.Query(context, query, taleID)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	defer rows.Close()

	comments := make([]*PublicComment, 0)
	for rows.Next() {
		var (
			item      PublicComment
			approved  bool
			profileID *string
			username  string
			avatarURL *string
		)
		err := rows.Scan(
			&item.ID, &item.TaleID, &item.UserID, &item.Content, &approved, &item.CreatedAt,
			&profileID, &username, &avatarURL,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "Comment")
		}

		item.Status = StatusFromApproved(approved)
		if profileID != nil {
			item.Author = &AuthorSummary{Username: username, AvatarURL: pointer.Val(avatarURL)}
		}
		comments = append(comments, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return comments, nil
}

func (repository *PostgresRepository) ListByAuthor(context context.Context, userID string) ([]*OwnComment, error) {
	c, t := schema.Comment, schema.Tale
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, t.%s
		FROM %s c
		LEFT JOIN %s t ON t.%s = c.%s
		WHERE c.%s = $1
		ORDER BY c.%s DESC, c.%s DESC`,
		c.ID, c.TaleID, c.UserID, c.Content, c.Approved, c.CreatedAt, t.Title,
		c.Table,
		t.Table, t.ID, c.TaleID,
		c.UserID,
		c.CreatedAt, c.ID,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	defer rows.Close()

	comments := make([]*OwnComment, 0)
	for rows.Next() {
		var (
			item     OwnComment
			approved bool
		)
		err := rows.Scan(&item.ID, &item.TaleID, &item.UserID, &item.Content, &approved, &item.CreatedAt, &item.TaleTitle)
		if err != nil {
			return nil, dberr.Wrap(err, "Comment")
		}
		item.Status = StatusFromApproved(approved)
		comments = append(comments, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return comments, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	c := schema.Comment
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.Table, c.ID, c.TaleID, c.UserID, c.Content, c.Approved, c.CreatedAt)

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.TaleID,
		comment.UserID,
		comment.Content,
		comment.Status.Approved(),
		comment.CreatedAt,
	)
	if err != nil {
		return dberr.WrapReference(err, "Comment", map[string]string{
			c.TaleFKey: "Tale",
			c.UserFKey: "Profile",
		})
	}
	return nil
}
