// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/database/schema"
	"github.com/taibuivan/quartoselo/internal/platform/dberr"
	"github.com/taibuivan/quartoselo/internal/platform/postgres"
	"github.com/taibuivan/quartoselo/internal/users/profile"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
Create inserts the account and its profile in one transaction.

Description: The profile row is written through the profile package so both
tables stay in step; a taken username rolls the account back.
*/
func (repository *PostgresAccountRepository) Create(context context.Context, account *Account, username string) error {
	a := schema.Account
	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		a.Table, a.ID, a.Email, a.PasswordHash, a.Role, a.CreatedAt)

	return postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(context, insert,
			account.ID,
			account.Email,
			account.PasswordHash,
			account.Role,
			account.CreatedAt,
		)
		if dberr.IsUniqueViolation(err, a.EmailKey) {
			return apperr.Conflict("Email is already registered")
		}
		if err != nil {
			return dberr.Wrap(err, "Account")
		}

		return profile.UpsertTx(context, tx, &profile.Profile{ID: account.ID, Username: username})
	})
}

func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	return repository.findBy(context, schema.Account.Email, email)
}

func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	return repository.findBy(context, schema.Account.ID, id)
}

func (repository *PostgresAccountRepository) findBy(context context.Context, column, value string) (*Account, error) {
	a, p := schema.Account, schema.Profile
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s, COALESCE(p.%s, '')
		FROM %s a
		LEFT JOIN %s p ON p.%s = a.%s
		WHERE a.%s = $1`,
		a.ID, a.Email, a.PasswordHash, a.Role, a.CreatedAt, p.Username,
		a.Table,
		p.Table, p.ID, a.ID,
		column,
	)

	account := &Account{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&account.Username,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}
	return account, nil
}
