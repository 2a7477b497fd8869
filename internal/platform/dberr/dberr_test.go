// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"no rows", pgx.ErrNoRows, apperr.CodeNotFound, http.StatusNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound, http.StatusNotFound},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeNotFound, http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict, http.StatusConflict},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "profiles_bio_length"}, apperr.CodeValidation, http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperr.As(dberr.Wrap(tt.err, "Tale"))
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
		})
	}
}

func TestWrap_NilAndPassthrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Tale"))

	original := apperr.Unauthorized("Sign in first")
	assert.Same(t, original, apperr.As(dberr.Wrap(original, "Tale")))
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "profiles_username_key"})

	assert.True(t, dberr.IsUniqueViolation(err, ""))
	assert.True(t, dberr.IsUniqueViolation(err, "profiles_username_key"))
	assert.False(t, dberr.IsUniqueViolation(err, "accounts_email_key"))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom"), ""))
}

func TestWrapReference(t *testing.T) {
	references := map[string]string{
		"comments_tale_id_fkey": "Tale",
		"comments_user_id_fkey": "Profile",
	}

	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{"tale reference", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "comments_tale_id_fkey"}, apperr.CodeNotFound, "Tale not found"},
		{"profile reference", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "comments_user_id_fkey"}, apperr.CodeNotFound, "Profile not found"},
		{"unlisted reference", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "other_fkey"}, apperr.CodeNotFound, "Comment not found"},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "comments_pkey"}, apperr.CodeConflict, "Comment already exists"},
		{"unknown", errors.New("connection reset"), apperr.CodeInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperr.As(dberr.WrapReference(fmt.Errorf("insert: %w", tt.err), "Comment", references))
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, appErr.Message)
			}
		})
	}

	assert.NoError(t, dberr.WrapReference(nil, "Comment", references))
}
