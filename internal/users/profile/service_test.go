// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quartoselo/internal/memdb"
	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/users/profile"
	"github.com/taibuivan/quartoselo/pkg/uuid"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestGetProfile_MissingRowYieldsEmptyProfile(t *testing.T) {
	service := profile.NewService(memdb.New().Profiles(), discard)
	id := uuid.New()

	got, err := service.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, &profile.Profile{ID: id}, got)
}

func TestGetProfile_Anonymous(t *testing.T) {
	service := profile.NewService(memdb.New().Profiles(), discard)
	_, err := service.GetProfile(context.Background(), "")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestUpdateProfile_WritesAllFields(t *testing.T) {
	store := memdb.New()
	service := profile.NewService(store.Profiles(), discard)
	id := uuid.New()
	store.SeedProfile(profile.Profile{ID: id, Username: "antigo", FullName: "Nome", Bio: "bio", AvatarURL: "https://a.example/x.png"})

	updated, err := service.UpdateProfile(context.Background(), id, profile.UpdateInput{
		Username: "  nova  ",
		Bio:      "Colecionadora de lendas.",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)

	got, err := service.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "nova", got.Username)
	assert.Equal(t, "Colecionadora de lendas.", got.Bio)
	assert.Empty(t, got.FullName)
	assert.Empty(t, got.AvatarURL)
}

func TestUpdateProfile_OverlongBioLeavesStoredValue(t *testing.T) {
	store := memdb.New()
	service := profile.NewService(store.Profiles(), discard)
	id := uuid.New()
	store.SeedProfile(profile.Profile{ID: id, Username: "leitora", Bio: "original"})

	_, err := service.UpdateProfile(context.Background(), id, profile.UpdateInput{
		Username: "leitora",
		Bio:      strings.Repeat("b", profile.MaxBioLength+1),
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Equal(t, profile.FieldBio, appErr.Details[0].Field)

	got, err := service.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Bio)
}

func TestUpdateProfile_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input profile.UpdateInput
		field string
	}{
		{"bio at limit", profile.UpdateInput{Bio: strings.Repeat("é", profile.MaxBioLength)}, ""},
		{"bio over limit", profile.UpdateInput{Bio: strings.Repeat("é", profile.MaxBioLength+1)}, profile.FieldBio},
		{"relative avatar", profile.UpdateInput{AvatarURL: "/me.png"}, profile.FieldAvatarURL},
		{"ftp avatar", profile.UpdateInput{AvatarURL: "ftp://x.example/me.png"}, profile.FieldAvatarURL},
		{"long username", profile.UpdateInput{Username: strings.Repeat("u", profile.MaxUsernameLength+1)}, profile.FieldUsername},
		{"long full name", profile.UpdateInput{FullName: strings.Repeat("n", profile.MaxFullNameLength+1)}, profile.FieldFullName},
		{"everything empty", profile.UpdateInput{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Normalize().Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	store := memdb.New()
	service := profile.NewService(store.Profiles(), discard)
	store.SeedProfile(profile.Profile{ID: uuid.New(), Username: "leitora"})

	_, err := service.UpdateProfile(context.Background(), uuid.New(), profile.UpdateInput{Username: "leitora"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestUpdateProfile_Anonymous(t *testing.T) {
	service := profile.NewService(memdb.New().Profiles(), discard)
	_, err := service.UpdateProfile(context.Background(), "", profile.UpdateInput{Bio: "x"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}
