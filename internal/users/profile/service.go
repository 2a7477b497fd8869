// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/validate"
)

// Service orchestrates profile reads and updates.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a profile service.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
GetProfile returns the caller's profile.

Description: A missing row yields a profile with only the ID set, so a
freshly registered identity can open its profile view.

Parameters:
  - context: context.Context
  - userID: string (the authenticated identity)

Returns:
  - *Profile: Stored or default profile
  - error: Unauthorized (anonymous) or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	profile, err := service.repository.FindByID(context, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return &Profile{ID: userID}, nil
		}
		return nil, fmt.Errorf("profile_service_get_failed: %w", err)
	}
	return profile, nil
}

// UpdateInput carries the four editable fields. All are written.
type UpdateInput struct {
	Username  string
	FullName  string
	Bio       string
	AvatarURL string
}

// Normalize trims and NFC-normalizes every field.
func (input UpdateInput) Normalize() UpdateInput {
	return UpdateInput{
		Username:  validate.Text(input.Username),
		FullName:  validate.Text(input.FullName),
		Bio:       validate.Text(input.Bio),
		AvatarURL: validate.Text(input.AvatarURL),
	}
}

// Validate applies the profile rules to already normalized input.
func (input UpdateInput) Validate() error {
	validator := &validate.Validator{}
	validator.MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		MaxLen(FieldFullName, input.FullName, MaxFullNameLength).
		MaxLen(FieldBio, input.Bio, MaxBioLength).
		URL(FieldAvatarURL, input.AvatarURL)
	return validator.Err()
}

/*
UpdateProfile overwrites the caller's profile.

Description: The record ID always comes from the authenticated identity.
Invalid input is rejected before anything is written.

Returns:
  - *Profile: The stored profile
  - error: Unauthorized, validation, Conflict (username taken) or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateInput) (*Profile, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	profile := &Profile{
		ID:        userID,
		Username:  input.Username,
		FullName:  input.FullName,
		Bio:       input.Bio,
		AvatarURL: input.AvatarURL,
	}

	if err := service.repository.Upsert(context, profile); err != nil {
		return nil, fmt.Errorf("profile_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "profile_updated", slog.String("user_id", userID))

	return profile, nil
}
