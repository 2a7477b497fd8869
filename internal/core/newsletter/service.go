// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/quartoselo/internal/platform/validate"
)

// Service handles newsletter sign-ups.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a newsletter service.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
Subscribe validates and stores an address. Subscribing twice succeeds.

Returns:
  - *Subscription: The normalized subscription
  - error: Validation or storage errors
*/
func (service *Service) Subscribe(context context.Context, email string) (*Subscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	validator := &validate.Validator{}
	if err := validator.Email(FieldEmail, email).Err(); err != nil {
		return nil, err
	}

	subscription := &Subscription{Email: email, CreatedAt: time.Now().UTC()}
	if err := service.repository.Subscribe(context, subscription); err != nil {
		return nil, fmt.Errorf("newsletter_service_subscribe_failed: %w", err)
	}

	service.logger.InfoContext(context, "newsletter_subscribed")
	return subscription, nil
}
