// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package newsletter records e-mail subscriptions to new-tale announcements.
package newsletter

import (
	"context"
	"time"
)

// FieldEmail is the only input field.
const FieldEmail = "email"

// Subscription is one subscribed address.
type Subscription struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository stores subscriptions.
type Repository interface {

	/*
		Subscribe inserts the address unless it is already present.
		A duplicate is not an error.
	*/
	Subscribe(context context.Context, subscription *Subscription) error
}
