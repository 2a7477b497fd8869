// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// NewsletterSubscriptionTable represents the 'newsletter_subscriptions' table
type NewsletterSubscriptionTable struct {
	Table     string
	Email     string
	CreatedAt string
}

// NewsletterSubscription is the schema definition for newsletter_subscriptions
var NewsletterSubscription = NewsletterSubscriptionTable{
	Table:     "newsletter_subscriptions",
	Email:     "email",
	CreatedAt: "created_at",
}
