// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import "context"

// Repository persists archive submissions.
type Repository interface {
	Create(context context.Context, submission *Submission) error
}
