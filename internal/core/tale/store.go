// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tale

import "context"

// # Data Access

// Repository defines read access to tales.
type Repository interface {

	/*
		List returns tales newest first.

		Parameters:
		  - context: context.Context
		  - limit: int (0 means unrestricted)

		Returns:
		  - []*Tale: Possibly empty, never nil
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit int) ([]*Tale, error)

	/*
		FindByID returns one tale.

		Returns:
		  - error: apperr.NotFound("Tale") when no row matches
	*/
	FindByID(context context.Context, id string) (*Tale, error)
}

// Cache stores tale details by ID.
//
// Get reports a miss as (nil, nil). Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(context context.Context, id string) (*Tale, error)
	Set(context context.Context, tale *Tale) error
}
