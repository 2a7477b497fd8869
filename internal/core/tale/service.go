// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tale

import (
	stdctx "context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/validate"
	"github.com/taibuivan/quartoselo/pkg/uuid"
)

// Service implements the tale read use cases.
type Service struct {
	repository Repository
	cache      Cache
	group      singleflight.Group
	logger     *slog.Logger
}

// NewService constructs a tale service. cache may be nil.
func NewService(repository Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{repository: repository, cache: cache, logger: logger}
}

/*
ListTales returns tales newest first.

Parameters:
  - context: context.Context
  - limit: int (0 for all, positive to cap the result)

Returns:
  - []*Tale: Possibly empty
  - error: Validation or storage failures
*/
func (service *Service) ListTales(context stdctx.Context, limit int) ([]*Tale, error) {
	validator := &validate.Validator{}
	validator.Custom("limit", limit < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tales, err := service.repository.List(context, limit)
	if err != nil {
		return nil, fmt.Errorf("tale_service_list_failed: %w", err)
	}
	return tales, nil
}

/*
GetTale returns one tale, going through the cache when one is configured.

Concurrent misses for the same ID share a single repository read, which
is detached from any one caller's cancellation; each caller still stops
waiting when its own context ends. Cache failures are logged and the read
falls through to the repository.

Returns:
  - error: apperr.NotFound("Tale") for unknown or malformed IDs
*/
func (service *Service) GetTale(context stdctx.Context, id string) (*Tale, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Tale")
	}

	if service.cache != nil {
		cached, err := service.cache.Get(context, id)
		if err != nil {
			service.logger.WarnContext(context, "tale_cache_read_failed", slog.String("tale_id", id), slog.Any("error", err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	shared := stdctx.WithoutCancel(context)
	flight := service.group.DoChan(id, func() (any, error) {
		tale, err := service.repository.FindByID(shared, id)
		if err != nil {
			return nil, err
		}

		if service.cache != nil {
			if err := service.cache.Set(shared, tale); err != nil {
				service.logger.WarnContext(shared, "tale_cache_write_failed", slog.String("tale_id", id), slog.Any("error", err))
			}
		}
		return tale, nil
	})

	var result singleflight.Result
	select {
	case result = <-flight:
	case <-context.Done():
		return nil, context.Err()
	}
	if result.Err != nil {
		return nil, fmt.Errorf("tale_service_get_failed: %w", result.Err)
	}

	return result.Val.(*Tale), nil
}
