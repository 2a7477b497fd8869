// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tale_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quartoselo/internal/core/tale"
	"github.com/taibuivan/quartoselo/internal/memdb"
	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/pkg/uuid"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func seedTales(t *testing.T, store *memdb.Store, n int) []*tale.Tale {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seeded := make([]*tale.Tale, 0, n)
	for i := 0; i < n; i++ {
		seeded = append(seeded, store.SeedTale(tale.Tale{
			Title:     "Lenda " + string(rune('A'+i)),
			Content:   "Era uma vez",
			Location:  "Ouro Preto",
			Year:      1900 + i,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	return seeded
}

func TestListTales_NewestFirst(t *testing.T) {
	store := memdb.New()
	seeded := seedTales(t, store, 5)
	service := tale.NewService(store.Tales(), nil, discard)

	tales, err := service.ListTales(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, tales, 5)

	for i, got := range tales {
		assert.Equal(t, seeded[len(seeded)-1-i].ID, got.ID)
	}
}

func TestListTales_FeaturedIsPrefixOfAll(t *testing.T) {
	store := memdb.New()
	seedTales(t, store, 5)
	service := tale.NewService(store.Tales(), nil, discard)

	all, err := service.ListTales(context.Background(), 0)
	require.NoError(t, err)
	featured, err := service.ListTales(context.Background(), tale.FeaturedLimit)
	require.NoError(t, err)

	assert.Equal(t, all[:tale.FeaturedLimit], featured)
}

func TestListTales_Edges(t *testing.T) {
	tests := []struct {
		name    string
		seed    int
		limit   int
		want    int
		invalid bool
	}{
		{"empty store", 0, 0, 0, false},
		{"limit above count", 2, 3, 2, false},
		{"limit below count", 4, 3, 3, false},
		{"negative limit", 2, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memdb.New()
			seedTales(t, store, tt.seed)
			service := tale.NewService(store.Tales(), nil, discard)

			tales, err := service.ListTales(context.Background(), tt.limit)
			if tt.invalid {
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, tales)
			assert.Len(t, tales, tt.want)
		})
	}
}

func TestGetTale(t *testing.T) {
	store := memdb.New()
	seeded := seedTales(t, store, 1)[0]
	service := tale.NewService(store.Tales(), nil, discard)

	got, err := service.GetTale(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded, got)

	for _, id := range []string{uuid.New(), "not-a-uuid", ""} {
		_, err := service.GetTale(context.Background(), id)
		assert.True(t, apperr.IsNotFound(err), id)
	}
}

type countingRepository struct {
	*memdb.TaleRepository
	mu    sync.Mutex
	finds int
}

func (repository *countingRepository) FindByID(ctx context.Context, id string) (*tale.Tale, error) {
	repository.mu.Lock()
	repository.finds++
	repository.mu.Unlock()
	return repository.TaleRepository.FindByID(ctx, id)
}

type mapCache struct {
	mu     sync.Mutex
	items  map[string]*tale.Tale
	getErr error
}

func (cache *mapCache) Get(_ context.Context, id string) (*tale.Tale, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.getErr != nil {
		return nil, cache.getErr
	}
	return cache.items[id], nil
}

func (cache *mapCache) Set(_ context.Context, item *tale.Tale) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.items[item.ID] = item
	return nil
}

func TestGetTale_ReadThroughCache(t *testing.T) {
	store := memdb.New()
	seeded := seedTales(t, store, 1)[0]
	repository := &countingRepository{TaleRepository: store.Tales()}
	cache := &mapCache{items: map[string]*tale.Tale{}}
	service := tale.NewService(repository, cache, discard)

	for i := 0; i < 3; i++ {
		got, err := service.GetTale(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, got.ID)
	}

	assert.Equal(t, 1, repository.finds)
	assert.Contains(t, cache.items, seeded.ID)
}

func TestGetTale_CacheFailureFallsThrough(t *testing.T) {
	store := memdb.New()
	seeded := seedTales(t, store, 1)[0]
	cache := &mapCache{items: map[string]*tale.Tale{}, getErr: errors.New("redis down")}
	service := tale.NewService(store.Tales(), cache, discard)

	got, err := service.GetTale(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)
}

func TestGetTale_MissIsNotCached(t *testing.T) {
	store := memdb.New()
	cache := &mapCache{items: map[string]*tale.Tale{}}
	service := tale.NewService(store.Tales(), cache, discard)

	_, err := service.GetTale(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, cache.items)
}

// gatedRepository holds reads until release is closed and honours the
// context it is given while waiting.
type gatedRepository struct {
	*memdb.TaleRepository
	entered chan struct{}
	release chan struct{}

	mu    sync.Mutex
	finds int
}

func (repository *gatedRepository) FindByID(ctx context.Context, id string) (*tale.Tale, error) {
	repository.mu.Lock()
	repository.finds++
	repository.mu.Unlock()

	repository.entered <- struct{}{}
	select {
	case <-repository.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return repository.TaleRepository.FindByID(ctx, id)
}

func TestGetTale_CancelledCallerDoesNotFailSharedRead(t *testing.T) {
	store := memdb.New()
	seeded := seedTales(t, store, 1)[0]
	repo := &gatedRepository{
		TaleRepository: store.Tales(),
		entered:        make(chan struct{}, 1),
		release:        make(chan struct{}),
	}
	service := tale.NewService(repo, nil, discard)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := service.GetTale(firstCtx, seeded.ID)
		firstErr <- err
	}()
	<-repo.entered

	type outcome struct {
		tale *tale.Tale
		err  error
	}
	second := make(chan outcome, 1)
	go func() {
		got, err := service.GetTale(context.Background(), seeded.ID)
		second <- outcome{got, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(repo.release)
	result := <-second
	require.NoError(t, result.err)
	assert.Equal(t, seeded.ID, result.tale.ID)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.finds)
}

func TestTale_Excerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    string
	}{
		{"short content", "  A curta.  ", 20, "A curta."},
		{"cut at word", "Na estrada velha, uma mulher de branco", 20, "Na estrada velha…"},
		{"multibyte", "ção ção ção", 7, "ção…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &tale.Tale{Content: tt.content}
			assert.Equal(t, tt.want, item.Excerpt(tt.n))
		})
	}
}
