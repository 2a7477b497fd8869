// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/taibuivan/quartoselo/internal/core/comment"
	"github.com/taibuivan/quartoselo/internal/core/tale"
)

// # Load Generations

// generations numbers loads. A result is applied only while its number is
// still the latest, so a superseded load or one the reader navigated away
// from is dropped.
type generations struct{ counter atomic.Uint64 }

func (g *generations) next() uint64 { return g.counter.Add(1) }

func (g *generations) current(generation uint64) bool { return g.counter.Load() == generation }

// # Home

// HomeView shows the featured tales.
type HomeView struct {
	client     *Client
	generation generations

	mu       sync.RWMutex
	featured []*tale.Tale
	loading  bool
	notice   *Notice
}

// NewHomeView creates an empty home view.
func NewHomeView(client *Client) *HomeView {
	return &HomeView{client: client}
}

// Load fetches the newest [tale.FeaturedLimit] tales.
func (view *HomeView) Load(ctx context.Context) {
	generation := view.generation.next()

	view.mu.Lock()
	view.loading = true
	view.mu.Unlock()

	tales, err := view.client.ListTales(ctx, tale.FeaturedLimit)

	view.apply(generation, func() {
		view.loading = false
		if err != nil {
			view.notice = errorNotice("Erro ao carregar contos", err)
			return
		}
		view.featured = tales
		view.notice = nil
	})
}

// Leave drops the result of any load still in flight.
func (view *HomeView) Leave() {
	view.generation.next()

	view.mu.Lock()
	view.loading = false
	view.mu.Unlock()
}

func (view *HomeView) apply(generation uint64, fn func()) {
	view.mu.Lock()
	defer view.mu.Unlock()
	if view.generation.current(generation) {
		fn()
	}
}

func (view *HomeView) Featured() []*tale.Tale {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.featured
}

func (view *HomeView) Loading() bool {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.loading
}

func (view *HomeView) Notice() *Notice {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.notice
}

// # Tale List

// TalesView shows every tale.
type TalesView struct {
	client     *Client
	generation generations

	mu      sync.RWMutex
	tales   []*tale.Tale
	loaded  bool
	loading bool
	notice  *Notice
}

// NewTalesView creates an empty tale list view.
func NewTalesView(client *Client) *TalesView {
	return &TalesView{client: client}
}

// Load fetches all tales. A failure keeps the tales already shown.
func (view *TalesView) Load(ctx context.Context) {
	generation := view.generation.next()

	view.mu.Lock()
	view.loading = true
	view.mu.Unlock()

	tales, err := view.client.ListTales(ctx, 0)

	view.apply(generation, func() {
		view.loading = false
		if err != nil {
			view.notice = errorNotice("Erro ao carregar contos", err)
			return
		}
		view.tales = tales
		view.loaded = true
		view.notice = nil
	})
}

// Leave drops the result of any load still in flight.
func (view *TalesView) Leave() {
	view.generation.next()

	view.mu.Lock()
	view.loading = false
	view.mu.Unlock()
}

func (view *TalesView) apply(generation uint64, fn func()) {
	view.mu.Lock()
	defer view.mu.Unlock()
	if view.generation.current(generation) {
		fn()
	}
}

func (view *TalesView) Tales() []*tale.Tale {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.tales
}

func (view *TalesView) Loading() bool {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.loading
}

// Empty reports a successful load that returned no tales.
func (view *TalesView) Empty() bool {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.loaded && len(view.tales) == 0
}

func (view *TalesView) Notice() *Notice {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.notice
}

// # Tale Detail

/*
TaleDetailView shows one tale and its approved comments.

The two sections load concurrently and fail independently. Results of a
superseded Load, or of one followed by Leave, are dropped.
*/
type TaleDetailView struct {
	client     *Client
	generation generations

	mu             sync.RWMutex
	taleID         string
	tale           *tale.Tale
	notFound       bool
	comments       []*comment.PublicComment
	loading        bool
	taleNotice     *Notice
	commentsNotice *Notice
}

// NewTaleDetailView creates an empty detail view.
func NewTaleDetailView(client *Client) *TaleDetailView {
	return &TaleDetailView{client: client}
}

// Load fetches tale id and its comments, replacing whatever was shown.
func (view *TaleDetailView) Load(ctx context.Context, id string) {
	generation := view.generation.next()

	view.mu.Lock()
	view.taleID = id
	view.tale = nil
	view.notFound = false
	view.comments = nil
	view.loading = true
	view.taleNotice = nil
	view.commentsNotice = nil
	view.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		found, err := view.client.GetTale(ctx, id)

		view.apply(generation, func() {
			switch {
			case errors.Is(err, ErrNotFound):
				view.notFound = true
			case err != nil:
				view.taleNotice = errorNotice("Erro ao carregar o conto", err)
			default:
				view.tale = found
			}
		})
	}()

	go func() {
		defer wg.Done()
		comments, err := view.client.ListApprovedComments(ctx, id)

		view.apply(generation, func() {
			if err != nil && !errors.Is(err, ErrNotFound) {
				view.commentsNotice = errorNotice("Erro ao carregar comentários", err)
				return
			}
			view.comments = comments
		})
	}()

	wg.Wait()
	view.apply(generation, func() { view.loading = false })
}

// Leave marks the view as navigated away; in-flight results are dropped.
func (view *TaleDetailView) Leave() {
	view.generation.next()

	view.mu.Lock()
	view.loading = false
	view.mu.Unlock()
}

// apply runs fn under the lock unless generation is stale.
func (view *TaleDetailView) apply(generation uint64, fn func()) {
	view.mu.Lock()
	defer view.mu.Unlock()
	if view.generation.current(generation) {
		fn()
	}
}

func (view *TaleDetailView) TaleID() string {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.taleID
}

func (view *TaleDetailView) Tale() *tale.Tale {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.tale
}

// NotFound reports that the tale does not exist.
func (view *TaleDetailView) NotFound() bool {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.notFound
}

func (view *TaleDetailView) Comments() []*comment.PublicComment {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.comments
}

func (view *TaleDetailView) Loading() bool {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.loading
}

func (view *TaleDetailView) TaleNotice() *Notice {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.taleNotice
}

func (view *TaleDetailView) CommentsNotice() *Notice {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.commentsNotice
}
