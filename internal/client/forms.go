// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/taibuivan/quartoselo/internal/core/comment"
	"github.com/taibuivan/quartoselo/internal/platform/validate"
	"github.com/taibuivan/quartoselo/internal/users/profile"
)

// # Comment Form

/*
CommentForm is the comment box under a tale.

A successful submit clears the draft and shows the moderation notice. The
comment is not added to any list: it stays invisible until approved.
A failed submit keeps the draft.
*/
type CommentForm struct {
	client   *Client
	session  *Session
	taleID   string
	inFlight atomic.Bool

	mu     sync.RWMutex
	draft  string
	notice *Notice
}

// NewCommentForm creates an empty form for taleID.
func NewCommentForm(client *Client, session *Session, taleID string) *CommentForm {
	return &CommentForm{client: client, session: session, taleID: taleID}
}

func (form *CommentForm) SetDraft(content string) {
	form.mu.Lock()
	defer form.mu.Unlock()
	form.draft = content
}

func (form *CommentForm) Draft() string {
	form.mu.RLock()
	defer form.mu.RUnlock()
	return form.draft
}

func (form *CommentForm) Notice() *Notice {
	form.mu.RLock()
	defer form.mu.RUnlock()
	return form.notice
}

// Submitting reports whether a submit is in flight.
func (form *CommentForm) Submitting() bool {
	return form.inFlight.Load()
}

/*
Submit sends the draft.

Returns:
  - Route: RouteAuth when the reader must sign in first, otherwise RouteNone
  - error: ErrAuthRequired, ErrSubmissionInFlight, a validation error, or
    the request failure (also recorded as the form's notice)
*/
func (form *CommentForm) Submit(ctx context.Context) (Route, error) {
	if form.session.Identity() == nil {
		return RouteAuth, ErrAuthRequired
	}

	content := validate.Text(form.Draft())
	validator := &validate.Validator{}
	validator.Required(comment.FieldContent, content).
		MaxLen(comment.FieldContent, content, comment.MaxContentLength)
	if err := validator.Err(); err != nil {
		form.setNotice(errorNotice("Comentário inválido", err))
		return RouteNone, err
	}

	if !form.inFlight.CompareAndSwap(false, true) {
		return RouteNone, ErrSubmissionInFlight
	}
	defer form.inFlight.Store(false)

	_, message, err := form.client.SubmitComment(ctx, form.taleID, content)
	if err != nil {
		form.setNotice(errorNotice("Erro ao enviar comentário", err))
		if errors.Is(err, ErrAuthRequired) {
			return RouteAuth, err
		}
		return RouteNone, err
	}

	if message == "" {
		message = comment.ModerationNotice
	}

	form.mu.Lock()
	form.draft = ""
	form.notice = &Notice{Kind: NoticeSuccess, Title: "Comentário enviado", Message: message}
	form.mu.Unlock()
	return RouteNone, nil
}

func (form *CommentForm) setNotice(notice *Notice) {
	form.mu.Lock()
	defer form.mu.Unlock()
	form.notice = notice
}

// # Profile

/*
ProfileView is the signed-in reader's profile page: the editable profile
plus the reader's own comments with their moderation status.

Everything shown belongs to one identity. When the session's identity
changes the view is cleared before it loads again, so one reader never sees
or saves another reader's profile.
*/
type ProfileView struct {
	client     *Client
	session    *Session
	saving     atomic.Bool
	generation generations

	mu             sync.RWMutex
	owner          string
	profile        *profile.Profile
	form           profile.UpdateInput
	comments       []*comment.OwnComment
	profileLoaded  bool
	commentsLoaded bool
	loading        bool
	notice         *Notice
}

// NewProfileView creates an unloaded profile view.
func NewProfileView(client *Client, session *Session) *ProfileView {
	return &ProfileView{client: client, session: session}
}

/*
Load waits for the session, then fetches the profile and own comments
concurrently. A section that loaded for the current identity is not fetched
again; a section that failed is retried on the next Load.

Returns:
  - Route: RouteAuth for anonymous readers
  - error: ErrAuthRequired, or the context error while waiting
*/
func (view *ProfileView) Load(ctx context.Context) (Route, error) {
	if err := view.session.Wait(ctx); err != nil {
		return RouteNone, err
	}

	identity := view.session.Identity()
	if identity == nil {
		view.mu.Lock()
		view.resetFor("")
		view.mu.Unlock()
		return RouteAuth, ErrAuthRequired
	}

	generation := view.generation.next()

	view.mu.Lock()
	if view.owner != identity.ID {
		view.resetFor(identity.ID)
	}
	needProfile := !view.profileLoaded
	needComments := !view.commentsLoaded
	view.loading = needProfile || needComments
	if view.loading {
		view.notice = nil
	}
	view.mu.Unlock()

	if !needProfile && !needComments {
		return RouteNone, nil
	}

	var wg sync.WaitGroup

	if needProfile {
		wg.Add(1)
		go func() {
			defer wg.Done()
			found, err := view.client.GetProfile(ctx)

			view.apply(generation, identity.ID, func() {
				if err != nil {
					view.notice = errorNotice("Erro ao carregar perfil", err)
					return
				}
				view.profile = found
				view.form = formFrom(found)
				view.profileLoaded = true
			})
		}()
	}

	if needComments {
		wg.Add(1)
		go func() {
			defer wg.Done()
			comments, err := view.client.ListOwnComments(ctx)

			view.apply(generation, identity.ID, func() {
				if err != nil {
					view.notice = errorNotice("Erro ao carregar comentários", err)
					return
				}
				view.comments = comments
				view.commentsLoaded = true
			})
		}()
	}

	wg.Wait()
	view.apply(generation, identity.ID, func() { view.loading = false })
	return RouteNone, nil
}

// Leave drops the results of any load still in flight.
func (view *ProfileView) Leave() {
	view.generation.next()

	view.mu.Lock()
	view.loading = false
	view.mu.Unlock()
}

/*
Save overwrites the profile with input.

Description: The bio length and avatar URL are checked before any request.
On failure the form keeps the attempted values and the notice carries the
reason. A reply that arrives after the identity changed is dropped.
*/
func (view *ProfileView) Save(ctx context.Context, input profile.UpdateInput) error {
	identity := view.session.Identity()
	if identity == nil {
		return ErrAuthRequired
	}

	view.mu.Lock()
	if view.owner != identity.ID {
		view.resetFor(identity.ID)
	}
	view.form = input
	view.mu.Unlock()

	normalized := input.Normalize()
	if err := normalized.Validate(); err != nil {
		view.setNotice(errorNotice("Perfil inválido", err))
		return err
	}

	if !view.saving.CompareAndSwap(false, true) {
		return ErrSubmissionInFlight
	}
	defer view.saving.Store(false)

	saved, err := view.client.UpdateProfile(ctx, normalized)

	view.mu.Lock()
	defer view.mu.Unlock()
	if view.owner != identity.ID {
		return err
	}
	if err != nil {
		view.notice = errorNotice("Erro ao salvar perfil", err)
		return err
	}

	view.profile = saved
	view.form = formFrom(saved)
	view.profileLoaded = true
	view.notice = &Notice{Kind: NoticeSuccess, Title: "Perfil atualizado", Message: "Suas alterações foram salvas."}
	return nil
}

// resetFor clears everything shown and hands the view to owner.
// The caller holds mu.
func (view *ProfileView) resetFor(owner string) {
	view.owner = owner
	view.profile = nil
	view.form = profile.UpdateInput{}
	view.comments = nil
	view.profileLoaded = false
	view.commentsLoaded = false
	view.loading = false
	view.notice = nil
}

// apply runs fn under the lock while generation is the latest load and the
// view still belongs to owner.
func (view *ProfileView) apply(generation uint64, owner string, fn func()) {
	view.mu.Lock()
	defer view.mu.Unlock()
	if view.generation.current(generation) && view.owner == owner {
		fn()
	}
}

func (view *ProfileView) Profile() *profile.Profile {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.profile
}

// Form returns the values currently in the edit form.
func (view *ProfileView) Form() profile.UpdateInput {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.form
}

func (view *ProfileView) Comments() []*comment.OwnComment {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.comments
}

func (view *ProfileView) Notice() *Notice {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.notice
}

// Loading reports whether a load is in flight.
func (view *ProfileView) Loading() bool {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.loading
}

// Saving reports whether a save is in flight.
func (view *ProfileView) Saving() bool {
	return view.saving.Load()
}

func (view *ProfileView) setNotice(notice *Notice) {
	view.mu.Lock()
	defer view.mu.Unlock()
	view.notice = notice
}

func formFrom(p *profile.Profile) profile.UpdateInput {
	return profile.UpdateInput{
		Username:  p.Username,
		FullName:  p.FullName,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
	}
}
