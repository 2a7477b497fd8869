// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quartoselo/internal/client"
	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/users/profile"
)

func TestProfileView_AnonymousIsRedirected(t *testing.T) {
	h := newHarness(t)
	c, session := h.anonymous(t)
	view := client.NewProfileView(c, session)

	route, err := view.Load(context.Background())
	assert.Equal(t, client.RouteAuth, route)
	assert.ErrorIs(t, err, client.ErrAuthRequired)
	assert.Nil(t, view.Profile())

	assert.ErrorIs(t, view.Save(context.Background(), profile.UpdateInput{Bio: "oi"}), client.ErrAuthRequired)
}

func TestProfileView_LoadsProfileAndOwnComments(t *testing.T) {
	h := newHarness(t)
	seeded := h.seedTales(1)[0]
	c, session := h.signedIn(t, "leitora@example.com", "leitora")

	form := client.NewCommentForm(c, session, seeded.ID)
	form.SetDraft("Ainda pendente")
	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	view := client.NewProfileView(c, session)
	route, err := view.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, client.RouteNone, route)

	require.NotNil(t, view.Profile())
	assert.Equal(t, session.Identity().ID, view.Profile().ID)
	assert.Equal(t, "leitora", view.Form().Username)
	assert.Empty(t, view.Form().Bio)

	require.Len(t, view.Comments(), 1)
	assert.Equal(t, "Ainda pendente", view.Comments()[0].Content)
	require.NotNil(t, view.Comments()[0].TaleTitle)
	assert.Equal(t, seeded.Title, *view.Comments()[0].TaleTitle)
	assert.Nil(t, view.Notice())
}

func TestProfileView_WaitsForSession(t *testing.T) {
	h := newHarness(t)
	c := h.client()
	tokens, err := c.Register(context.Background(), "a@example.com", "segredo123", "leitora")
	require.NoError(t, err)
	c.SetAccessToken(tokens.AccessToken)

	session := client.NewSession(c, discard)
	view := client.NewProfileView(c, session)
	session.Start(context.Background())

	route, err := view.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, client.RouteNone, route)
	require.NotNil(t, view.Profile())
	assert.Equal(t, "leitora", view.Profile().Username)
}

func TestProfileView_SaveRules(t *testing.T) {
	tests := []struct {
		name  string
		input profile.UpdateInput
		field string
	}{
		{name: "bio one rune too long", input: profile.UpdateInput{Bio: strings.Repeat("b", profile.MaxBioLength+1)}, field: profile.FieldBio},
		{name: "avatar is not a URL", input: profile.UpdateInput{AvatarURL: "not a url"}, field: profile.FieldAvatarURL},
		{name: "username too long", input: profile.UpdateInput{Username: strings.Repeat("u", profile.MaxUsernameLength+1)}, field: profile.FieldUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			c, session := h.signedIn(t, "a@example.com", "leitora")
			view := client.NewProfileView(c, session)
			_, err := view.Load(context.Background())
			require.NoError(t, err)

			var writes int
			h.intercept.set(func(_ http.ResponseWriter, request *http.Request) bool {
				if request.Method == http.MethodPut {
					writes++
				}
				return false
			})

			err = view.Save(context.Background(), tt.input)
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			require.NotEmpty(t, appErr.Details)
			assert.Equal(t, tt.field, appErr.Details[0].Field)

			assert.Zero(t, writes)
			assert.Equal(t, tt.input, view.Form())
			require.NotNil(t, view.Notice())
			assert.Equal(t, client.NoticeError, view.Notice().Kind)

			stored, err := h.store.Profiles().FindByID(context.Background(), session.Identity().ID)
			require.NoError(t, err)
			assert.Equal(t, "leitora", stored.Username)
			assert.Empty(t, stored.Bio)
		})
	}
}

func TestProfileView_SaveWritesAllFields(t *testing.T) {
	h := newHarness(t)
	c, session := h.signedIn(t, "a@example.com", "leitora")
	view := client.NewProfileView(c, session)
	_, err := view.Load(context.Background())
	require.NoError(t, err)

	input := profile.UpdateInput{
		Username:  "  guardia  ",
		FullName:  "Ana Guardiã",
		Bio:       strings.Repeat("b", profile.MaxBioLength),
		AvatarURL: "https://cdn.example.com/a.png",
	}
	require.NoError(t, view.Save(context.Background(), input))

	require.NotNil(t, view.Profile())
	assert.Equal(t, "guardia", view.Profile().Username)
	assert.Equal(t, "guardia", view.Form().Username)
	assert.Equal(t, client.NoticeSuccess, view.Notice().Kind)
	assert.False(t, view.Saving())

	stored, err := h.store.Profiles().FindByID(context.Background(), session.Identity().ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Guardiã", stored.FullName)
	assert.Equal(t, input.Bio, stored.Bio)
	assert.Equal(t, input.AvatarURL, stored.AvatarURL)
	assert.NotNil(t, stored.UpdatedAt)
}

func TestProfileView_ConflictKeepsAttemptedValues(t *testing.T) {
	h := newHarness(t)
	h.signedIn(t, "first@example.com", "leitora")
	c, session := h.signedIn(t, "second@example.com", "visitante")

	view := client.NewProfileView(c, session)
	_, err := view.Load(context.Background())
	require.NoError(t, err)

	input := profile.UpdateInput{Username: "leitora", Bio: "Quero esse nome"}
	err = view.Save(context.Background(), input)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, apperr.CodeConflict, apiErr.Code)

	assert.Equal(t, input, view.Form())
	assert.Equal(t, "visitante", view.Profile().Username)
	require.NotNil(t, view.Notice())
	assert.Equal(t, client.NoticeError, view.Notice().Kind)
	assert.False(t, view.Saving())
}

func TestProfileView_FollowsIdentityChange(t *testing.T) {
	h := newHarness(t)
	seeded := h.seedTales(1)[0]
	_, err := h.client().Register(context.Background(), "bruno@example.com", "segredo123", "bruno")
	require.NoError(t, err)

	c, session := h.signedIn(t, "alice@example.com", "alice")
	form := client.NewCommentForm(c, session, seeded.ID)
	form.SetDraft("Comentário da Alice")
	_, err = form.Submit(context.Background())
	require.NoError(t, err)

	view := client.NewProfileView(c, session)
	_, err = view.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", view.Profile().Username)
	require.Len(t, view.Comments(), 1)

	session.SignOut(context.Background())
	route, err := view.Load(context.Background())
	assert.Equal(t, client.RouteAuth, route)
	assert.ErrorIs(t, err, client.ErrAuthRequired)
	assert.Nil(t, view.Profile())
	assert.Empty(t, view.Comments())
	assert.Equal(t, profile.UpdateInput{}, view.Form())

	bruno, err := session.SignIn(context.Background(), "bruno@example.com", "segredo123")
	require.NoError(t, err)
	_, err = view.Load(context.Background())
	require.NoError(t, err)

	require.NotNil(t, view.Profile())
	assert.Equal(t, bruno.ID, view.Profile().ID)
	assert.Equal(t, "bruno", view.Form().Username)
	assert.Empty(t, view.Comments())
}

func TestProfileView_SwitchWithoutLoadNeverShowsPreviousReader(t *testing.T) {
	h := newHarness(t)
	_, err := h.client().Register(context.Background(), "bruno@example.com", "segredo123", "bruno")
	require.NoError(t, err)

	c, session := h.signedIn(t, "alice@example.com", "alice")
	view := client.NewProfileView(c, session)
	_, err = view.Load(context.Background())
	require.NoError(t, err)

	session.SignOut(context.Background())
	bruno, err := session.SignIn(context.Background(), "bruno@example.com", "segredo123")
	require.NoError(t, err)

	require.NoError(t, view.Save(context.Background(), profile.UpdateInput{Username: "bruno", Bio: "Sou o Bruno"}))
	assert.Equal(t, bruno.ID, view.Profile().ID)
	assert.Empty(t, view.Comments())

	stored, err := h.store.Profiles().FindByID(context.Background(), bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sou o Bruno", stored.Bio)
}

func TestProfileView_RetriesOnlyFailedSection(t *testing.T) {
	h := newHarness(t)
	c, session := h.signedIn(t, "a@example.com", "leitora")

	var (
		mu           sync.Mutex
		profileReads int
		failComments = true
	)
	h.intercept.set(func(writer http.ResponseWriter, request *http.Request) bool {
		mu.Lock()
		defer mu.Unlock()
		switch request.URL.Path {
		case "/api/v1/me/profile":
			profileReads++
		case "/api/v1/me/comments":
			if failComments {
				failWith(http.StatusInternalServerError, `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`)(writer)
				return true
			}
		}
		return false
	})

	view := client.NewProfileView(c, session)
	_, err := view.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, view.Profile())
	require.NotNil(t, view.Notice())
	assert.Equal(t, client.NoticeError, view.Notice().Kind)

	mu.Lock()
	failComments = false
	mu.Unlock()

	_, err = view.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, view.Comments())
	assert.Nil(t, view.Notice())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, profileReads)
}

func TestProfileView_DiscardsSupersededLoad(t *testing.T) {
	h := newHarness(t)
	c, session := h.signedIn(t, "a@example.com", "leitora")
	arrived, release := h.holdFirst(pathIs(http.MethodGet, "/api/v1/me/profile"),
		`{"data":{"id":"stale","username":"fantasma"}}`)

	view := client.NewProfileView(c, session)
	done := make(chan struct{})
	go func() {
		_, _ = view.Load(context.Background())
		close(done)
	}()
	<-arrived

	_, err := view.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "leitora", view.Profile().Username)

	close(release)
	<-done
	assert.Equal(t, "leitora", view.Profile().Username)
	assert.Equal(t, "leitora", view.Form().Username)
	assert.False(t, view.Loading())
}

func TestProfileView_LeaveDropsResults(t *testing.T) {
	h := newHarness(t)
	c, session := h.signedIn(t, "a@example.com", "leitora")
	arrived, release := h.holdFirst(pathIs(http.MethodGet, "/api/v1/me/profile"),
		`{"data":{"id":"stale","username":"fantasma"}}`)

	view := client.NewProfileView(c, session)
	done := make(chan struct{})
	go func() {
		_, _ = view.Load(context.Background())
		close(done)
	}()
	<-arrived

	view.Leave()
	close(release)
	<-done

	assert.Nil(t, view.Profile())
	assert.False(t, view.Loading())
}
