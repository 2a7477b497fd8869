// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quartoselo/internal/core/comment"
	"github.com/taibuivan/quartoselo/internal/platform/ctxutil"
	"github.com/taibuivan/quartoselo/internal/platform/sec"
)

// as pretends the request was authenticated with the given claims.
func as(claims *sec.AuthClaims) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func newRouter(f *fixture, claims *sec.AuthClaims) http.Handler {
	handler := comment.NewHandler(f.service)
	router := chi.NewRouter()
	router.Use(as(claims))
	router.Route("/tales/{taleID}/comments", handler.RegisterTaleRoutes)
	router.Route("/me/comments", handler.RegisterOwnRoutes)
	return router
}

func TestHandler_SubmitAlwaysPending(t *testing.T) {
	for _, role := range []sec.UserRole{sec.RoleMember, sec.RoleModerator, sec.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			f := newFixture(t)
			router := newRouter(f, &sec.AuthClaims{UserID: f.author, Username: "leitora", Role: string(role)})

			recorder := httptest.NewRecorder()
			body := strings.NewReader(`{"content":"Ótima história!","status":"approved","user_id":"someone-else"}`)
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/tales/"+f.tale.ID+"/comments", body))

			require.Equal(t, http.StatusCreated, recorder.Code)

			var envelope struct {
				Data    comment.Comment `json:"data"`
				Message string          `json:"message"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
			assert.Equal(t, comment.StatusPending, envelope.Data.Status)
			assert.Equal(t, f.author, envelope.Data.UserID)
			assert.Equal(t, comment.ModerationNotice, envelope.Message)

			stored := f.store.AllComments()
			require.Len(t, stored, 1)
			assert.Equal(t, comment.StatusPending, stored[0].Status)
		})
	}
}

func TestHandler_AnonymousCannotSubmit(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/tales/"+f.tale.ID+"/comments", strings.NewReader(`{"content":"oi"}`)))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, f.store.AllComments())
}

func TestHandler_ListApprovedIsPublic(t *testing.T) {
	f := newFixture(t)
	created := f.submit(t, f.author, "aprovado")
	f.submit(t, f.author, "pendente")
	require.NoError(t, f.store.ApproveComment(created.ID))

	recorder := httptest.NewRecorder()
	newRouter(f, nil).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/tales/"+f.tale.ID+"/comments", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []comment.PublicComment `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "aprovado", envelope.Data[0].Content)
}
