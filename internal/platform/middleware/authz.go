// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/constants"
	"github.com/taibuivan/quartoselo/internal/platform/ctxutil"
	"github.com/taibuivan/quartoselo/internal/platform/respond"
	"github.com/taibuivan/quartoselo/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. No header: the request proceeds as anonymous.
//  2. Malformed, expired or forged token: logged at warn, request proceeds as anonymous.
//  3. Valid token: [*sec.AuthClaims] is attached to the context and the
//     request logger gains a user_id attribute.
//
// Routes that need an identity mount [RequireAuth] after this middleware.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				logger.WarnContext(ctx, "auth_header_malformed")
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "auth_token_rejected", slog.String("reason", err.Error()))
				next.ServeHTTP(writer, request)
				return
			}
			if !sec.UserRole(claims.Role).Valid() {
				logger.WarnContext(ctx, "auth_role_unknown", slog.String("role", claims.Role))
				next.ServeHTTP(writer, request)
				return
			}

			ctx = ctxutil.WithAuthUser(ctx, claims)
			ctx = ctxutil.WithLogger(ctx, logger.With(slog.String("user_id", claims.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
