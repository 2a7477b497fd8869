// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quartoselo/internal/platform/constants"
	"github.com/taibuivan/quartoselo/internal/platform/middleware"
	requestutil "github.com/taibuivan/quartoselo/internal/platform/request"
	"github.com/taibuivan/quartoselo/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
//
// # Refresh Tokens
//
// The refresh token is returned in the body and as an HttpOnly cookie.
// Refresh and logout accept either; the body wins when both are present.
type Handler struct {
	service       *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler]. secureCookies should be false only
// for plain-HTTP development.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// RegisterRoutes mounts the auth endpoints.
//
// # Endpoints
//   - POST /register : Creates an account and signs it in.
//   - POST /login    : Signs in with email and password.
//   - POST /refresh  : Rotates the refresh token.
//   - POST /logout   : Revokes the refresh token.
//   - GET  /me       : Current identity, or null.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is the body of every successful sign-in.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	Identity     *Identity `json:"identity"`
}

/*
POST /api/v1/auth/register

Response:
  - 201: TokenResponse
  - 400: Invalid email, short password or long username
  - 409: Email or username already taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tokens, err := handler.service.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Username: input.Username,
	}, clientInfo(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, tokens)
	respond.Created(writer, tokenResponse(tokens))
}

/*
POST /api/v1/auth/login

Response:
  - 200: TokenResponse
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tokens, err := handler.service.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, clientInfo(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, tokens)
	respond.OK(writer, tokenResponse(tokens))
}

/*
POST /api/v1/auth/refresh

Response:
  - 200: TokenResponse with a rotated refresh token
  - 401: Missing, used or expired refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	token, err := refreshToken(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tokens, err := handler.service.Refresh(request.Context(), token, clientInfo(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, tokens)
	respond.OK(writer, tokenResponse(tokens))
}

/*
POST /api/v1/auth/logout

Response:
  - 204: Session revoked and cookie cleared
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token, err := refreshToken(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

/*
GET /api/v1/auth/me

Description: Reports the identity behind the bearer token. Anonymous callers
get 200 with null data, not 401.
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, IdentityFromClaims(requestutil.Claims(request)))
}

// # Helpers

func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, tokens *Tokens) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    tokens.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  tokens.RefreshTokenExpiresAt,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// refreshToken reads the token from the JSON body, falling back to the cookie.
// An empty body is allowed.
func refreshToken(writer http.ResponseWriter, request *http.Request) (string, error) {
	var input refreshRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
			return "", err
		}
	}
	if input.RefreshToken != "" {
		return input.RefreshToken, nil
	}

	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		return cookie.Value, nil
	}
	return "", nil
}

func tokenResponse(tokens *Tokens) TokenResponse {
	return TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(AccessTokenTTL / time.Second),
		Identity:     tokens.Identity,
	}
}

func clientInfo(request *http.Request) ClientInfo {
	return ClientInfo{UserAgent: request.UserAgent(), IPAddress: middleware.RealIP(request)}
}
