// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"

	"github.com/taibuivan/quartoselo/internal/core/archive"
	"github.com/taibuivan/quartoselo/internal/core/comment"
	"github.com/taibuivan/quartoselo/internal/core/newsletter"
	"github.com/taibuivan/quartoselo/internal/core/tale"
	"github.com/taibuivan/quartoselo/internal/platform/storage"
	"github.com/taibuivan/quartoselo/internal/users/auth"
	"github.com/taibuivan/quartoselo/internal/users/profile"
)

// Dependencies are the storage-level collaborators behind the handlers.
// Both the PostgreSQL and the memory driver fill the same struct.
type Dependencies struct {
	Tales      tale.Repository
	TaleCache  tale.Cache
	Comments   comment.Repository
	Profiles   profile.Repository
	Accounts   auth.AccountRepository
	Sessions   auth.SessionRepository
	Archive    archive.Repository
	Objects    storage.ObjectStore
	Newsletter newsletter.Repository
	Tokens     auth.TokenProvider

	HealthChecks  []HealthCheck
	SecureCookies bool
}

// NewHandlers builds every service and handler from deps.
func NewHandlers(deps Dependencies, logger *slog.Logger) Handlers {
	liveness, readiness := NewHealthHandlers(deps.HealthChecks, logger)

	authService := auth.NewService(deps.Accounts, deps.Sessions, deps.Tokens, logger)
	taleService := tale.NewService(deps.Tales, deps.TaleCache, logger)
	commentService := comment.NewService(deps.Comments, logger)
	profileService := profile.NewService(deps.Profiles, logger)
	archiveService := archive.NewService(deps.Archive, deps.Objects, logger)
	newsletterService := newsletter.NewService(deps.Newsletter, logger)

	return Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService, deps.SecureCookies),
		Tale:       tale.NewHandler(taleService),
		Comment:    comment.NewHandler(commentService),
		Profile:    profile.NewHandler(profileService),
		Archive:    archive.NewHandler(archiveService),
		Newsletter: newsletter.NewHandler(newsletterService),
	}
}
