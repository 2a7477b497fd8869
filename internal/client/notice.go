// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"errors"
	"strings"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
)

// NoticeKind classifies a [Notice].
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a non-blocking message for the reader, shown once.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// Route names a destination the front end should navigate to.
type Route string

const (
	// RouteNone means stay on the current view.
	RouteNone Route = ""

	// RouteHome is the landing view.
	RouteHome Route = "/"

	// RouteAuth is the sign-in view.
	RouteAuth Route = "/auth"
)

// errorNotice turns any failure into a reader-facing notice. Validation
// details are joined into the message.
func errorNotice(title string, err error) *Notice {
	notice := &Notice{Kind: NoticeError, Title: title, Message: "Algo deu errado. Tente novamente."}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		notice.Message = apiErr.Message
		if len(apiErr.Details) > 0 {
			notice.Message = detailMessage(apiErr.Details)
		}
		return notice
	}

	if appErr := apperr.As(err); appErr != nil {
		notice.Message = appErr.Message
		if len(appErr.Details) > 0 {
			notice.Message = detailMessage(appErr.Details)
		}
	}
	return notice
}

func detailMessage(details []apperr.FieldError) string {
	parts := make([]string, 0, len(details))
	for _, detail := range details {
		parts = append(parts, detail.Field+": "+detail.Message)
	}
	return strings.Join(parts, "; ")
}
