// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package newsletter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/quartoselo/internal/platform/request"
	"github.com/taibuivan/quartoselo/internal/platform/respond"
)

// Handler exposes newsletter sign-up.
type Handler struct {
	service *Service
}

// NewHandler constructs a newsletter handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts POST /newsletter/subscriptions.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/subscriptions", handler.subscribe)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

/*
POST /api/v1/newsletter/subscriptions

Response:
  - 201: Subscription (also for an address already subscribed)
  - 400: Invalid email
*/
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	var input subscribeRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscription, err := handler.service.Subscribe(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, subscription)
}
