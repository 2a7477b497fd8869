// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quartoselo/internal/platform/apperr"
	"github.com/taibuivan/quartoselo/internal/platform/respond"
	"github.com/taibuivan/quartoselo/internal/platform/validate"
)

// maxFormBytes leaves room for the text fields around a full attachment.
const maxFormBytes = MaxAttachmentBytes + 1<<20

// Handler exposes archive submissions over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs an archive handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts POST /archive/submissions.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/submissions", handler.submit)
}

/*
POST /api/v1/archive/submissions

Request:
  - Body: multipart/form-data with name, email, title, location,
    interviewee, story and an optional "attachment" file.

Response:
  - 201: Submission
  - 400: Missing title or story, bad email, oversized or disallowed file
  - 503: Attachment sent while object storage is disabled
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)
	if err := request.ParseMultipartForm(maxFormBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, validate.RequiredError(FieldAttachment, "Attachment exceeds 10 MiB"))
			return
		}
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart form"))
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	attachment, err := readAttachment(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	submission, err := handler.service.Submit(request.Context(), SubmitInput{
		Name:        request.FormValue(FieldName),
		Email:       request.FormValue(FieldEmail),
		Title:       request.FormValue(FieldTitle),
		Location:    request.FormValue(FieldLocation),
		Interviewee: request.FormValue(FieldInterviewee),
		Story:       request.FormValue(FieldStory),
		Attachment:  attachment,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, submission)
}

// readAttachment returns nil when no file was sent.
func readAttachment(request *http.Request) (*Attachment, error) {
	file, header, err := request.FormFile(FieldAttachment)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, validate.RequiredError(FieldAttachment, "Could not read attachment")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxAttachmentBytes+1))
	if err != nil {
		return nil, validate.RequiredError(FieldAttachment, "Could not read attachment")
	}
	return &Attachment{Filename: header.Filename, Data: data}, nil
}
