package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/api/middleware"
	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/api/validators"
	"github.com/tilevista/tilevista-backend/internal/media"
	"github.com/tilevista/tilevista-backend/internal/sellers"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

type mediaPresignRequest struct {
	MediaKind string `json:"media_kind" validate:"required"`
	MimeType  string `json:"mime_type" validate:"required"`
	FileName  string `json:"file_name" validate:"required"`
	SizeBytes int64  `json:"size_bytes" validate:"required,min=1"`
}

func (r mediaPresignRequest) toInput() (media.PresignInput, error) {
	kind, err := enums.ParseMediaKind(strings.TrimSpace(r.MediaKind))
	if err != nil {
		return media.PresignInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid media_kind")
	}
	return media.PresignInput{
		Kind:      kind,
		MimeType:  r.MimeType,
		FileName:  r.FileName,
		SizeBytes: r.SizeBytes,
	}, nil
}

func showroomContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.ShowroomIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "showroom context missing")
	}
	showroomID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid showroom id")
	}
	return showroomID, nil
}

// MediaPresign creates a pending media record and returns a signed PUT URL.
func MediaPresign(svc media.Service, sellersSvc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		showroomID, err := showroomContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := sellerIdentity(r, sellersSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload mediaPresignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.PresignUpload(r.Context(), profile.Seller.ID, showroomID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}

// MediaConfirm marks an upload complete after the client PUT the object.
func MediaConfirm(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		showroomID, err := showroomContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mediaID, err := pathUUID(r, chi.URLParam(r, "mediaID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.ConfirmUpload(r.Context(), showroomID, mediaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// MediaList pages through the showroom's media with signed read URLs.
func MediaList(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		showroomID, err := showroomContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := media.ListParams{
			ShowroomID: showroomID,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("kind")); raw != "" {
			kind, err := enums.ParseMediaKind(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid kind"))
				return
			}
			params.Kind = &kind
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseMediaStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			params.Status = &status
		}

		result, err := svc.ListMedia(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
