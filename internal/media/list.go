package media

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

// ListParams configures media listing filters and pagination.
type ListParams struct {
	ShowroomID uuid.UUID
	Kind       *enums.MediaKind
	Status     *enums.MediaStatus
	Pagination pagination.Params
}

// ListResult returns one page of media metadata.
type ListResult struct {
	Items      []ListItem `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// ListItem represents returned media metadata.
type ListItem struct {
	ID         uuid.UUID         `json:"id"`
	ShowroomID uuid.UUID         `json:"showroom_id"`
	Kind       enums.MediaKind   `json:"kind"`
	Status     enums.MediaStatus `json:"status"`
	FileName   string            `json:"file_name"`
	MimeType   string            `json:"mime_type"`
	SizeBytes  int64             `json:"size_bytes"`
	CreatedAt  time.Time         `json:"created_at"`
	UploadedAt *time.Time        `json:"uploaded_at,omitempty"`
	SignedURL  string            `json:"signed_url,omitempty"`
}

type listQuery struct {
	showroomID uuid.UUID
	kind       *enums.MediaKind
	status     *enums.MediaStatus
	limit      int
	cursor     *pagination.Cursor
}

func (s *service) ListMedia(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.ShowroomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "showroom id required")
	}
	if params.Kind != nil && !params.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media kind")
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media status")
	}

	pageSize := pagination.NormalizeLimit(params.Pagination.Limit)
	cursor, err := pagination.ParseCursor(strings.TrimSpace(params.Pagination.Cursor))
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, listQuery{
		showroomID: params.ShowroomID,
		kind:       params.Kind,
		status:     params.Status,
		limit:      pagination.LimitWithBuffer(params.Pagination.Limit),
		cursor:     cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	items := make([]ListItem, len(rows))
	for i, m := range rows {
		signedURL, err := s.buildReadURL(m)
		if err != nil {
			return nil, err
		}
		items[i] = toListItem(m)
		items[i].SignedURL = signedURL
	}

	return &ListResult{
		Items:      items,
		NextCursor: nextCursor,
	}, nil
}

func toListItem(m models.Media) ListItem {
	return ListItem{
		ID:         m.ID,
		ShowroomID: m.ShowroomID,
		Kind:       m.Kind,
		Status:     m.Status,
		FileName:   m.FileName,
		MimeType:   m.MimeType,
		SizeBytes:  m.SizeBytes,
		CreatedAt:  m.CreatedAt,
		UploadedAt: m.UploadedAt,
	}
}

// buildReadURL signs a download URL for uploaded objects only.
func (s *service) buildReadURL(media models.Media) (string, error) {
	if media.Status != enums.MediaStatusUploaded {
		return "", nil
	}
	url, err := s.gcs.SignedReadURL(s.bucket, media.GCSKey, s.downloadTTL)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate signed read url")
	}
	return url, nil
}
