package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

const maxUploadBytes = 20 * 1024 * 1024

type mediaStore interface {
	Create(ctx context.Context, media *models.Media) (*models.Media, error)
	FindInShowroom(ctx context.Context, showroomID, id uuid.UUID) (*models.Media, error)
	MarkUploaded(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query listQuery) ([]models.Media, error)
}

type gcsSigner interface {
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
	SignedReadURL(bucket, object string, expires time.Duration) (string, error)
}

// Service exposes presigned upload semantics for tile imagery.
type Service interface {
	PresignUpload(ctx context.Context, sellerID, showroomID uuid.UUID, input PresignInput) (*PresignOutput, error)
	ConfirmUpload(ctx context.Context, showroomID, mediaID uuid.UUID) (*ListItem, error)
	ListMedia(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo        mediaStore
	gcs         gcsSigner
	bucket      string
	uploadTTL   time.Duration
	downloadTTL time.Duration
}

// ServiceParams groups the dependencies for the media service.
type ServiceParams struct {
	Repo        mediaStore
	GCS         gcsSigner
	Bucket      string
	UploadTTL   time.Duration
	DownloadTTL time.Duration
}

// NewService constructs a media service backed by the provided store and GCS signer.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if params.GCS == nil {
		return nil, fmt.Errorf("gcs client required")
	}
	if params.Bucket == "" {
		return nil, fmt.Errorf("gcs bucket required")
	}
	if params.UploadTTL <= 0 {
		return nil, fmt.Errorf("upload ttl must be positive")
	}
	if params.DownloadTTL <= 0 {
		return nil, fmt.Errorf("download ttl must be positive")
	}
	return &service{
		repo:        params.Repo,
		gcs:         params.GCS,
		bucket:      params.Bucket,
		uploadTTL:   params.UploadTTL,
		downloadTTL: params.DownloadTTL,
	}, nil
}

// PresignInput models the payload required to request an upload URL.
type PresignInput struct {
	Kind      enums.MediaKind
	MimeType  string
	FileName  string
	SizeBytes int64
}

// PresignOutput contains the data returned to the client after creating a media record.
type PresignOutput struct {
	MediaID      uuid.UUID `json:"media_id"`
	GCSKey       string    `json:"gcs_key"`
	SignedPUTURL string    `json:"signed_put_url"`
	ContentType  string    `json:"content_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *service) PresignUpload(ctx context.Context, sellerID, showroomID uuid.UUID, input PresignInput) (*PresignOutput, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller identity missing")
	}
	if showroomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "showroom identity missing")
	}
	if input.Kind == "" || !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media kind")
	}

	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file_name is required")
	}
	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes must be positive")
	}
	if input.SizeBytes > maxUploadBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("size_bytes must not exceed %d bytes", maxUploadBytes))
	}

	mimeType, err := sniffMimeType(input.MimeType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "mime_type invalid")
	}
	if !isAllowedMime(input.Kind, mimeType) {
		return nil, pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("%s uploads accept %s", input.Kind, allowedMimeDescription(input.Kind)),
		)
	}

	mediaID := uuid.New()
	gcsKey := buildGCSKey(input.Kind, mediaID, fileName)

	mediaRow := &models.Media{
		ID:         mediaID,
		ShowroomID: showroomID,
		SellerID:   sellerID,
		Kind:       input.Kind,
		Status:     enums.MediaStatusPending,
		GCSKey:     gcsKey,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  input.SizeBytes,
	}
	if _, err := s.repo.Create(ctx, mediaRow); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist media row")
	}

	expiresAt := time.Now().Add(s.uploadTTL)
	signedURL, err := s.gcs.SignedURL(s.bucket, gcsKey, mimeType, s.uploadTTL)
	if err != nil {
		_ = s.repo.Delete(ctx, mediaID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	return &PresignOutput{
		MediaID:      mediaID,
		GCSKey:       gcsKey,
		SignedPUTURL: signedURL,
		ContentType:  mimeType,
		ExpiresAt:    expiresAt,
	}, nil
}

// ConfirmUpload flips the record to uploaded once the client finished the PUT.
// Confirming twice is a no-op.
func (s *service) ConfirmUpload(ctx context.Context, showroomID, mediaID uuid.UUID) (*ListItem, error) {
	if showroomID == uuid.Nil || mediaID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "showroom and media ids are required")
	}
	row, err := s.repo.FindInShowroom(ctx, showroomID, mediaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}

	if row.Status != enums.MediaStatusUploaded {
		now := time.Now().UTC()
		if err := s.repo.MarkUploaded(ctx, row.ID, now); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark media uploaded")
		}
		row.Status = enums.MediaStatusUploaded
		row.UploadedAt = &now
	}

	item := toListItem(*row)
	readURL, err := s.buildReadURL(*row)
	if err != nil {
		return nil, err
	}
	item.SignedURL = readURL
	return &item, nil
}

func buildGCSKey(kind enums.MediaKind, id uuid.UUID, fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = id.String()
	}
	return fmt.Sprintf("media/%s/%s/%s", kind, id.String(), cleanName)
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.TrimSpace(name))
	if clean == "" || clean == "." {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
