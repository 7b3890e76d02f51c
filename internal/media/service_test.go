package media

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

func TestPresignUploadCreatesPendingRow(t *testing.T) {
	svc, env := newTestService(t)
	sellerID := uuid.New()
	showroomID := uuid.New()

	out, err := svc.PresignUpload(context.Background(), sellerID, showroomID, PresignInput{
		Kind:      enums.MediaKindTileImage,
		MimeType:  "IMAGE/PNG",
		FileName:  "  marble front.png ",
		SizeBytes: 1024,
	})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}

	if out.ContentType != "image/png" {
		t.Fatalf("mime not normalized: %q", out.ContentType)
	}
	if !strings.HasPrefix(out.GCSKey, "media/tile_image/") {
		t.Fatalf("unexpected key %q", out.GCSKey)
	}
	if !strings.Contains(out.GCSKey, "marble-front.png") {
		t.Fatalf("file name not sanitized into key: %q", out.GCSKey)
	}
	if out.SignedPUTURL == "" {
		t.Fatal("expected signed put url")
	}

	row := env.store.byID[out.MediaID]
	if row == nil {
		t.Fatal("expected persisted media row")
	}
	if row.Status != enums.MediaStatusPending {
		t.Fatalf("expected pending status, got %s", row.Status)
	}
	if row.ShowroomID != showroomID || row.SellerID != sellerID {
		t.Fatalf("ownership not recorded: %+v", row)
	}
}

func TestPresignUploadRejectsMimeForKind(t *testing.T) {
	svc, env := newTestService(t)

	_, err := svc.PresignUpload(context.Background(), uuid.New(), uuid.New(), PresignInput{
		Kind:      enums.MediaKindTileImage,
		MimeType:  "application/pdf",
		FileName:  "spec.pdf",
		SizeBytes: 1024,
	})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(env.store.byID) != 0 {
		t.Fatal("no row should be persisted for rejected input")
	}
}

func TestPresignUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.PresignUpload(context.Background(), uuid.New(), uuid.New(), PresignInput{
		Kind:      enums.MediaKindTileTexture,
		MimeType:  "image/webp",
		FileName:  "texture.webp",
		SizeBytes: maxUploadBytes + 1,
	})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPresignUploadCleansUpOnSignFailure(t *testing.T) {
	svc, env := newTestService(t)
	env.signer.signErr = errors.New("signer unavailable")

	_, err := svc.PresignUpload(context.Background(), uuid.New(), uuid.New(), PresignInput{
		Kind:      enums.MediaKindSellerLogo,
		MimeType:  "image/png",
		FileName:  "logo.png",
		SizeBytes: 512,
	})
	if !pkgerrors.Is(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if len(env.store.byID) != 0 {
		t.Fatal("pending row should be deleted when signing fails")
	}
}

func TestConfirmUploadIsIdempotent(t *testing.T) {
	svc, env := newTestService(t)
	showroomID := uuid.New()
	row := &models.Media{
		ID:         uuid.New(),
		ShowroomID: showroomID,
		SellerID:   uuid.New(),
		Kind:       enums.MediaKindTileImage,
		Status:     enums.MediaStatusPending,
		GCSKey:     "media/tile_image/x/file.png",
		FileName:   "file.png",
		MimeType:   "image/png",
		SizeBytes:  64,
	}
	env.store.byID[row.ID] = row

	item, err := svc.ConfirmUpload(context.Background(), showroomID, row.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if item.Status != enums.MediaStatusUploaded {
		t.Fatalf("expected uploaded, got %s", item.Status)
	}
	if item.SignedURL == "" {
		t.Fatal("expected signed read url for uploaded media")
	}
	if env.store.markCalls != 1 {
		t.Fatalf("expected one mark call, got %d", env.store.markCalls)
	}

	if _, err := svc.ConfirmUpload(context.Background(), showroomID, row.ID); err != nil {
		t.Fatalf("repeat confirm: %v", err)
	}
	if env.store.markCalls != 1 {
		t.Fatalf("repeat confirm must not rewrite, got %d calls", env.store.markCalls)
	}
}

func TestConfirmUploadScopedToShowroom(t *testing.T) {
	svc, env := newTestService(t)
	row := &models.Media{
		ID:         uuid.New(),
		ShowroomID: uuid.New(),
		Status:     enums.MediaStatusPending,
	}
	env.store.byID[row.ID] = row

	_, err := svc.ConfirmUpload(context.Background(), uuid.New(), row.ID)
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for foreign showroom, got %v", err)
	}
}

type fakeMediaStore struct {
	byID      map[uuid.UUID]*models.Media
	rows      []models.Media
	markCalls int
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{byID: map[uuid.UUID]*models.Media{}}
}

func (f *fakeMediaStore) Create(_ context.Context, media *models.Media) (*models.Media, error) {
	stored := *media
	f.byID[media.ID] = &stored
	return media, nil
}

func (f *fakeMediaStore) FindInShowroom(_ context.Context, showroomID, id uuid.UUID) (*models.Media, error) {
	row, ok := f.byID[id]
	if !ok || row.ShowroomID != showroomID {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *row
	return &copy, nil
}

func (f *fakeMediaStore) MarkUploaded(_ context.Context, id uuid.UUID, at time.Time) error {
	f.markCalls++
	if row, ok := f.byID[id]; ok {
		row.Status = enums.MediaStatusUploaded
		stamped := at
		row.UploadedAt = &stamped
	}
	return nil
}

func (f *fakeMediaStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeMediaStore) List(_ context.Context, query listQuery) ([]models.Media, error) {
	out := make([]models.Media, 0, len(f.rows))
	for _, row := range f.rows {
		if row.ShowroomID != query.showroomID {
			continue
		}
		if query.kind != nil && row.Kind != *query.kind {
			continue
		}
		if query.status != nil && row.Status != *query.status {
			continue
		}
		out = append(out, row)
		if len(out) == query.limit {
			break
		}
	}
	return out, nil
}

type fakeSigner struct {
	signErr     error
	readErr     error
	readObjects []string
}

func (f *fakeSigner) SignedURL(_, object, _ string, _ time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://signed.example/put/" + object, nil
}

func (f *fakeSigner) SignedReadURL(_, object string, _ time.Duration) (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	f.readObjects = append(f.readObjects, object)
	return "https://signed.example/get/" + object, nil
}

type testEnv struct {
	store  *fakeMediaStore
	signer *fakeSigner
}

func newTestService(t *testing.T) (Service, *testEnv) {
	t.Helper()
	store := newFakeMediaStore()
	signer := &fakeSigner{}
	svc, err := NewService(ServiceParams{
		Repo:        store,
		GCS:         signer,
		Bucket:      "tilevista-media",
		UploadTTL:   15 * time.Minute,
		DownloadTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	return svc, &testEnv{store: store, signer: signer}
}
