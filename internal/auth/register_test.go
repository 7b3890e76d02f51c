package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/internal/users"
	"github.com/tilevista/tilevista-backend/pkg/config"
	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRegisterUserRepo struct {
	data    map[string]*models.User
	created *models.User
}

func newStubRegisterUserRepo() *stubRegisterUserRepo {
	return &stubRegisterUserRepo{data: map[string]*models.User{}}
}

func (s *stubRegisterUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRegisterUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.ID = uuid.New()
	s.data[dto.Email] = user
	s.created = user
	return user, nil
}

type stubRegisterSellerRepo struct {
	created *models.Seller
}

func (s *stubRegisterSellerRepo) Create(_ context.Context, seller *models.Seller) (*models.Seller, error) {
	seller.ID = uuid.New()
	s.created = seller
	return seller, nil
}

type stubRegisterShowroomRepo struct {
	bySlug  map[string]*models.Showroom
	created *models.Showroom
}

func newStubRegisterShowroomRepo() *stubRegisterShowroomRepo {
	return &stubRegisterShowroomRepo{bySlug: map[string]*models.Showroom{}}
}

func (s *stubRegisterShowroomRepo) FindBySlug(_ context.Context, slug string) (*models.Showroom, error) {
	if showroom, ok := s.bySlug[slug]; ok {
		return showroom, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRegisterShowroomRepo) Create(_ context.Context, showroom *models.Showroom) (*models.Showroom, error) {
	showroom.ID = uuid.New()
	s.bySlug[showroom.Slug] = showroom
	s.created = showroom
	return showroom, nil
}

type registerTestSetup struct {
	service      RegisterService
	userRepo     *stubRegisterUserRepo
	sellerRepo   *stubRegisterSellerRepo
	showroomRepo *stubRegisterShowroomRepo
}

func newRegisterTestSetup(t *testing.T) *registerTestSetup {
	t.Helper()
	userRepo := newStubRegisterUserRepo()
	sellerRepo := &stubRegisterSellerRepo{}
	showroomRepo := newStubRegisterShowroomRepo()
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return userRepo
		},
		SellerRepoFactory: func(tx *gorm.DB) registerSellerRepository {
			return sellerRepo
		},
		ShowroomRepoFactory: func(tx *gorm.DB) registerShowroomRepository {
			return showroomRepo
		},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return &registerTestSetup{
		service:      svc,
		userRepo:     userRepo,
		sellerRepo:   sellerRepo,
		showroomRepo: showroomRepo,
	}
}

func TestRegisterCustomerCreatesUser(t *testing.T) {
	setup := newRegisterTestSetup(t)

	dto, err := setup.service.RegisterCustomer(context.Background(), RegisterCustomerRequest{
		FullName: "Jamie Rivera",
		Email:    " Jamie@Example.com ",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("register customer: %v", err)
	}
	if dto.Email != "jamie@example.com" {
		t.Fatalf("email not normalized: %q", dto.Email)
	}
	if dto.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", dto.Role)
	}
	if setup.userRepo.created == nil || setup.userRepo.created.PasswordHash == "Secret123!" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegisterCustomerDuplicateEmail(t *testing.T) {
	setup := newRegisterTestSetup(t)
	setup.userRepo.data["taken@example.com"] = &models.User{ID: uuid.New(), Email: "taken@example.com"}

	_, err := setup.service.RegisterCustomer(context.Background(), RegisterCustomerRequest{
		FullName: "Jamie Rivera",
		Email:    "taken@example.com",
		Password: "Secret123!",
	})
	if !pkgerrors.Is(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterCustomerRejectsShortPassword(t *testing.T) {
	setup := newRegisterTestSetup(t)

	_, err := setup.service.RegisterCustomer(context.Background(), RegisterCustomerRequest{
		FullName: "Jamie Rivera",
		Email:    "jamie@example.com",
		Password: "short",
	})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterSellerCreatesProfileAndShowroom(t *testing.T) {
	setup := newRegisterTestSetup(t)

	profile, err := setup.service.RegisterSeller(context.Background(), RegisterSellerRequest{
		FullName:     "Marta Stone",
		Email:        "marta@example.com",
		Password:     "Secret123!",
		BusinessName: "Marble Works",
	})
	if err != nil {
		t.Fatalf("register seller: %v", err)
	}

	if setup.userRepo.created.Role != enums.UserRoleSeller {
		t.Fatalf("expected seller role, got %s", setup.userRepo.created.Role)
	}
	if profile.Seller.UserID != setup.userRepo.created.ID {
		t.Fatal("seller not linked to created user")
	}
	if profile.Showroom.SellerID != profile.Seller.ID {
		t.Fatal("showroom not linked to created seller")
	}
	if profile.Showroom.Slug != "marble-works" {
		t.Fatalf("unexpected slug %q", profile.Showroom.Slug)
	}
	if profile.Showroom.Name != "Marble Works" {
		t.Fatalf("showroom name should default to business name, got %q", profile.Showroom.Name)
	}
	if profile.Seller.Status != enums.SellerStatusActive {
		t.Fatalf("new sellers start active, got %s", profile.Seller.Status)
	}
}

func TestRegisterSellerSlugCollisionGetsSuffix(t *testing.T) {
	setup := newRegisterTestSetup(t)
	setup.showroomRepo.bySlug["marble-works"] = &models.Showroom{ID: uuid.New(), Slug: "marble-works"}

	profile, err := setup.service.RegisterSeller(context.Background(), RegisterSellerRequest{
		FullName:     "Marta Stone",
		Email:        "marta@example.com",
		Password:     "Secret123!",
		BusinessName: "Marble Works",
	})
	if err != nil {
		t.Fatalf("register seller: %v", err)
	}
	if !strings.HasPrefix(profile.Showroom.Slug, "marble-works-") {
		t.Fatalf("expected suffixed slug, got %q", profile.Showroom.Slug)
	}
	if profile.Showroom.Slug == "marble-works" {
		t.Fatal("slug must not collide")
	}
}

func TestRegisterSellerRequiresBusinessName(t *testing.T) {
	setup := newRegisterTestSetup(t)

	_, err := setup.service.RegisterSeller(context.Background(), RegisterSellerRequest{
		FullName:     "Marta Stone",
		Email:        "marta@example.com",
		Password:     "Secret123!",
		BusinessName: "   ",
	})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Marble Works", "marble-works"},
		{"  Tile & Stone Co.  ", "tile-stone-co"},
		{"Fliesen-Müller", "fliesen-m-ller"},
		{"---", ""},
		{"Studio 54", "studio-54"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
