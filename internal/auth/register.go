package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/internal/sellers"
	"github.com/tilevista/tilevista-backend/internal/users"
	"github.com/tilevista/tilevista-backend/pkg/config"
	"github.com/tilevista/tilevista-backend/pkg/db"
	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/security"
)

// RegisterService handles customer and seller onboarding.
type RegisterService interface {
	RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*users.UserDTO, error)
	RegisterSeller(ctx context.Context, req RegisterSellerRequest) (*sellers.ProfileDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type registerSellerRepository interface {
	Create(ctx context.Context, seller *models.Seller) (*models.Seller, error)
}

type registerShowroomRepository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Showroom, error)
	Create(ctx context.Context, showroom *models.Showroom) (*models.Showroom, error)
}

// RegisterServiceParams packages the dependencies for the registration flows.
// Factories default to the GORM repositories when left nil.
type RegisterServiceParams struct {
	DB                  *db.Client
	TxRunner            txRunner
	UserRepoFactory     func(tx *gorm.DB) registerUserRepository
	SellerRepoFactory   func(tx *gorm.DB) registerSellerRepository
	ShowroomRepoFactory func(tx *gorm.DB) registerShowroomRepository
	PasswordConfig      config.PasswordConfig
}

type registerService struct {
	tx           txRunner
	userRepo     func(tx *gorm.DB) registerUserRepository
	sellerRepo   func(tx *gorm.DB) registerSellerRepository
	showroomRepo func(tx *gorm.DB) registerShowroomRepository
	passwordCfg  config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	runner := params.TxRunner
	if runner == nil {
		if params.DB == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
		}
		runner = params.DB
	}
	userFactory := params.UserRepoFactory
	if userFactory == nil {
		userFactory = func(tx *gorm.DB) registerUserRepository { return users.NewRepository(tx) }
	}
	sellerFactory := params.SellerRepoFactory
	if sellerFactory == nil {
		sellerFactory = func(tx *gorm.DB) registerSellerRepository { return sellers.NewRepository(tx) }
	}
	showroomFactory := params.ShowroomRepoFactory
	if showroomFactory == nil {
		showroomFactory = func(tx *gorm.DB) registerShowroomRepository { return sellers.NewShowroomRepository(tx) }
	}
	return &registerService{
		tx:           runner,
		userRepo:     userFactory,
		sellerRepo:   sellerFactory,
		showroomRepo: showroomFactory,
		passwordCfg:  params.PasswordConfig,
	}, nil
}

func (s *registerService) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*users.UserDTO, error) {
	email, passwordHash, err := s.prepareCredentials(req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}

	var dto *users.UserDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepo(tx)
		if err := ensureEmailFree(ctx, userRepo, email); err != nil {
			return err
		}
		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     strings.TrimSpace(req.FullName),
			Phone:        req.Phone,
			Role:         enums.UserRoleCustomer,
		})
		if err != nil {
			// ensureEmailFree races with concurrent registrations; the
			// unique index is the source of truth.
			if db.IsUniqueViolation(err, "users_email_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		dto = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *registerService) RegisterSeller(ctx context.Context, req RegisterSellerRequest) (*sellers.ProfileDTO, error) {
	email, passwordHash, err := s.prepareCredentials(req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}
	businessName := strings.TrimSpace(req.BusinessName)
	if businessName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
	}
	showroomName := strings.TrimSpace(req.ShowroomName)
	if showroomName == "" {
		showroomName = businessName
	}

	var profile *sellers.ProfileDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepo(tx)
		sellerRepo := s.sellerRepo(tx)
		showroomRepo := s.showroomRepo(tx)

		if err := ensureEmailFree(ctx, userRepo, email); err != nil {
			return err
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     strings.TrimSpace(req.FullName),
			Phone:        req.Phone,
			Role:         enums.UserRoleSeller,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "users_email_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		seller, err := sellerRepo.Create(ctx, &models.Seller{
			UserID:          user.ID,
			BusinessName:    businessName,
			BusinessAddress: req.BusinessAddress,
			Phone:           req.Phone,
			Website:         req.Website,
			Specialties:     pq.StringArray{},
			Status:          enums.SellerStatusActive,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create seller")
		}

		slug, err := availableSlug(ctx, showroomRepo, showroomName)
		if err != nil {
			return err
		}
		showroom, err := showroomRepo.Create(ctx, &models.Showroom{
			SellerID: seller.ID,
			Name:     showroomName,
			Slug:     slug,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create showroom")
		}

		profile = &sellers.ProfileDTO{
			Seller:   sellers.NewSellerDTO(seller),
			Showroom: sellers.NewShowroomDTO(showroom),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *registerService) prepareCredentials(email, password, fullName string) (string, string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(password) < 8 {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if strings.TrimSpace(fullName) == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	return normalized, hash, nil
}

func ensureEmailFree(ctx context.Context, repo registerUserRepository, email string) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}
	return nil
}

// availableSlug derives the showroom slug from its name, suffixing a short
// random fragment when the plain slug is already taken.
func availableSlug(ctx context.Context, repo registerShowroomRepository, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "showroom name must contain letters or digits")
	}
	if free, err := slugFree(ctx, repo, base); err != nil {
		return "", err
	} else if free {
		return base, nil
	}
	candidate := fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
	if free, err := slugFree(ctx, repo, candidate); err != nil {
		return "", err
	} else if free {
		return candidate, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeConflict, "showroom slug unavailable")
}

func slugFree(ctx context.Context, repo registerShowroomRepository, slug string) (bool, error) {
	if _, err := repo.FindBySlug(ctx, slug); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check showroom slug")
	}
	return true, nil
}

// Slugify lowercases the name and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
