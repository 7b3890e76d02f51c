package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/internal/access"
	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

type favoriteStore interface {
	Add(ctx context.Context, customerID, tileID, showroomID uuid.UUID) error
	Remove(ctx context.Context, customerID, tileID uuid.UUID) error
	Exists(ctx context.Context, customerID, tileID uuid.UUID) (bool, error)
	ListItems(ctx context.Context, customerID uuid.UUID, cursor string, limit int) (FavoritesPageDTO, error)
	ListIDs(ctx context.Context, customerID uuid.UUID, cursor string, limit int) (FavoriteIDsDTO, error)
}

type tileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tile, error)
}

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	Favorites favoriteStore
	Tiles     tileReader
}

// Service exposes business rules for customer favorites.
type Service interface {
	Toggle(ctx context.Context, principal *access.Principal, tileID uuid.UUID) (*ToggleResult, error)
	List(ctx context.Context, principal *access.Principal, cursor string, limit int) (FavoritesPageDTO, error)
	ListIDs(ctx context.Context, principal *access.Principal, cursor string, limit int) (FavoriteIDsDTO, error)
}

type service struct {
	favorites favoriteStore
	tiles     tileReader
}

// NewService builds a favorites service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Favorites == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites repo is required")
	}
	if params.Tiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tile repo is required")
	}
	return &service{favorites: params.Favorites, tiles: params.Tiles}, nil
}

// Toggle flips membership for the customer-tile pair and returns the new
// state. Guests are rejected before any persistence is touched; repeating the
// same toggle converges instead of erroring.
func (s *service) Toggle(ctx context.Context, principal *access.Principal, tileID uuid.UUID) (*ToggleResult, error) {
	customerID, err := ensureCustomer(principal)
	if err != nil {
		return nil, err
	}
	if tileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tile id is required")
	}

	favorited, err := s.favorites.Exists(ctx, customerID, tileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
	}

	if favorited {
		if err := s.favorites.Remove(ctx, customerID, tileID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
		}
		return &ToggleResult{TileID: tileID, Favorited: false}, nil
	}

	tile, err := s.tiles.FindByID(ctx, tileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tile")
	}
	if err := s.favorites.Add(ctx, customerID, tileID, tile.ShowroomID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
	}
	return &ToggleResult{TileID: tileID, Favorited: true}, nil
}

// List returns the paginated favorites for the customer.
func (s *service) List(ctx context.Context, principal *access.Principal, cursor string, limit int) (FavoritesPageDTO, error) {
	customerID, err := ensureCustomer(principal)
	if err != nil {
		return FavoritesPageDTO{}, err
	}
	return s.favorites.ListItems(ctx, customerID, cursor, limit)
}

// ListIDs returns the favorited tile IDs for the customer.
func (s *service) ListIDs(ctx context.Context, principal *access.Principal, cursor string, limit int) (FavoriteIDsDTO, error) {
	customerID, err := ensureCustomer(principal)
	if err != nil {
		return FavoriteIDsDTO{}, err
	}
	return s.favorites.ListIDs(ctx, customerID, cursor, limit)
}

func ensureCustomer(principal *access.Principal) (uuid.UUID, error) {
	if principal == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotAuthenticated, "sign in to save favorites")
	}
	if principal.Role != enums.UserRoleCustomer {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "favorites are restricted to customer accounts")
	}
	return principal.UserID, nil
}
