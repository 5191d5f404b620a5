package catalog

import (
	"context"
	"errors"

	"github.com/wintakam/wintakam/internal/client/errx"
	"github.com/wintakam/wintakam/internal/client/gateway"
	"github.com/wintakam/wintakam/internal/client/models"
	"github.com/wintakam/wintakam/internal/common"
	"github.com/wintakam/wintakam/internal/logging"
)

// PropertyService is the read-only catalog surface consumed by the listing
// screens. Implementations return immutable snapshots; re-rendering on
// change is the presentation layer's concern.
type PropertyService interface {
	// GetAll returns all listings. Zero rows yield an empty, non-nil slice.
	GetAll(ctx context.Context) ([]models.Property, error)

	// GetByID returns the listing with the given id, or nil when absent.
	// "Not found" is not an error here.
	GetByID(ctx context.Context, id string) (*models.Property, error)

	// GetByOwner returns all listings owned by ownerID.
	GetByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
}

// Service fetches listing rows from the backend gateway and normalizes each
// one through MapRecord. Every gateway fault is translated to a user-facing
// taxonomy error; partial or cached data is never returned.
type Service struct {
	gw     gateway.Gateway
	logger logging.Logger
}

// NewService constructs a catalog Service over the given gateway.
func NewService(gw gateway.Gateway, logger logging.Logger) *Service {
	return &Service{gw: gw, logger: logger.With("module", "catalog")}
}

func (s *Service) GetAll(ctx context.Context) ([]models.Property, error) {
	rows, err := s.gw.Query(ctx, common.PropertiesTable, nil)
	if err != nil {
		s.logger.Error(ctx, "listing fetch failed", "error", err.Error())
		return nil, errx.Catalog(err)
	}
	return mapRows(rows), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Property, error) {
	row, err := s.gw.QueryOne(ctx, common.PropertiesTable, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error(ctx, "listing fetch failed", "id", id, "error", err.Error())
		return nil, errx.Catalog(err)
	}

	p := MapRecord(row)
	return &p, nil
}

func (s *Service) GetByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	rows, err := s.gw.Query(ctx, common.PropertiesTable, map[string]string{"owner_id": ownerID})
	if err != nil {
		s.logger.Error(ctx, "owner listing fetch failed", "owner_id", ownerID, "error", err.Error())
		return nil, errx.Catalog(err)
	}
	return mapRows(rows), nil
}

func mapRows(rows []gateway.RawRecord) []models.Property {
	out := make([]models.Property, 0, len(rows))
	for _, row := range rows {
		out = append(out, MapRecord(row))
	}
	return out
}
