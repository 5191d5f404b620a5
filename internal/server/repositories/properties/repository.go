package properties

import (
	"context"

	"github.com/wintakam/wintakam/internal/server/models"
)

type Repository interface {
	SelectAll(ctx context.Context) ([]*models.Property, error)
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.Property, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, p *models.Property) (*models.Property, error)
	AppendImage(ctx context.Context, id, imageURL string) error
}
