package cache

import (
	"context"
	"time"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// CatalogCache caches catalog item reads. Cart and transaction rendering
// look items up once per line, so a short TTL takes most of that load off
// the database without risking stale stock figures (stock is never cached).
type CatalogCache interface {
	GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, bool, error)
	SetItem(ctx context.Context, item *entity.Item, ttl time.Duration) error
	InvalidateItem(ctx context.Context, id uuid.UUID) error
}

// NoopCatalogCache is used when Redis is not configured.
type NoopCatalogCache struct{}

func (NoopCatalogCache) GetItem(_ context.Context, _ uuid.UUID) (*entity.Item, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetItem(_ context.Context, _ *entity.Item, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) InvalidateItem(_ context.Context, _ uuid.UUID) error {
	return nil
}
