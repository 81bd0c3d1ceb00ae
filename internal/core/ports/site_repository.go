package ports

import (
	"context"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/site"
)

// SiteRepository persists sites. Inside a unit of work Get locks the site row
// where the store supports it, which serializes capacity checks per site.
type SiteRepository interface {
	Add(ctx context.Context, aggregate *site.Site) error

	Update(ctx context.Context, aggregate *site.Site) error

	Get(ctx context.Context, id kernel.UUID) (*site.Site, error)
}
