package ports

import (
	"context"

	"github.com/wadjakorntonsri/resource-directory/pkg/core/domain"
)

// CollectionRepository persists the whole collection document.
// Implementations must make Save atomic from the caller's point of view.
type CollectionRepository interface {
	Load(ctx context.Context) (domain.Collection, error)
	Save(ctx context.Context, c domain.Collection) error
}

// ResourceStore defines the CRUD, search and ordering operations over the
// collection. Every call reloads the full document; mutating calls write it
// back. Missing records are reported through the boolean results, write
// failures through the returned error.
type ResourceStore interface {
	Load(ctx context.Context) domain.Collection
	Save(ctx context.Context, c domain.Collection) error

	ListAll(ctx context.Context) []domain.Resource
	GetByID(ctx context.Context, id int64) (domain.Resource, bool)
	Add(ctx context.Context, in domain.ResourceInput) (domain.Resource, error)
	Update(ctx context.Context, id int64, patch domain.ResourcePatch) (domain.Resource, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Reorder(ctx context.Context, ids []int64) error
	Search(ctx context.Context, query string) []domain.Resource
}
