package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/resource-directory/pkg/core/domain"
	"github.com/wadjakorntonsri/resource-directory/pkg/ports"
)

// ErrPersist marks a failed write of the collection. It is a soft failure:
// the in-memory result is still returned alongside it.
var ErrPersist = errors.New("failed to persist collection")

var _ ports.ResourceStore = (*ResourceStore)(nil)

// ResourceStore implements the resource operations over a CollectionRepository.
// Mutations detach from the caller's cancellation: a started load-mutate-save
// completes or fails with an I/O error.
type ResourceStore struct {
	repo ports.CollectionRepository
	log  *zap.Logger
	now  func() time.Time

	// writeMu serializes load-mutate-save cycles inside this process.
	// Separate processes sharing the same backend can still overwrite
	// each other.
	writeMu sync.Mutex
}

type Option func(*ResourceStore)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *ResourceStore) { s.now = now }
}

func NewResourceStore(repo ports.CollectionRepository, log *zap.Logger, opts ...Option) *ResourceStore {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ResourceStore{repo: repo, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted collection, or an empty one if it cannot be
// read for any reason.
func (s *ResourceStore) Load(ctx context.Context) domain.Collection {
	c, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn("load collection, using empty default", zap.Error(err))
		return domain.NewCollection()
	}
	c.Normalize()
	return c
}

func (s *ResourceStore) Save(ctx context.Context, c domain.Collection) error {
	if err := s.repo.Save(ctx, c); err != nil {
		s.log.Error("save collection", zap.Error(err), zap.Int("resources", len(c.Resources)))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

func (s *ResourceStore) ListAll(ctx context.Context) []domain.Resource {
	return s.Load(ctx).Sorted()
}

func (s *ResourceStore) GetByID(ctx context.Context, id int64) (domain.Resource, bool) {
	for _, r := range s.ListAll(ctx) {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Resource{}, false
}

func (s *ResourceStore) Add(ctx context.Context, in domain.ResourceInput) (domain.Resource, error) {
	ctx = context.WithoutCancel(ctx)
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	c := s.Load(ctx)
	r := domain.Resource{
		ID:          c.NextID,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		TGLink:      in.TGLink,
		PanLink:     in.PanLink,
		PanPass:     in.PanPass,
		Tags:        in.Tags,
		SortOrder:   len(c.Resources),
		CreatedAt:   s.now().UTC().Format(domain.DateLayout),
	}
	c.Resources = append(c.Resources, r)
	c.NextID++

	s.log.Debug("add resource", zap.Int64("id", r.ID), zap.String("name", r.Name))
	return r, s.Save(ctx, c)
}

func (s *ResourceStore) Update(ctx context.Context, id int64, patch domain.ResourcePatch) (domain.Resource, bool, error) {
	ctx = context.WithoutCancel(ctx)
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	c := s.Load(ctx)
	i := c.IndexOf(id)
	if i < 0 {
		return domain.Resource{}, false, nil
	}
	patch.Apply(&c.Resources[i])
	updated := c.Resources[i]

	s.log.Debug("update resource", zap.Int64("id", id))
	return updated, true, s.Save(ctx, c)
}

func (s *ResourceStore) Delete(ctx context.Context, id int64) (bool, error) {
	ctx = context.WithoutCancel(ctx)
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	c := s.Load(ctx)
	i := c.IndexOf(id)
	if i < 0 {
		return false, nil
	}
	c.Resources = append(c.Resources[:i], c.Resources[i+1:]...)
	c.Renumber()

	s.log.Debug("delete resource", zap.Int64("id", id), zap.Int("remaining", len(c.Resources)))
	return true, s.Save(ctx, c)
}

// Reorder assigns each listed id its index as sort order. Unknown ids are
// skipped and unlisted resources keep their current value.
func (s *ResourceStore) Reorder(ctx context.Context, ids []int64) error {
	ctx = context.WithoutCancel(ctx)
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	c := s.Load(ctx)
	for pos, id := range ids {
		if i := c.IndexOf(id); i >= 0 {
			c.Resources[i].SortOrder = pos
		}
	}

	s.log.Debug("reorder resources", zap.Int("ids", len(ids)))
	return s.Save(ctx, c)
}

func (s *ResourceStore) Search(ctx context.Context, query string) []domain.Resource {
	all := s.ListAll(ctx)
	if query == "" {
		return all
	}

	needle := strings.ToLower(query)
	out := []domain.Resource{}
	for _, r := range all {
		if r.Matches(needle) {
			out = append(out, r)
		}
	}
	return out
}
