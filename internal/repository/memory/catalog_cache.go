package memory

import (
	"time"

	"ai-learning-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CatalogCache keeps course chapter lists in process memory. Chapters are
// immutable once published, so a stale-free cache only needs eviction for
// newly seeded courses.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache() *CatalogCache {
	// Chapters rarely change; 10 minute TTL covers seeding of new content.
	c := cache.New(10*time.Minute, 30*time.Minute)
	return &CatalogCache{
		cache: c,
	}
}

func (r *CatalogCache) SetChapters(courseId uuid.UUID, chapters []*entity.Chapter) {
	r.cache.Set(courseId.String(), chapters, cache.DefaultExpiration)
}

func (r *CatalogCache) GetChapters(courseId uuid.UUID) ([]*entity.Chapter, bool) {
	if x, found := r.cache.Get(courseId.String()); found {
		return x.([]*entity.Chapter), true
	}
	return nil, false
}

func (r *CatalogCache) Invalidate(courseId uuid.UUID) {
	r.cache.Delete(courseId.String())
}
