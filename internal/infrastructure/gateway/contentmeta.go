package gateway

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
	"github.com/sahzadahmad246/unmatchedlines/internal/usecase"
)

// ContentMetaGateway serves topic metadata for the curation engine from an
// in-process cache. Entries expire on their own; curation tolerates staleness.
type ContentMetaGateway struct {
	source usecase.ContentMetaGateway
	cache  *cache.Cache
}

func NewContentMetaGateway(source usecase.ContentMetaGateway) *ContentMetaGateway {
	return &ContentMetaGateway{
		source: source,
		cache:  cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (g *ContentMetaGateway) GetMeta(ctx context.Context, ids []string) ([]domain.ContentMeta, error) {
	result := make(map[string]domain.ContentMeta, len(ids))
	remaining := []string{}

	for _, id := range ids {
		if cached, found := g.cache.Get(id); found {
			result[id] = cached.(domain.ContentMeta)
		} else {
			remaining = append(remaining, id)
		}
	}

	if len(remaining) > 0 {
		fetched, err := g.source.GetMeta(ctx, remaining)
		if err != nil {
			return nil, err
		}
		for _, meta := range fetched {
			result[meta.ID] = meta
			g.cache.Set(meta.ID, meta, cache.DefaultExpiration)
		}
	}

	// Input order, unknown ids skipped.
	out := make([]domain.ContentMeta, 0, len(result))
	for _, id := range ids {
		if meta, ok := result[id]; ok {
			out = append(out, meta)
		}
	}
	return out, nil
}

var _ usecase.ContentMetaGateway = (*ContentMetaGateway)(nil)
