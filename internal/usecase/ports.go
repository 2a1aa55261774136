package usecase

import (
	"context"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

// ContentRepository defines persistence/lookup for works.
type ContentRepository interface {
	Create(ctx context.Context, content domain.Content) error
	GetByID(ctx context.Context, id string) (domain.Content, error)
	// GetBySlug matches the slug against all three language columns.
	GetBySlug(ctx context.Context, slug string) (domain.Content, error)
	Update(ctx context.Context, content domain.Content) error
	Delete(ctx context.Context, id string) error
	ListPublished(ctx context.Context, page, limit int) ([]domain.Content, int64, error)
	// SlugExists checks a candidate against every language column,
	// optionally excluding one record's own slugs during an update.
	SlugExists(ctx context.Context, candidate string, excludeID string) (bool, error)
	// FilterExisting returns the subset of ids that resolve to real works,
	// preserving input order.
	FilterExisting(ctx context.Context, ids []string) ([]string, error)
	// FindPublishedByTopics returns up to limit published work ids whose
	// topics or category intersect the given set, excluding excludeIDs,
	// ordered by id so limited results are stable.
	FindPublishedByTopics(ctx context.Context, topics []string, excludeIDs []string, limit int) ([]string, error)
	// FindRecentPublished is the cold-start fallback feed.
	FindRecentPublished(ctx context.Context, limit int) ([]string, error)
	IncrementViews(ctx context.Context, id string) error
}

// ActorRepository defines persistence/lookup for actors.
type ActorRepository interface {
	Create(ctx context.Context, actor domain.Actor) error
	GetByID(ctx context.Context, id string) (domain.Actor, error)
	GetBySlug(ctx context.Context, slug string) (domain.Actor, error)
	Update(ctx context.Context, actor domain.Actor) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, candidate string, excludeID string) (bool, error)
}

// EngagementRepository is the transactional side of the ledger. Toggle runs
// the dual-side mutation in one critical section per (actor, content) pair.
type EngagementRepository interface {
	Toggle(ctx context.Context, kind domain.EngagementKind, action domain.EngagementAction, actorID, contentID string) (bool, error)
	// PurgeContent removes a deleted work from every actor's lists.
	PurgeContent(ctx context.Context, contentID string) error
	// PurgeActor removes a deleted actor from every work's lists and
	// recomputes counts.
	PurgeActor(ctx context.Context, actorID string) error
	// ReconcileActor heals one-sided relations for one actor's engagement
	// and returns how many sides were repaired.
	ReconcileActor(ctx context.Context, actorID string) (int, error)
}

// CollectionRepository defines persistence for actor-owned collections.
type CollectionRepository interface {
	Create(ctx context.Context, col domain.Collection) error
	GetByID(ctx context.Context, actorID, id string) (domain.Collection, error)
	ListByActor(ctx context.Context, actorID string) ([]domain.Collection, error)
	Update(ctx context.Context, col domain.Collection) error
	Delete(ctx context.Context, actorID, id string) error
	// UpsertByName replaces the collection with the same (actor, name) or
	// creates it, never leaving two same-named system collections.
	UpsertByName(ctx context.Context, col domain.Collection) (string, error)
	RemoveContentEverywhere(ctx context.Context, contentID string) error
	DeleteByActor(ctx context.Context, actorID string) error
}

// ContentMetaGateway supplies topic metadata for curation. Implementations
// may serve slightly stale data; curation is advisory.
type ContentMetaGateway interface {
	GetMeta(ctx context.Context, ids []string) ([]domain.ContentMeta, error)
}

// EventPublisher fans engagement events out to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.EngagementEvent) error
}
