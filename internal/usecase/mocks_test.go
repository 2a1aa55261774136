package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

// --- shared in-memory fixtures ---

type memStore struct {
	contents map[string]*domain.Content
	actors   map[string]*domain.Actor
}

func newMemStore() *memStore {
	return &memStore{
		contents: map[string]*domain.Content{},
		actors:   map[string]*domain.Actor{},
	}
}

type mockContentRepo struct {
	store *memStore
}

func (m *mockContentRepo) Create(ctx context.Context, c domain.Content) error {
	cp := c
	m.store.contents[c.ID] = &cp
	return nil
}

func (m *mockContentRepo) GetByID(ctx context.Context, id string) (domain.Content, error) {
	c, ok := m.store.contents[id]
	if !ok {
		return domain.Content{}, domain.NotFoundError{Resource: "content"}
	}
	return *c, nil
}

func (m *mockContentRepo) GetBySlug(ctx context.Context, s string) (domain.Content, error) {
	for _, c := range m.store.contents {
		if c.Slug.En == s || c.Slug.Hi == s || c.Slug.Ur == s {
			return *c, nil
		}
	}
	return domain.Content{}, domain.NotFoundError{Resource: "content"}
}

func (m *mockContentRepo) Update(ctx context.Context, c domain.Content) error {
	if _, ok := m.store.contents[c.ID]; !ok {
		return domain.NotFoundError{Resource: "content"}
	}
	cp := c
	m.store.contents[c.ID] = &cp
	return nil
}

func (m *mockContentRepo) Delete(ctx context.Context, id string) error {
	delete(m.store.contents, id)
	return nil
}

func (m *mockContentRepo) ListPublished(ctx context.Context, page, limit int) ([]domain.Content, int64, error) {
	var out []domain.Content
	for _, c := range m.store.contents {
		if c.Status == domain.StatusPublished {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *mockContentRepo) SlugExists(ctx context.Context, candidate string, excludeID string) (bool, error) {
	for id, c := range m.store.contents {
		if id == excludeID {
			continue
		}
		if c.Slug.En == candidate || c.Slug.Hi == candidate || c.Slug.Ur == candidate {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockContentRepo) FilterExisting(ctx context.Context, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := m.store.contents[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *mockContentRepo) FindPublishedByTopics(ctx context.Context, topics []string, excludeIDs []string, limit int) ([]string, error) {
	excluded := map[string]struct{}{}
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	wanted := map[string]struct{}{}
	for _, t := range topics {
		wanted[t] = struct{}{}
	}

	var ids []string
	for id, c := range m.store.contents {
		if c.Status != domain.StatusPublished {
			continue
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		match := false
		for _, t := range c.Topics {
			if _, ok := wanted[t]; ok {
				match = true
				break
			}
		}
		if _, ok := wanted[string(c.Category)]; ok {
			match = true
		}
		if match {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (m *mockContentRepo) FindRecentPublished(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	for id, c := range m.store.contents {
		if c.Status == domain.StatusPublished {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (m *mockContentRepo) IncrementViews(ctx context.Context, id string) error {
	if c, ok := m.store.contents[id]; ok {
		c.ViewsCount++
	}
	return nil
}

func (m *mockContentRepo) GetMeta(ctx context.Context, ids []string) ([]domain.ContentMeta, error) {
	out := make([]domain.ContentMeta, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.store.contents[id]; ok {
			out = append(out, domain.ContentMeta{ID: id, Topics: c.Topics, Category: c.Category})
		}
	}
	return out, nil
}

type mockActorRepo struct {
	store *memStore
}

func (m *mockActorRepo) Create(ctx context.Context, a domain.Actor) error {
	cp := a
	m.store.actors[a.ID] = &cp
	return nil
}

func (m *mockActorRepo) GetByID(ctx context.Context, id string) (domain.Actor, error) {
	a, ok := m.store.actors[id]
	if !ok {
		return domain.Actor{}, domain.NotFoundError{Resource: "actor"}
	}
	return *a, nil
}

func (m *mockActorRepo) GetBySlug(ctx context.Context, s string) (domain.Actor, error) {
	for _, a := range m.store.actors {
		if a.Slug == s {
			return *a, nil
		}
	}
	return domain.Actor{}, domain.NotFoundError{Resource: "actor"}
}

func (m *mockActorRepo) Update(ctx context.Context, a domain.Actor) error {
	if _, ok := m.store.actors[a.ID]; !ok {
		return domain.NotFoundError{Resource: "actor"}
	}
	cp := a
	m.store.actors[a.ID] = &cp
	return nil
}

func (m *mockActorRepo) Delete(ctx context.Context, id string) error {
	delete(m.store.actors, id)
	return nil
}

func (m *mockActorRepo) SlugExists(ctx context.Context, candidate string, excludeID string) (bool, error) {
	for id, a := range m.store.actors {
		if id == excludeID {
			continue
		}
		if a.Slug == candidate {
			return true, nil
		}
	}
	return false, nil
}

// mockLedger mirrors the real repository: both sides mutate under one lock,
// the plan decides, counters derive from list length.
type mockLedger struct {
	store *memStore
}

func (m *mockLedger) Toggle(ctx context.Context, kind domain.EngagementKind, action domain.EngagementAction, actorID, contentID string) (bool, error) {
	content, ok := m.store.contents[contentID]
	if !ok {
		return false, domain.NotFoundError{Resource: "content"}
	}
	actor, ok := m.store.actors[actorID]
	if !ok {
		return false, domain.NotFoundError{Resource: "actor"}
	}

	var onContent, onActor bool
	if kind == domain.EngagementBookmark {
		onContent = content.HasBookmarkFrom(actorID)
		onActor = actor.HasBookmarked(contentID)
	} else {
		onContent = content.HasLikeFrom(actorID)
		onActor = actor.HasLiked(contentID)
	}

	plan := domain.PlanEngagement(action, onContent, onActor)
	now := time.Now().UTC()

	if plan.WriteContentSide {
		if kind == domain.EngagementBookmark {
			if action == domain.EngagementAdd {
				content.Bookmarks = append(content.Bookmarks, domain.BookmarkEntry{ActorID: actorID, BookmarkedAt: now})
			} else {
				content.Bookmarks = removeBookmarkEntry(content.Bookmarks, actorID)
			}
		} else {
			if action == domain.EngagementAdd {
				content.Likes = append(content.Likes, domain.LikeEntry{ActorID: actorID, LikedAt: now})
			} else {
				content.Likes = removeLikeEntry(content.Likes, actorID)
			}
		}
	}
	if plan.WriteActorSide {
		if kind == domain.EngagementBookmark {
			if action == domain.EngagementAdd {
				actor.Bookmarks = append(actor.Bookmarks, domain.BookmarkRef{ContentID: contentID, BookmarkedAt: now})
			} else {
				actor.Bookmarks = removeBookmarkRef(actor.Bookmarks, contentID)
			}
		} else {
			if action == domain.EngagementAdd {
				actor.LikedContent = append(actor.LikedContent, domain.LikedRef{ContentID: contentID})
			} else {
				actor.LikedContent = removeLikedRef(actor.LikedContent, contentID)
			}
		}
	}
	content.BookmarkCount = len(content.Bookmarks)

	return plan.Changed, nil
}

func (m *mockLedger) PurgeContent(ctx context.Context, contentID string) error {
	for _, a := range m.store.actors {
		a.Bookmarks = removeBookmarkRef(a.Bookmarks, contentID)
		a.LikedContent = removeLikedRef(a.LikedContent, contentID)
	}
	return nil
}

func (m *mockLedger) PurgeActor(ctx context.Context, actorID string) error {
	for _, c := range m.store.contents {
		c.Bookmarks = removeBookmarkEntry(c.Bookmarks, actorID)
		c.Likes = removeLikeEntry(c.Likes, actorID)
		c.BookmarkCount = len(c.Bookmarks)
	}
	return nil
}

func (m *mockLedger) ReconcileActor(ctx context.Context, actorID string) (int, error) {
	actor, ok := m.store.actors[actorID]
	if !ok {
		return 0, domain.NotFoundError{Resource: "actor", ID: actorID}
	}

	candidates := actor.EngagedContentIDs()
	for id, c := range m.store.contents {
		if c.HasLikeFrom(actorID) || c.HasBookmarkFrom(actorID) {
			candidates = append(candidates, id)
		}
	}
	candidates = domain.DedupOrdered(candidates)
	sort.Strings(candidates)

	healed := 0
	now := time.Now().UTC()
	for _, id := range candidates {
		content, exists := m.store.contents[id]

		var onContentLike, onContentMark bool
		if exists {
			onContentLike = content.HasLikeFrom(actorID)
			onContentMark = content.HasBookmarkFrom(actorID)
		}

		likes := domain.PlanRepair(exists, onContentLike, actor.HasLiked(id))
		if likes.AddContentSide {
			content.Likes = append(content.Likes, domain.LikeEntry{ActorID: actorID, LikedAt: now})
		}
		if likes.AddActorSide {
			actor.LikedContent = append(actor.LikedContent, domain.LikedRef{ContentID: id})
		}
		if likes.DropActorSide {
			actor.LikedContent = removeLikedRef(actor.LikedContent, id)
		}
		if likes.Dirty() {
			healed++
		}

		marks := domain.PlanRepair(exists, onContentMark, actor.HasBookmarked(id))
		if marks.AddContentSide {
			content.Bookmarks = append(content.Bookmarks, domain.BookmarkEntry{ActorID: actorID, BookmarkedAt: now})
			content.BookmarkCount = len(content.Bookmarks)
		}
		if marks.AddActorSide {
			actor.Bookmarks = append(actor.Bookmarks, domain.BookmarkRef{ContentID: id, BookmarkedAt: now})
		}
		if marks.DropActorSide {
			actor.Bookmarks = removeBookmarkRef(actor.Bookmarks, id)
		}
		if marks.Dirty() {
			healed++
		}
	}
	return healed, nil
}

func removeBookmarkEntry(entries []domain.BookmarkEntry, actorID string) []domain.BookmarkEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.ActorID != actorID {
			out = append(out, e)
		}
	}
	return out
}

func removeLikeEntry(entries []domain.LikeEntry, actorID string) []domain.LikeEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.ActorID != actorID {
			out = append(out, e)
		}
	}
	return out
}

func removeBookmarkRef(refs []domain.BookmarkRef, contentID string) []domain.BookmarkRef {
	out := refs[:0]
	for _, r := range refs {
		if r.ContentID != contentID {
			out = append(out, r)
		}
	}
	return out
}

func removeLikedRef(refs []domain.LikedRef, contentID string) []domain.LikedRef {
	out := refs[:0]
	for _, r := range refs {
		if r.ContentID != contentID {
			out = append(out, r)
		}
	}
	return out
}

type mockCollectionRepo struct {
	cols map[string]*domain.Collection
}

func newMockCollectionRepo() *mockCollectionRepo {
	return &mockCollectionRepo{cols: map[string]*domain.Collection{}}
}

func (m *mockCollectionRepo) Create(ctx context.Context, col domain.Collection) error {
	cp := col
	m.cols[col.ID] = &cp
	return nil
}

func (m *mockCollectionRepo) GetByID(ctx context.Context, actorID, id string) (domain.Collection, error) {
	col, ok := m.cols[id]
	if !ok || col.ActorID != actorID {
		return domain.Collection{}, domain.NotFoundError{Resource: "collection"}
	}
	return *col, nil
}

func (m *mockCollectionRepo) ListByActor(ctx context.Context, actorID string) ([]domain.Collection, error) {
	var out []domain.Collection
	for _, col := range m.cols {
		if col.ActorID == actorID {
			out = append(out, *col)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCollectionRepo) Update(ctx context.Context, col domain.Collection) error {
	existing, ok := m.cols[col.ID]
	if !ok || existing.ActorID != col.ActorID {
		return domain.NotFoundError{Resource: "collection"}
	}
	cp := col
	m.cols[col.ID] = &cp
	return nil
}

func (m *mockCollectionRepo) Delete(ctx context.Context, actorID, id string) error {
	if col, ok := m.cols[id]; ok && col.ActorID == actorID {
		delete(m.cols, id)
	}
	return nil
}

func (m *mockCollectionRepo) UpsertByName(ctx context.Context, col domain.Collection) (string, error) {
	for id, existing := range m.cols {
		if existing.ActorID == col.ActorID && existing.Name == col.Name {
			existing.ContentIDs = col.ContentIDs
			existing.Description = col.Description
			existing.MDate = time.Now().UTC()
			return id, nil
		}
	}
	cp := col
	m.cols[col.ID] = &cp
	return col.ID, nil
}

func (m *mockCollectionRepo) RemoveContentEverywhere(ctx context.Context, contentID string) error {
	for _, col := range m.cols {
		out := col.ContentIDs[:0]
		for _, id := range col.ContentIDs {
			if id != contentID {
				out = append(out, id)
			}
		}
		col.ContentIDs = out
	}
	return nil
}

func (m *mockCollectionRepo) DeleteByActor(ctx context.Context, actorID string) error {
	for id, col := range m.cols {
		if col.ActorID == actorID {
			delete(m.cols, id)
		}
	}
	return nil
}

type mockPublisher struct {
	events []domain.EngagementEvent
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.EngagementEvent) error {
	m.events = append(m.events, event)
	return nil
}
