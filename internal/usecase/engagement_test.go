package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

func seedEngagement(t *testing.T) (*memStore, *EngagementUsecase, *mockPublisher) {
	t.Helper()
	store := newMemStore()
	store.contents["c1"] = &domain.Content{ID: "c1", Status: domain.StatusPublished}
	store.actors["a1"] = &domain.Actor{ID: "a1", Name: "Reader"}
	store.actors["a2"] = &domain.Actor{ID: "a2", Name: "Other"}
	pub := &mockPublisher{}
	uc := NewEngagementUsecase(&mockLedger{store: store}, pub)
	return store, uc, pub
}

func TestBookmarkScenarioWalk(t *testing.T) {
	store, uc, _ := seedEngagement(t)
	ctx := context.Background()

	res, err := uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementAdd, "a1", "c1")
	if err != nil || !res.Changed {
		t.Fatalf("first add: expected changed=true, got %+v err=%v", res, err)
	}

	res, err = uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementAdd, "a1", "c1")
	if err != nil || res.Changed {
		t.Fatalf("second add: expected changed=false, got %+v err=%v", res, err)
	}
	if n := len(store.contents["c1"].Bookmarks); n != 1 {
		t.Fatalf("expected no duplicate bookmark, got %d entries", n)
	}
	if store.contents["c1"].BookmarkCount != 1 {
		t.Fatalf("expected bookmarkCount 1, got %d", store.contents["c1"].BookmarkCount)
	}

	res, err = uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementRemove, "a1", "c1")
	if err != nil || !res.Changed {
		t.Fatalf("remove: expected changed=true, got %+v err=%v", res, err)
	}

	res, err = uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementRemove, "a1", "c1")
	if err != nil || res.Changed {
		t.Fatalf("second remove: expected changed=false, got %+v err=%v", res, err)
	}

	if store.contents["c1"].BookmarkCount != 0 {
		t.Fatalf("expected bookmarkCount 0, got %d", store.contents["c1"].BookmarkCount)
	}
	if len(store.actors["a1"].Bookmarks) != 0 {
		t.Fatalf("expected empty actor bookmarks, got %v", store.actors["a1"].Bookmarks)
	}
}

func TestToggleKeepsBothSidesSymmetric(t *testing.T) {
	store, uc, _ := seedEngagement(t)
	ctx := context.Background()

	ops := []domain.EngagementAction{
		domain.EngagementAdd, domain.EngagementAdd, domain.EngagementRemove,
		domain.EngagementAdd, domain.EngagementRemove, domain.EngagementRemove,
		domain.EngagementAdd,
	}
	for _, op := range ops {
		if _, err := uc.Toggle(ctx, domain.EngagementBookmark, op, "a1", "c1"); err != nil {
			t.Fatalf("toggle %s failed: %v", op, err)
		}
		onContent := store.contents["c1"].HasBookmarkFrom("a1")
		onActor := store.actors["a1"].HasBookmarked("c1")
		if onContent != onActor {
			t.Fatalf("sides diverged after %s: content=%v actor=%v", op, onContent, onActor)
		}
		if store.contents["c1"].BookmarkCount != len(store.contents["c1"].Bookmarks) {
			t.Fatalf("counter drifted from list after %s", op)
		}
	}
}

func TestLikeCountDerivedFromList(t *testing.T) {
	store, uc, _ := seedEngagement(t)
	ctx := context.Background()

	for _, actor := range []string{"a1", "a2"} {
		if _, err := uc.Toggle(ctx, domain.EngagementLike, domain.EngagementAdd, actor, "c1"); err != nil {
			t.Fatalf("like failed: %v", err)
		}
	}
	if got := store.contents["c1"].LikeCount(); got != 2 {
		t.Fatalf("expected like count 2, got %d", got)
	}
	if _, err := uc.Toggle(ctx, domain.EngagementLike, domain.EngagementRemove, "a1", "c1"); err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if got := store.contents["c1"].LikeCount(); got != 1 {
		t.Fatalf("expected like count 1, got %d", got)
	}
}

func TestToggleUnknownContent(t *testing.T) {
	_, uc, _ := seedEngagement(t)
	_, err := uc.Toggle(context.Background(), domain.EngagementBookmark, domain.EngagementAdd, "a1", "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestToggleValidation(t *testing.T) {
	_, uc, _ := seedEngagement(t)
	_, err := uc.Toggle(context.Background(), domain.EngagementBookmark, "flip", "a1", "c1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	_, err = uc.Toggle(context.Background(), domain.EngagementBookmark, domain.EngagementAdd, "", "c1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ValidationError for empty actor, got %v", err)
	}
}

func TestTogglePublishesOnlyOnChange(t *testing.T) {
	_, uc, pub := seedEngagement(t)
	ctx := context.Background()

	uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementAdd, "a1", "c1")
	uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementAdd, "a1", "c1")
	uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementRemove, "a1", "c1")

	if len(pub.events) != 2 {
		t.Fatalf("expected 2 events (add, remove), got %d", len(pub.events))
	}
	if pub.events[0].Action != domain.EngagementAdd || pub.events[1].Action != domain.EngagementRemove {
		t.Fatalf("unexpected event actions: %+v", pub.events)
	}
}

func TestPurgeContentCascades(t *testing.T) {
	store, uc, _ := seedEngagement(t)
	ctx := context.Background()

	for _, actor := range []string{"a1", "a2"} {
		uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementAdd, actor, "c1")
	}

	if err := uc.PurgeContent(ctx, "c1"); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	for _, actor := range []string{"a1", "a2"} {
		if store.actors[actor].HasBookmarked("c1") {
			t.Fatalf("actor %s still references purged content", actor)
		}
	}
}

func TestPurgeActorRecomputesCounts(t *testing.T) {
	store, uc, _ := seedEngagement(t)
	ctx := context.Background()

	uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementAdd, "a1", "c1")
	uc.Toggle(ctx, domain.EngagementBookmark, domain.EngagementAdd, "a2", "c1")
	uc.Toggle(ctx, domain.EngagementLike, domain.EngagementAdd, "a1", "c1")

	if err := uc.PurgeActor(ctx, "a1"); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	c := store.contents["c1"]
	if c.HasBookmarkFrom("a1") || c.HasLikeFrom("a1") {
		t.Fatalf("content still references purged actor")
	}
	if c.BookmarkCount != 1 {
		t.Fatalf("expected bookmarkCount 1 after purge, got %d", c.BookmarkCount)
	}
}
