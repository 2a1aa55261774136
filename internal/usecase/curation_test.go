package usecase

import (
	"context"
	"testing"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

func seedCuration(t *testing.T) (*memStore, *mockCollectionRepo, *CurationUsecase) {
	t.Helper()
	store := newMemStore()
	store.actors["a1"] = &domain.Actor{ID: "a1", Name: "Reader", Role: domain.RoleReader}

	contents := &mockContentRepo{store: store}
	cols := newMockCollectionRepo()
	colUC := NewCollectionUsecase(cols, contents)
	uc := NewCurationUsecase(&mockActorRepo{store: store}, contents, contents, colUC, &mockLedger{store: store})
	return store, cols, uc
}

func addPublished(store *memStore, id string, category domain.Category, topics ...string) {
	store.contents[id] = &domain.Content{
		ID:       id,
		Status:   domain.StatusPublished,
		Category: category,
		Topics:   topics,
	}
}

func TestRankTopicsFrequencyAndOrder(t *testing.T) {
	metas := []domain.ContentMeta{
		{ID: "p1", Topics: []string{"love", "life"}},
		{ID: "p2", Topics: []string{"love"}},
	}
	got := RankTopics(metas, 3)
	if len(got) != 2 || got[0] != "love" || got[1] != "life" {
		t.Fatalf("expected [love life], got %v", got)
	}
}

func TestRankTopicsCategoryFallback(t *testing.T) {
	metas := []domain.ContentMeta{
		{ID: "p1", Category: domain.CategoryGhazal},
		{ID: "p2", Topics: []string{"grief"}, Category: domain.CategoryNazm},
	}
	got := RankTopics(metas, 3)
	if len(got) != 2 || got[0] != "ghazal" || got[1] != "grief" {
		t.Fatalf("expected category fallback ranking [ghazal grief], got %v", got)
	}
}

func TestRankTopicsTieBreaksFirstSeen(t *testing.T) {
	metas := []domain.ContentMeta{
		{ID: "p1", Topics: []string{"rain", "dusk", "sea"}},
		{ID: "p2", Topics: []string{"sea", "dusk", "rain"}},
	}
	for i := 0; i < 20; i++ {
		got := RankTopics(metas, 3)
		if len(got) != 3 || got[0] != "rain" || got[1] != "dusk" || got[2] != "sea" {
			t.Fatalf("tie break must follow first-seen order, got %v", got)
		}
	}
}

func TestRefreshCuratesByTopicProfile(t *testing.T) {
	store, cols, uc := seedCuration(t)
	ctx := context.Background()

	addPublished(store, "p1", domain.CategoryPoem, "love", "life")
	addPublished(store, "p2", domain.CategoryPoem, "love")
	addPublished(store, "p3", domain.CategoryPoem, "love")
	addPublished(store, "p4", domain.CategoryPoem, "life")
	addPublished(store, "p5", domain.CategoryPoem, "war")

	store.actors["a1"].LikedContent = []domain.LikedRef{{ContentID: "p1"}, {ContentID: "p2"}}

	result, err := uc.Refresh(ctx, "a1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if result.ColdStart {
		t.Fatal("actor has engagement, refresh must not cold start")
	}
	if len(result.TopTopics) != 2 || result.TopTopics[0] != "love" || result.TopTopics[1] != "life" {
		t.Fatalf("expected topic profile [love life], got %v", result.TopTopics)
	}
	for _, id := range result.ContentIDs {
		if id == "p1" || id == "p2" {
			t.Fatalf("engaged work %s must be excluded from curation", id)
		}
	}
	if len(result.ContentIDs) != 2 {
		t.Fatalf("expected p3 and p4 curated, got %v", result.ContentIDs)
	}

	col := cols.cols[result.CollectionID]
	if col == nil || !col.System || col.Name != domain.CuratedCollectionName {
		t.Fatalf("expected materialized system collection, got %+v", col)
	}
}

func TestRefreshColdStart(t *testing.T) {
	store, _, uc := seedCuration(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		addPublished(store, id, domain.CategoryPoem, "love")
	}

	result, err := uc.Refresh(ctx, "a1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if !result.ColdStart {
		t.Fatal("actor with no engagement must cold start")
	}
	if len(result.TopTopics) != 0 {
		t.Fatalf("cold start has no topic profile, got %v", result.TopTopics)
	}
	if len(result.ContentIDs) != 3 {
		t.Fatalf("expected recent published works, got %v", result.ContentIDs)
	}
}

func TestRefreshClampsToLimit(t *testing.T) {
	store, _, uc := seedCuration(t)
	ctx := context.Background()

	addPublished(store, "seed", domain.CategoryPoem, "love")
	store.actors["a1"].LikedContent = []domain.LikedRef{{ContentID: "seed"}}
	for i := 0; i < 20; i++ {
		addPublished(store, string(rune('a'+i))+"-work", domain.CategoryPoem, "love")
	}

	result, err := uc.Refresh(ctx, "a1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if len(result.ContentIDs) != domain.CurationLimit {
		t.Fatalf("expected %d curated works, got %d", domain.CurationLimit, len(result.ContentIDs))
	}
}

func TestRefreshIsDeterministic(t *testing.T) {
	store, _, uc := seedCuration(t)
	ctx := context.Background()

	addPublished(store, "seed", domain.CategoryPoem, "love")
	store.actors["a1"].Bookmarks = []domain.BookmarkRef{{ContentID: "seed"}}
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		addPublished(store, id, domain.CategoryPoem, "love")
	}

	first, err := uc.Refresh(ctx, "a1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := uc.Refresh(ctx, "a1")
		if err != nil {
			t.Fatalf("refresh failed: %v", err)
		}
		if len(again.ContentIDs) != len(first.ContentIDs) {
			t.Fatalf("refresh must be deterministic, got %v then %v", first.ContentIDs, again.ContentIDs)
		}
		for j := range again.ContentIDs {
			if again.ContentIDs[j] != first.ContentIDs[j] {
				t.Fatalf("refresh must be deterministic, got %v then %v", first.ContentIDs, again.ContentIDs)
			}
		}
		if again.CollectionID != first.CollectionID {
			t.Fatal("repeated refresh must reuse the same collection")
		}
	}
}

func TestRefreshHealsOneSidedEngagement(t *testing.T) {
	store, _, uc := seedCuration(t)
	addPublished(store, "p1", domain.CategoryPoem, "love")
	addPublished(store, "p2", domain.CategoryPoem, "love")
	addPublished(store, "p3", domain.CategoryPoem, "love")

	// A like recorded on the actor side only and a bookmark recorded on
	// the content side only.
	store.actors["a1"].LikedContent = []domain.LikedRef{{ContentID: "p1"}}
	store.contents["p2"].Bookmarks = []domain.BookmarkEntry{{ActorID: "a1"}}
	store.contents["p2"].BookmarkCount = 1

	res, err := uc.Refresh(context.Background(), "a1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if !store.contents["p1"].HasLikeFrom("a1") {
		t.Fatalf("content side of the like must be completed")
	}
	if !store.actors["a1"].HasBookmarked("p2") {
		t.Fatalf("actor side of the bookmark must be completed")
	}

	// Healed works count as engagement: both are excluded, the rest of
	// the topic profile is curated.
	if len(res.ContentIDs) != 1 || res.ContentIDs[0] != "p3" {
		t.Fatalf("expected [p3], got %v", res.ContentIDs)
	}
}

func TestRefreshDropsDanglingRefs(t *testing.T) {
	store, _, uc := seedCuration(t)
	addPublished(store, "p1", domain.CategoryPoem, "love")

	// Both lists point at a work that no longer exists.
	store.actors["a1"].LikedContent = []domain.LikedRef{{ContentID: "gone"}}
	store.actors["a1"].Bookmarks = []domain.BookmarkRef{{ContentID: "gone"}}

	res, err := uc.Refresh(context.Background(), "a1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if len(store.actors["a1"].LikedContent) != 0 || len(store.actors["a1"].Bookmarks) != 0 {
		t.Fatalf("dangling references must be dropped, got %+v", store.actors["a1"])
	}
	if !res.ColdStart {
		t.Fatalf("an actor with only dangling references has no usable signal")
	}
}
