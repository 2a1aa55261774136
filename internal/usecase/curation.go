package usecase

import (
	"context"
	"log/slog"
	"sort"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
	"github.com/sahzadahmad246/unmatchedlines/internal/utils"
)

// CurationResult reports what the refresh materialized.
type CurationResult struct {
	CollectionID string   `json:"collectionId"`
	TopTopics    []string `json:"topTopics,omitempty"`
	ContentIDs   []string `json:"contentIds"`
	ColdStart    bool     `json:"coldStart"`
}

// CurationUsecase derives a ranked topic profile from an actor's engagement
// history and materializes it as the system collection.
type CurationUsecase struct {
	actors      ActorRepository
	contents    ContentRepository
	meta        ContentMetaGateway
	collections *CollectionUsecase
	ledger      EngagementRepository
}

func NewCurationUsecase(
	actors ActorRepository,
	contents ContentRepository,
	meta ContentMetaGateway,
	collections *CollectionUsecase,
	ledger EngagementRepository,
) *CurationUsecase {
	return &CurationUsecase{
		actors:      actors,
		contents:    contents,
		meta:        meta,
		collections: collections,
		ledger:      ledger,
	}
}

// Refresh recomputes the actor's "Curated for You" collection. The read may
// observe a slightly stale engagement snapshot; curation is advisory.
func (uc *CurationUsecase) Refresh(ctx context.Context, actorID string) (CurationResult, error) {
	ctx, span := tracer.Start(ctx, "Curation.Refresh")
	defer span.End()

	// Read-repair: heal one-sided relations before using the snapshot.
	if healed, err := uc.ledger.ReconcileActor(ctx, actorID); err != nil {
		span.RecordError(err)
		return CurationResult{}, err
	} else if healed > 0 {
		slog.InfoContext(ctx, "inconsistent engagement healed",
			slog.String("actorId", actorID),
			slog.Int("sides", healed),
			slog.String("module", "curation"),
		)
	}

	actor, err := uc.actors.GetByID(ctx, actorID)
	if err != nil {
		return CurationResult{}, err
	}

	engaged := actor.EngagedContentIDs()
	result := CurationResult{}

	if len(engaged) == 0 {
		ids, err := uc.contents.FindRecentPublished(ctx, domain.CurationLimit)
		if err != nil {
			span.RecordError(err)
			return CurationResult{}, err
		}
		result.ContentIDs = ids
		result.ColdStart = true
	} else {
		metas, err := uc.meta.GetMeta(ctx, engaged)
		if err != nil {
			span.RecordError(err)
			return CurationResult{}, err
		}

		top := RankTopics(metas, domain.CurationTopTopics)
		ids, err := uc.contents.FindPublishedByTopics(ctx, top, engaged, domain.CurationLimit)
		if err != nil {
			span.RecordError(err)
			return CurationResult{}, err
		}
		result.TopTopics = top
		result.ContentIDs = ids
	}

	id, err := uc.collections.UpsertSystem(ctx, actorID,
		domain.CuratedCollectionName, result.ContentIDs, domain.CuratedCollectionDescription)
	if err != nil {
		span.RecordError(err)
		return CurationResult{}, err
	}
	result.CollectionID = id

	return result, nil
}

// RankTopics flattens the works' topic sets into one multiset (falling back
// to category when a work has no topics), counts frequency, and returns the
// top n topics by descending frequency. Ties break by first-seen order.
func RankTopics(metas []domain.ContentMeta, n int) []string {
	freq := utils.OrderedKVMap[int]{}
	var next int64

	bump := func(topic string) {
		if topic == "" {
			return
		}
		kv, ok := freq[topic]
		if !ok {
			kv = utils.OrderedKV[int]{Order: next}
			next++
		}
		kv.Value++
		freq[topic] = kv
	}

	for _, m := range metas {
		if len(m.Topics) > 0 {
			for _, t := range m.Topics {
				bump(t)
			}
			continue
		}
		bump(string(m.Category))
	}

	topics := freq.Keys()
	sort.SliceStable(topics, func(i, j int) bool {
		return freq[topics[i]].Value > freq[topics[j]].Value
	})

	if len(topics) > n {
		topics = topics[:n]
	}
	return topics
}
