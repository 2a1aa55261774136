package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
	"github.com/sahzadahmad246/unmatchedlines/internal/infrastructure/database/models"
)

// EngagementRepository executes dual-side engagement mutations. Every write
// path locks the content row first, then the actor row; the fixed order
// serializes concurrent toggles on the same pair and defeats deadlocks.
type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

func (r *EngagementRepository) Toggle(ctx context.Context, kind domain.EngagementKind, action domain.EngagementAction, actorID, contentID string) (bool, error) {
	var changed bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contentRow models.Content
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&contentRow, "id = ?", contentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "content", ID: contentID}
			}
			return err
		}

		var actorRow models.Actor
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&actorRow, "id = ?", actorID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "actor", ID: actorID}
			}
			return err
		}

		content := contentDomain(contentRow)
		actor := actorDomain(actorRow)

		var onContent, onActor bool
		if kind == domain.EngagementBookmark {
			onContent = content.HasBookmarkFrom(actorID)
			onActor = actor.HasBookmarked(contentID)
		} else {
			onContent = content.HasLikeFrom(actorID)
			onActor = actor.HasLiked(contentID)
		}

		plan := domain.PlanEngagement(action, onContent, onActor)
		if plan.Healed {
			slog.InfoContext(ctx, "inconsistent engagement healed",
				slog.String("actorId", actorID),
				slog.String("contentId", contentID),
				slog.String("kind", string(kind)),
				slog.String("module", "engagement"),
			)
		}

		now := time.Now().UTC()

		if plan.WriteContentSide {
			if kind == domain.EngagementBookmark {
				if action == domain.EngagementAdd {
					content.Bookmarks = append(content.Bookmarks, domain.BookmarkEntry{ActorID: actorID, BookmarkedAt: now})
				} else {
					content.Bookmarks = dropBookmarkEntry(content.Bookmarks, actorID)
				}
			} else {
				if action == domain.EngagementAdd {
					content.Likes = append(content.Likes, domain.LikeEntry{ActorID: actorID, LikedAt: now})
				} else {
					content.Likes = dropLikeEntry(content.Likes, actorID)
				}
			}
		}
		if plan.WriteActorSide {
			if kind == domain.EngagementBookmark {
				if action == domain.EngagementAdd {
					actor.Bookmarks = append(actor.Bookmarks, domain.BookmarkRef{ContentID: contentID, BookmarkedAt: now})
				} else {
					actor.Bookmarks = dropBookmarkRef(actor.Bookmarks, contentID)
				}
			} else {
				if action == domain.EngagementAdd {
					actor.LikedContent = append(actor.LikedContent, domain.LikedRef{ContentID: contentID})
				} else {
					actor.LikedContent = dropLikedRef(actor.LikedContent, contentID)
				}
			}
		}

		// A fully idempotent repeat writes neither row.
		if plan.WriteContentSide {
			if err := saveContentEngagement(tx, contentID, content); err != nil {
				return err
			}
		}
		if plan.WriteActorSide {
			if err := saveActorEngagement(tx, actorID, actor); err != nil {
				return err
			}
		}

		changed = plan.Changed
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// PurgeContent strips a deleted work from every actor's engagement lists.
func (r *EngagementRepository) PurgeContent(ctx context.Context, contentID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.Actor
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("(liked_content @> ? OR bookmarks @> ?)",
				likedRefJSON(contentID), bookmarkRefJSON(contentID)).
			Find(&rows).Error
		if err != nil {
			return err
		}

		for _, row := range rows {
			actor := actorDomain(row)
			actor.LikedContent = dropLikedRef(actor.LikedContent, contentID)
			actor.Bookmarks = dropBookmarkRef(actor.Bookmarks, contentID)
			if err := saveActorEngagement(tx, actor.ID, actor); err != nil {
				return err
			}
		}
		return nil
	})
}

// PurgeActor strips a deleted actor from every work's engagement lists and
// recomputes the bookmark counters.
func (r *EngagementRepository) PurgeActor(ctx context.Context, actorID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.Content
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("(likes @> ? OR bookmarks @> ?)",
				likeEntryJSON(actorID), bookmarkEntryJSON(actorID)).
			Find(&rows).Error
		if err != nil {
			return err
		}

		for _, row := range rows {
			content := contentDomain(row)
			content.Likes = dropLikeEntry(content.Likes, actorID)
			content.Bookmarks = dropBookmarkEntry(content.Bookmarks, actorID)
			if err := saveContentEngagement(tx, content.ID, content); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReconcileActor heals one-sided engagement relations touching one actor.
// Existence is judged either-side, so healing always completes the missing
// side rather than dropping the present one. Returns the number of sides
// written.
func (r *EngagementRepository) ReconcileActor(ctx context.Context, actorID string) (int, error) {
	healed := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock ordering everywhere is content first, then actor. Collect the
		// candidate work ids without locks, then lock them in the fixed order.
		var actorRow models.Actor
		err := tx.First(&actorRow, "id = ?", actorID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "actor", ID: actorID}
			}
			return err
		}
		actorSnapshot := actorDomain(actorRow)

		var contentSideIDs []string
		err = tx.Model(&models.Content{}).
			Where("(likes @> ? OR bookmarks @> ?)",
				likeEntryJSON(actorID), bookmarkEntryJSON(actorID)).
			Pluck("id", &contentSideIDs).Error
		if err != nil {
			return err
		}

		candidates := domain.DedupOrdered(append(actorSnapshot.EngagedContentIDs(), contentSideIDs...))
		if len(candidates) == 0 {
			return nil
		}

		var contentRows []models.Content
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", candidates).
			Order("id").
			Find(&contentRows).Error
		if err != nil {
			return err
		}

		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&actorRow, "id = ?", actorID).Error
		if err != nil {
			return err
		}
		actor := actorDomain(actorRow)

		existing := make(map[string]struct{}, len(contentRows))
		now := time.Now().UTC()
		actorDirty := false

		for i := range contentRows {
			content := contentDomain(contentRows[i])
			existing[content.ID] = struct{}{}
			contentDirty := false

			likes := domain.PlanRepair(true, content.HasLikeFrom(actorID), actor.HasLiked(content.ID))
			if likes.AddContentSide {
				content.Likes = append(content.Likes, domain.LikeEntry{ActorID: actorID, LikedAt: now})
				contentDirty = true
			}
			if likes.AddActorSide {
				actor.LikedContent = append(actor.LikedContent, domain.LikedRef{ContentID: content.ID})
				actorDirty = true
			}
			if likes.Dirty() {
				healed++
			}

			marks := domain.PlanRepair(true, content.HasBookmarkFrom(actorID), actor.HasBookmarked(content.ID))
			if marks.AddContentSide {
				content.Bookmarks = append(content.Bookmarks, domain.BookmarkEntry{ActorID: actorID, BookmarkedAt: now})
				contentDirty = true
			}
			if marks.AddActorSide {
				actor.Bookmarks = append(actor.Bookmarks, domain.BookmarkRef{ContentID: content.ID, BookmarkedAt: now})
				actorDirty = true
			}
			if marks.Dirty() {
				healed++
			}

			if contentDirty {
				if err := saveContentEngagement(tx, content.ID, content); err != nil {
					return err
				}
			}
		}

		// Dangling refs point at works that no longer exist.
		for _, id := range actor.EngagedContentIDs() {
			if _, ok := existing[id]; ok {
				continue
			}
			if domain.PlanRepair(false, false, actor.HasLiked(id)).DropActorSide {
				actor.LikedContent = dropLikedRef(actor.LikedContent, id)
				actorDirty = true
				healed++
			}
			if domain.PlanRepair(false, false, actor.HasBookmarked(id)).DropActorSide {
				actor.Bookmarks = dropBookmarkRef(actor.Bookmarks, id)
				actorDirty = true
				healed++
			}
		}

		if actorDirty {
			if err := saveActorEngagement(tx, actorID, actor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return healed, nil
}

// saveContentEngagement writes only the engagement columns. The counter is
// never trusted from the caller; it is recomputed from the list here.
func saveContentEngagement(tx *gorm.DB, contentID string, content domain.Content) error {
	return tx.Model(&models.Content{}).
		Where("id = ?", contentID).
		Select("likes", "bookmarks", "bookmark_count", "m_date").
		Updates(&models.Content{
			Likes:         content.Likes,
			Bookmarks:     content.Bookmarks,
			BookmarkCount: len(content.Bookmarks),
			MDate:         time.Now().UTC(),
		}).Error
}

func saveActorEngagement(tx *gorm.DB, actorID string, actor domain.Actor) error {
	return tx.Model(&models.Actor{}).
		Where("id = ?", actorID).
		Select("liked_content", "bookmarks", "m_date").
		Updates(&models.Actor{
			LikedContent: actor.LikedContent,
			Bookmarks:    actor.Bookmarks,
			MDate:        time.Now().UTC(),
		}).Error
}

func likedRefJSON(contentID string) string {
	return fmt.Sprintf(`[{"contentId":%s}]`, mustJSONString(contentID))
}

func bookmarkRefJSON(contentID string) string {
	return fmt.Sprintf(`[{"contentId":%s}]`, mustJSONString(contentID))
}

func likeEntryJSON(actorID string) string {
	return fmt.Sprintf(`[{"actorId":%s}]`, mustJSONString(actorID))
}

func bookmarkEntryJSON(actorID string) string {
	return fmt.Sprintf(`[{"actorId":%s}]`, mustJSONString(actorID))
}

func mustJSONString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func dropLikeEntry(entries []domain.LikeEntry, actorID string) []domain.LikeEntry {
	out := make([]domain.LikeEntry, 0, len(entries))
	for _, e := range entries {
		if e.ActorID != actorID {
			out = append(out, e)
		}
	}
	return out
}

func dropBookmarkEntry(entries []domain.BookmarkEntry, actorID string) []domain.BookmarkEntry {
	out := make([]domain.BookmarkEntry, 0, len(entries))
	for _, e := range entries {
		if e.ActorID != actorID {
			out = append(out, e)
		}
	}
	return out
}

func dropLikedRef(refs []domain.LikedRef, contentID string) []domain.LikedRef {
	out := make([]domain.LikedRef, 0, len(refs))
	for _, r := range refs {
		if r.ContentID != contentID {
			out = append(out, r)
		}
	}
	return out
}

func dropBookmarkRef(refs []domain.BookmarkRef, contentID string) []domain.BookmarkRef {
	out := make([]domain.BookmarkRef, 0, len(refs))
	for _, r := range refs {
		if r.ContentID != contentID {
			out = append(out, r)
		}
	}
	return out
}
