package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/lib/pq"
	"github.com/zeebo/xxh3"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
	"github.com/sahzadahmad246/unmatchedlines/internal/infrastructure/database/models"
)

type ContentRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewContentRepository(db *gorm.DB, mc *memcache.Client) *ContentRepository {
	return &ContentRepository{db: db, mc: mc}
}

func contentModel(c domain.Content) models.Content {
	return models.Content{
		ID:            c.ID,
		AuthorID:      c.Author.ID(),
		Title:         c.Title,
		Body:          c.Body,
		Summary:       c.Summary,
		DidYouKnow:    c.DidYouKnow,
		FAQs:          c.FAQs,
		Topics:        c.Topics,
		Category:      string(c.Category),
		Status:        string(c.Status),
		CoverImage:    c.CoverImage,
		SlugEn:        c.Slug.En,
		SlugHi:        c.Slug.Hi,
		SlugUr:        c.Slug.Ur,
		Likes:         c.Likes,
		Bookmarks:     c.Bookmarks,
		BookmarkCount: c.BookmarkCount,
		ViewsCount:    c.ViewsCount,
	}
}

func contentDomain(m models.Content) domain.Content {
	likes := m.Likes
	if likes == nil {
		likes = []domain.LikeEntry{}
	}
	bookmarks := m.Bookmarks
	if bookmarks == nil {
		bookmarks = []domain.BookmarkEntry{}
	}
	return domain.Content{
		ID:            m.ID,
		Author:        domain.Unresolved[domain.Actor](m.AuthorID),
		Title:         m.Title,
		Body:          m.Body,
		Summary:       m.Summary,
		DidYouKnow:    m.DidYouKnow,
		FAQs:          m.FAQs,
		Topics:        m.Topics,
		Category:      domain.Category(m.Category),
		Status:        domain.Status(m.Status),
		CoverImage:    m.CoverImage,
		Slug:          domain.Localized{En: m.SlugEn, Hi: m.SlugHi, Ur: m.SlugUr},
		Likes:         likes,
		Bookmarks:     bookmarks,
		BookmarkCount: m.BookmarkCount,
		ViewsCount:    m.ViewsCount,
		CDate:         m.CDate,
		MDate:         m.MDate,
	}
}

func slugCacheKey(slug string) string {
	return fmt.Sprintf("slug:%x", xxh3.HashString(slug))
}

func (r *ContentRepository) Create(ctx context.Context, content domain.Content) error {
	model := contentModel(content)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ValidationError{Field: "slug", Reason: "slug already taken"}
		}
		return err
	}
	return nil
}

func (r *ContentRepository) GetByID(ctx context.Context, id string) (domain.Content, error) {
	var model models.Content
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Content{}, domain.NotFoundError{Resource: "content", ID: id}
		}
		return domain.Content{}, err
	}
	return contentDomain(model), nil
}

// GetBySlug consults the memcached slug index first; misses fall through to
// a three-column scan and repopulate the index.
func (r *ContentRepository) GetBySlug(ctx context.Context, slug string) (domain.Content, error) {
	if item, err := r.mc.Get(slugCacheKey(slug)); err == nil {
		content, err := r.GetByID(ctx, string(item.Value))
		if err == nil {
			return content, nil
		}
		// stale mapping, drop it and rescan
		r.mc.Delete(slugCacheKey(slug))
	}

	var model models.Content
	err := r.db.WithContext(ctx).
		First(&model, "slug_en = ? OR slug_hi = ? OR slug_ur = ?", slug, slug, slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Content{}, domain.NotFoundError{Resource: "content", ID: slug}
		}
		return domain.Content{}, err
	}

	if err := r.mc.Set(&memcache.Item{Key: slugCacheKey(slug), Value: []byte(model.ID)}); err != nil {
		slog.WarnContext(ctx, "failed to cache slug mapping",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
			slog.String("module", "repository"),
		)
	}

	return contentDomain(model), nil
}

func (r *ContentRepository) Update(ctx context.Context, content domain.Content) error {
	var prev models.Content
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prev, "id = ?", content.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "content", ID: content.ID}
			}
			return err
		}
		model := contentModel(content)
		return tx.Model(&models.Content{}).Where("id = ?", content.ID).
			Select("*").Omit("id", "c_date").Updates(&model).Error
	})
	if err != nil {
		return err
	}

	// A slug change leaves the old mapping behind; evict it.
	for _, old := range []string{prev.SlugEn, prev.SlugHi, prev.SlugUr} {
		if old != "" {
			r.mc.Delete(slugCacheKey(old))
		}
	}
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	var model models.Content
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err == nil {
		for _, s := range []string{model.SlugEn, model.SlugHi, model.SlugUr} {
			if s != "" {
				r.mc.Delete(slugCacheKey(s))
			}
		}
	}
	return r.db.WithContext(ctx).Delete(&models.Content{}, "id = ?", id).Error
}

func (r *ContentRepository) ListPublished(ctx context.Context, page, limit int) ([]domain.Content, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("status = ?", string(domain.StatusPublished)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []models.Content
	err = r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusPublished)).
		Order("c_date DESC, id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Content, 0, len(rows))
	for _, row := range rows {
		out = append(out, contentDomain(row))
	}
	return out, total, nil
}

func (r *ContentRepository) SlugExists(ctx context.Context, candidate string, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("(slug_en = ? OR slug_hi = ? OR slug_ur = ?)", candidate, candidate, candidate)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ContentRepository) FilterExisting(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	var found []string
	err := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}

	out := make([]string, 0, len(found))
	for _, id := range ids {
		if _, ok := existing[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *ContentRepository) FindPublishedByTopics(ctx context.Context, topics []string, excludeIDs []string, limit int) ([]string, error) {
	if len(topics) == 0 {
		return []string{}, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("status = ?", string(domain.StatusPublished)).
		Where("(topics && ? OR category IN ?)", pq.StringArray(topics), topics)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var ids []string
	err := query.Order("id").Limit(limit).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *ContentRepository) FindRecentPublished(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("status = ?", string(domain.StatusPublished)).
		Order("c_date DESC, id").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *ContentRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// GetMeta serves the curation engine's metadata reads straight from the
// database; the caching layer sits in front of this.
func (r *ContentRepository) GetMeta(ctx context.Context, ids []string) ([]domain.ContentMeta, error) {
	if len(ids) == 0 {
		return []domain.ContentMeta{}, nil
	}

	var rows []models.Content
	err := r.db.WithContext(ctx).
		Select("id", "topics", "category").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Content, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	out := make([]domain.ContentMeta, 0, len(rows))
	for _, id := range ids {
		row, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, domain.ContentMeta{
			ID:       row.ID,
			Topics:   row.Topics,
			Category: domain.Category(row.Category),
		})
	}
	return out, nil
}
