package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
	"github.com/sahzadahmad246/unmatchedlines/internal/infrastructure/database/models"
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func collectionModel(c domain.Collection) models.Collection {
	return models.Collection{
		ID:          c.ID,
		ActorID:     c.ActorID,
		Name:        c.Name,
		Description: c.Description,
		ContentIDs:  c.ContentIDs,
		System:      c.System,
	}
}

func collectionDomain(m models.Collection) domain.Collection {
	ids := []string(m.ContentIDs)
	if ids == nil {
		ids = []string{}
	}
	return domain.Collection{
		ID:          m.ID,
		ActorID:     m.ActorID,
		Name:        m.Name,
		Description: m.Description,
		ContentIDs:  ids,
		System:      m.System,
		CDate:       m.CDate,
		MDate:       m.MDate,
	}
}

func (r *CollectionRepository) Create(ctx context.Context, col domain.Collection) error {
	model := collectionModel(col)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *CollectionRepository) GetByID(ctx context.Context, actorID, id string) (domain.Collection, error) {
	var model models.Collection
	err := r.db.WithContext(ctx).
		First(&model, "id = ? AND actor_id = ?", id, actorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Collection{}, domain.NotFoundError{Resource: "collection", ID: id}
		}
		return domain.Collection{}, err
	}
	return collectionDomain(model), nil
}

func (r *CollectionRepository) ListByActor(ctx context.Context, actorID string) ([]domain.Collection, error) {
	var rows []models.Collection
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("c_date, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Collection, 0, len(rows))
	for _, row := range rows {
		out = append(out, collectionDomain(row))
	}
	return out, nil
}

func (r *CollectionRepository) Update(ctx context.Context, col domain.Collection) error {
	model := collectionModel(col)
	result := r.db.WithContext(ctx).Model(&models.Collection{}).
		Where("id = ? AND actor_id = ?", col.ID, col.ActorID).
		Select("name", "description", "content_ids", "m_date").
		Updates(&models.Collection{
			Name:        model.Name,
			Description: model.Description,
			ContentIDs:  model.ContentIDs,
			MDate:       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "collection", ID: col.ID}
	}
	return nil
}

func (r *CollectionRepository) Delete(ctx context.Context, actorID, id string) error {
	return r.db.WithContext(ctx).
		Delete(&models.Collection{}, "id = ? AND actor_id = ?", id, actorID).Error
}

// UpsertByName replaces the same-named system collection in place. The
// insert races through the partial unique index on (actor_id, name) where
// system, so two concurrent refreshes converge on a single row; a plain
// row lock cannot serialize the not-yet-inserted case.
func (r *CollectionRepository) UpsertByName(ctx context.Context, col domain.Collection) (string, error) {
	id := col.ID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := collectionModel(col)
		err := tx.Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "actor_id"}, {Name: "name"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "system"}}},
			DoUpdates: clause.Assignments(map[string]any{
				"description": col.Description,
				"content_ids": model.ContentIDs,
				"m_date":      time.Now().UTC(),
			}),
		}).Create(&model).Error
		if err != nil {
			return err
		}

		// The conflict path keeps the existing row's id, not the one on
		// the insert candidate.
		var existing models.Collection
		err = tx.Select("id").
			First(&existing, "actor_id = ? AND name = ? AND system", col.ActorID, col.Name).Error
		if err != nil {
			return err
		}
		id = existing.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// RemoveContentEverywhere strips a deleted work from every collection.
func (r *CollectionRepository) RemoveContentEverywhere(ctx context.Context, contentID string) error {
	return r.db.WithContext(ctx).Model(&models.Collection{}).
		Where("? = ANY(content_ids)", contentID).
		Updates(map[string]any{
			"content_ids": gorm.Expr("array_remove(content_ids, ?)", contentID),
			"m_date":      time.Now().UTC(),
		}).Error
}

func (r *CollectionRepository) DeleteByActor(ctx context.Context, actorID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.Collection{}, "actor_id = ?", actorID).Error
}
