package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
	"github.com/sahzadahmad246/unmatchedlines/internal/infrastructure/database/models"
)

type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func actorModel(a domain.Actor) models.Actor {
	return models.Actor{
		ID:           a.ID,
		Name:         a.Name,
		Slug:         a.Slug,
		Role:         string(a.Role),
		Bio:          a.Bio,
		Location:     a.Location,
		Interests:    a.Interests,
		LikedContent: a.LikedContent,
		Bookmarks:    a.Bookmarks,
	}
}

func actorDomain(m models.Actor) domain.Actor {
	liked := m.LikedContent
	if liked == nil {
		liked = []domain.LikedRef{}
	}
	bookmarks := m.Bookmarks
	if bookmarks == nil {
		bookmarks = []domain.BookmarkRef{}
	}
	return domain.Actor{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		Role:         domain.Role(m.Role),
		Bio:          m.Bio,
		Location:     m.Location,
		Interests:    m.Interests,
		LikedContent: liked,
		Bookmarks:    bookmarks,
		CDate:        m.CDate,
		MDate:        m.MDate,
	}
}

func (r *ActorRepository) Create(ctx context.Context, actor domain.Actor) error {
	model := actorModel(actor)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ValidationError{Field: "slug", Reason: "slug already taken"}
		}
		return err
	}
	return nil
}

func (r *ActorRepository) GetByID(ctx context.Context, id string) (domain.Actor, error) {
	var model models.Actor
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Actor{}, domain.NotFoundError{Resource: "actor", ID: id}
		}
		return domain.Actor{}, err
	}
	return actorDomain(model), nil
}

func (r *ActorRepository) GetBySlug(ctx context.Context, slug string) (domain.Actor, error) {
	var model models.Actor
	err := r.db.WithContext(ctx).First(&model, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Actor{}, domain.NotFoundError{Resource: "actor", ID: slug}
		}
		return domain.Actor{}, err
	}
	return actorDomain(model), nil
}

func (r *ActorRepository) Update(ctx context.Context, actor domain.Actor) error {
	model := actorModel(actor)
	result := r.db.WithContext(ctx).Model(&models.Actor{}).
		Where("id = ?", actor.ID).
		Select("*").Omit("id", "c_date").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "actor", ID: actor.ID}
	}
	return nil
}

func (r *ActorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Actor{}, "id = ?", id).Error
}

func (r *ActorRepository) SlugExists(ctx context.Context, candidate string, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Actor{}).Where("slug = ?", candidate)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
