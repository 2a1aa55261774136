package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

// CreateCollectionInput carries validated collection creation fields.
type CreateCollectionInput struct {
	Name        string
	Description string
	ContentIDs  []string
}

// CollectionPatch updates only the fields that are set.
type CollectionPatch struct {
	Name        *string
	Description *string
	ContentIDs  *[]string
}

// CollectionUsecase is CRUD over an actor's named collections.
type CollectionUsecase struct {
	collections CollectionRepository
	contents    ContentRepository
}

func NewCollectionUsecase(collections CollectionRepository, contents ContentRepository) *CollectionUsecase {
	return &CollectionUsecase{collections: collections, contents: contents}
}

// Create validates bounds and stores the collection. Ids that do not resolve
// to real works are dropped silently rather than failing the request.
func (uc *CollectionUsecase) Create(ctx context.Context, actorID string, input CreateCollectionInput) (string, error) {
	ctx, span := tracer.Start(ctx, "Collection.Create")
	defer span.End()

	if err := domain.ValidateCollectionName(input.Name); err != nil {
		return "", err
	}
	if input.Name == domain.CuratedCollectionName {
		return "", domain.ValidationError{Field: "name", Reason: "name is reserved"}
	}
	if err := domain.ValidateCollectionDescription(input.Description); err != nil {
		return "", err
	}

	contentIDs, err := uc.resolveContentIDs(ctx, input.ContentIDs)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	col := domain.Collection{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Name:        input.Name,
		Description: input.Description,
		ContentIDs:  contentIDs,
	}
	if err := uc.collections.Create(ctx, col); err != nil {
		span.RecordError(err)
		return "", err
	}
	return col.ID, nil
}

// Edit applies a partial update. Omitted fields are left unchanged.
func (uc *CollectionUsecase) Edit(ctx context.Context, actorID, collectionID string, patch CollectionPatch) error {
	ctx, span := tracer.Start(ctx, "Collection.Edit")
	defer span.End()

	col, err := uc.collections.GetByID(ctx, actorID, collectionID)
	if err != nil {
		return err
	}

	if patch.Name != nil {
		if err := domain.ValidateCollectionName(*patch.Name); err != nil {
			return err
		}
		if *patch.Name == domain.CuratedCollectionName && !col.System {
			return domain.ValidationError{Field: "name", Reason: "name is reserved"}
		}
		col.Name = *patch.Name
	}
	if patch.Description != nil {
		if err := domain.ValidateCollectionDescription(*patch.Description); err != nil {
			return err
		}
		col.Description = *patch.Description
	}
	if patch.ContentIDs != nil {
		resolved, err := uc.resolveContentIDs(ctx, *patch.ContentIDs)
		if err != nil {
			span.RecordError(err)
			return err
		}
		col.ContentIDs = resolved
	}

	if err := uc.collections.Update(ctx, col); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Delete is idempotent; removing an absent collection is not an error.
func (uc *CollectionUsecase) Delete(ctx context.Context, actorID, collectionID string) error {
	ctx, span := tracer.Start(ctx, "Collection.Delete")
	defer span.End()

	return uc.collections.Delete(ctx, actorID, collectionID)
}

// List returns the actor's collections.
func (uc *CollectionUsecase) List(ctx context.Context, actorID string) ([]domain.Collection, error) {
	return uc.collections.ListByActor(ctx, actorID)
}

// UpsertSystem replaces the same-named system collection in place, creating
// it when absent. The curation engine is its only caller.
func (uc *CollectionUsecase) UpsertSystem(ctx context.Context, actorID, name string, contentIDs []string, description string) (string, error) {
	ctx, span := tracer.Start(ctx, "Collection.UpsertSystem")
	defer span.End()

	col := domain.Collection{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Name:        name,
		Description: description,
		ContentIDs:  domain.DedupOrdered(contentIDs),
		System:      true,
	}
	id, err := uc.collections.UpsertByName(ctx, col)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return id, nil
}

func (uc *CollectionUsecase) resolveContentIDs(ctx context.Context, ids []string) ([]string, error) {
	ids = domain.DedupOrdered(ids)
	if len(ids) == 0 {
		return []string{}, nil
	}
	return uc.contents.FilterExisting(ctx, ids)
}
