package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
	"github.com/sahzadahmad246/unmatchedlines/internal/policy"
	"github.com/sahzadahmad246/unmatchedlines/internal/slug"
)

// RegisterActorInput carries a new registration.
type RegisterActorInput struct {
	Name      string
	Role      string
	Bio       string
	Location  string
	Interests []string
}

// UpdateActorInput is a partial profile edit; nil fields stay unchanged.
type UpdateActorInput struct {
	Name      *string
	Bio       *string
	Location  *string
	Interests *[]string
}

// ActorUsecase manages actor identity: registration, profile edits with
// slug re-derivation, and account deletion with cascade purge.
type ActorUsecase struct {
	actors      ActorRepository
	collections CollectionRepository
	ledger      EngagementRepository
	resolver    *slug.Resolver
}

func NewActorUsecase(
	actors ActorRepository,
	collections CollectionRepository,
	ledger EngagementRepository,
	resolver *slug.Resolver,
) *ActorUsecase {
	return &ActorUsecase{
		actors:      actors,
		collections: collections,
		ledger:      ledger,
		resolver:    resolver,
	}
}

// Register creates an actor with a unique slug derived from the name.
func (uc *ActorUsecase) Register(ctx context.Context, input RegisterActorInput) (domain.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Register")
	defer span.End()

	if input.Name == "" {
		return domain.Actor{}, domain.ValidationError{Field: "name", Reason: "name is required"}
	}
	role := domain.Role(input.Role)
	switch role {
	case "":
		role = domain.RoleReader
	case domain.RoleReader, domain.RolePoet, domain.RoleAdmin:
	default:
		return domain.Actor{}, domain.ValidationError{Field: "role", Reason: "unknown role"}
	}

	s, err := uc.resolver.Resolve(ctx, input.Name, domain.LangEnglish, uc.slugExists(""))
	if err != nil {
		span.RecordError(err)
		return domain.Actor{}, err
	}

	actor := domain.Actor{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Slug:         s,
		Role:         role,
		Bio:          input.Bio,
		Location:     input.Location,
		Interests:    input.Interests,
		LikedContent: []domain.LikedRef{},
		Bookmarks:    []domain.BookmarkRef{},
	}
	if err := uc.actors.Create(ctx, actor); err != nil {
		span.RecordError(err)
		return domain.Actor{}, err
	}
	return actor, nil
}

// UpdateProfile applies a partial edit. A name change re-derives the slug,
// re-checked for uniqueness excluding the actor's own current slug.
func (uc *ActorUsecase) UpdateProfile(ctx context.Context, actorID string, input UpdateActorInput) (domain.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.UpdateProfile")
	defer span.End()

	actor, err := uc.actors.GetByID(ctx, actorID)
	if err != nil {
		return domain.Actor{}, err
	}

	if input.Name != nil && *input.Name != actor.Name {
		if *input.Name == "" {
			return domain.Actor{}, domain.ValidationError{Field: "name", Reason: "name is required"}
		}
		s, err := uc.resolver.Resolve(ctx, *input.Name, domain.LangEnglish, uc.slugExists(actor.ID))
		if err != nil {
			span.RecordError(err)
			return domain.Actor{}, err
		}
		actor.Name = *input.Name
		actor.Slug = s
	}
	if input.Bio != nil {
		actor.Bio = *input.Bio
	}
	if input.Location != nil {
		actor.Location = *input.Location
	}
	if input.Interests != nil {
		actor.Interests = *input.Interests
	}

	if err := uc.actors.Update(ctx, actor); err != nil {
		span.RecordError(err)
		return domain.Actor{}, err
	}
	return actor, nil
}

// GetBySlug fetches an actor's public profile.
func (uc *ActorUsecase) GetBySlug(ctx context.Context, s string) (domain.Actor, error) {
	return uc.actors.GetBySlug(ctx, s)
}

// GetByID fetches an actor.
func (uc *ActorUsecase) GetByID(ctx context.Context, id string) (domain.Actor, error) {
	return uc.actors.GetByID(ctx, id)
}

// Delete removes the actor and cascades: every work's engagement lists lose
// the actor, and the actor's collections are dropped.
func (uc *ActorUsecase) Delete(ctx context.Context, requester policy.Requester, actorID string) error {
	ctx, span := tracer.Start(ctx, "Actor.Delete")
	defer span.End()

	if !policy.CanPurgeActor(requester, actorID) {
		return domain.ErrForbidden
	}

	if _, err := uc.actors.GetByID(ctx, actorID); err != nil {
		return err
	}

	if err := uc.actors.Delete(ctx, actorID); err != nil {
		span.RecordError(err)
		return err
	}
	if err := uc.ledger.PurgeActor(ctx, actorID); err != nil {
		span.RecordError(err)
		return err
	}
	if err := uc.collections.DeleteByActor(ctx, actorID); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (uc *ActorUsecase) slugExists(excludeID string) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return uc.actors.SlugExists(ctx, candidate, excludeID)
	}
}
