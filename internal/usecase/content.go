package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
	"github.com/sahzadahmad246/unmatchedlines/internal/policy"
	"github.com/sahzadahmad246/unmatchedlines/internal/slug"
)

// CreateContentInput carries a new work. AuthorID is honored only for
// admins; poets always author their own work.
type CreateContentInput struct {
	AuthorID   string
	Title      domain.Localized
	Body       domain.Localized
	Summary    domain.Localized
	DidYouKnow domain.Localized
	FAQs       []domain.FAQ
	Topics     []string
	Category   string
	Status     string
	CoverImage string
}

// UpdateContentInput is a partial edit; nil fields stay unchanged.
type UpdateContentInput struct {
	Title      *domain.Localized
	Body       *domain.Localized
	Summary    *domain.Localized
	DidYouKnow *domain.Localized
	FAQs       *[]domain.FAQ
	Topics     *[]string
	Category   *string
	Status     *string
	CoverImage *string
}

// ContentUsecase is the authoring flow: creation with slug assignment,
// edits, and deletion with cascade purge.
type ContentUsecase struct {
	contents    ContentRepository
	actors      ActorRepository
	collections CollectionRepository
	ledger      EngagementRepository
	resolver    *slug.Resolver
}

func NewContentUsecase(
	contents ContentRepository,
	actors ActorRepository,
	collections CollectionRepository,
	ledger EngagementRepository,
	resolver *slug.Resolver,
) *ContentUsecase {
	return &ContentUsecase{
		contents:    contents,
		actors:      actors,
		collections: collections,
		ledger:      ledger,
		resolver:    resolver,
	}
}

// Create validates the work, assigns all three language slugs, and stores
// it. Slugs are assigned exactly once here; edits re-resolve only when a
// title changes.
func (uc *ContentUsecase) Create(ctx context.Context, requester policy.Requester, input CreateContentInput) (domain.Content, error) {
	ctx, span := tracer.Start(ctx, "Content.Create")
	defer span.End()

	if !policy.CanCreateContent(requester) {
		return domain.Content{}, domain.ErrForbidden
	}

	authorID := requester.ID
	if requester.Role == domain.RoleAdmin {
		if input.AuthorID == "" {
			return domain.Content{}, domain.ValidationError{Field: "authorId", Reason: "author id is required"}
		}
		author, err := uc.actors.GetByID(ctx, input.AuthorID)
		if err != nil {
			return domain.Content{}, err
		}
		if author.Role != domain.RolePoet {
			return domain.Content{}, domain.ValidationError{Field: "authorId", Reason: "selected author must have poet role"}
		}
		authorID = author.ID
	}

	if err := validateContentInput(input); err != nil {
		return domain.Content{}, err
	}

	status := domain.Status(input.Status)
	if input.Status == "" {
		status = domain.StatusDraft
	}

	slugs, err := uc.resolver.ResolveSet(ctx, input.Title, uc.slugExists(""))
	if err != nil {
		span.RecordError(err)
		return domain.Content{}, err
	}

	content := domain.Content{
		ID:         uuid.NewString(),
		Author:     domain.Unresolved[domain.Actor](authorID),
		Title:      input.Title,
		Body:       input.Body,
		Summary:    input.Summary,
		DidYouKnow: input.DidYouKnow,
		FAQs:       completeFAQs(input.FAQs),
		Topics:     input.Topics,
		Category:   domain.Category(input.Category),
		Status:     status,
		CoverImage: input.CoverImage,
		Slug:       slugs,
		Likes:      []domain.LikeEntry{},
		Bookmarks:  []domain.BookmarkEntry{},
	}

	if err := uc.contents.Create(ctx, content); err != nil {
		span.RecordError(err)
		return domain.Content{}, err
	}
	return content, nil
}

// Update applies a partial edit. Slugs are re-resolved only when the title
// actually changed, excluding the record's own current slugs.
func (uc *ContentUsecase) Update(ctx context.Context, requester policy.Requester, id string, input UpdateContentInput) (domain.Content, error) {
	ctx, span := tracer.Start(ctx, "Content.Update")
	defer span.End()

	content, err := uc.contents.GetByID(ctx, id)
	if err != nil {
		return domain.Content{}, err
	}
	if !policy.CanEditContent(requester, content.Author.ID()) {
		return domain.Content{}, domain.ErrForbidden
	}

	if input.Title != nil && *input.Title != content.Title {
		if input.Title.En == "" {
			return domain.Content{}, domain.ValidationError{Field: "title", Reason: "english title is required"}
		}
		slugs, err := uc.resolver.ResolveSet(ctx, *input.Title, uc.slugExists(content.ID))
		if err != nil {
			span.RecordError(err)
			return domain.Content{}, err
		}
		content.Title = *input.Title
		content.Slug = slugs
	}
	if input.Body != nil {
		content.Body = *input.Body
	}
	if input.Summary != nil {
		content.Summary = *input.Summary
	}
	if input.DidYouKnow != nil {
		content.DidYouKnow = *input.DidYouKnow
	}
	if input.FAQs != nil {
		content.FAQs = completeFAQs(*input.FAQs)
	}
	if input.Topics != nil {
		if len(*input.Topics) > domain.MaxTopics {
			return domain.Content{}, domain.ValidationError{Field: "topics", Reason: "too many topics"}
		}
		content.Topics = *input.Topics
	}
	if input.Category != nil {
		if !domain.IsCategory(*input.Category) {
			return domain.Content{}, domain.ValidationError{Field: "category", Reason: "unknown category"}
		}
		content.Category = domain.Category(*input.Category)
	}
	if input.Status != nil {
		s := domain.Status(*input.Status)
		if s != domain.StatusDraft && s != domain.StatusPublished {
			return domain.Content{}, domain.ValidationError{Field: "status", Reason: "status must be draft or published"}
		}
		content.Status = s
	}
	if input.CoverImage != nil {
		content.CoverImage = *input.CoverImage
	}

	if err := uc.contents.Update(ctx, content); err != nil {
		span.RecordError(err)
		return domain.Content{}, err
	}
	return content, nil
}

// Delete removes the work and cascades: every actor's engagement lists and
// every collection lose the id.
func (uc *ContentUsecase) Delete(ctx context.Context, requester policy.Requester, id string) error {
	ctx, span := tracer.Start(ctx, "Content.Delete")
	defer span.End()

	content, err := uc.contents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteContent(requester, content.Author.ID()) {
		return domain.ErrForbidden
	}

	if err := uc.contents.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	if err := uc.ledger.PurgeContent(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	if err := uc.collections.RemoveContentEverywhere(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// GetBySlug fetches a work by any-language slug and bumps its view counter.
// The bump is best-effort; a failure is logged, not surfaced.
func (uc *ContentUsecase) GetBySlug(ctx context.Context, s string) (domain.Content, error) {
	content, err := uc.contents.GetBySlug(ctx, s)
	if err != nil {
		return domain.Content{}, err
	}
	if err := uc.contents.IncrementViews(ctx, content.ID); err != nil {
		slog.WarnContext(ctx, "failed to increment views",
			slog.String("contentId", content.ID),
			slog.String("error", err.Error()),
			slog.String("module", "content"),
		)
	}
	return content, nil
}

// ListPublished pages through published works.
func (uc *ContentUsecase) ListPublished(ctx context.Context, page, limit int) ([]domain.Content, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return uc.contents.ListPublished(ctx, page, limit)
}

func (uc *ContentUsecase) slugExists(excludeID string) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return uc.contents.SlugExists(ctx, candidate, excludeID)
	}
}

func validateContentInput(input CreateContentInput) error {
	if input.Title.En == "" {
		return domain.ValidationError{Field: "title", Reason: "english title is required"}
	}
	if len(input.Topics) > domain.MaxTopics {
		return domain.ValidationError{Field: "topics", Reason: "too many topics"}
	}
	if input.Category == "" || !domain.IsCategory(input.Category) {
		return domain.ValidationError{Field: "category", Reason: "unknown category"}
	}
	if input.Status != "" {
		s := domain.Status(input.Status)
		if s != domain.StatusDraft && s != domain.StatusPublished {
			return domain.ValidationError{Field: "status", Reason: "status must be draft or published"}
		}
	}
	return nil
}

// completeFAQs keeps entries that have at least one question and one answer
// variant; incomplete pairs are dropped silently, as the original authoring
// flow did.
func completeFAQs(faqs []domain.FAQ) []domain.FAQ {
	out := make([]domain.FAQ, 0, len(faqs))
	for _, f := range faqs {
		q := f.Question.En != "" || f.Question.Hi != "" || f.Question.Ur != ""
		a := f.Answer.En != "" || f.Answer.Hi != "" || f.Answer.Ur != ""
		if q && a {
			out = append(out, f)
		}
	}
	return out
}
