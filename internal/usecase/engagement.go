package usecase

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

var tracer = otel.Tracer("usecase")

// ToggleResult reports whether the logical relationship flipped.
type ToggleResult struct {
	Changed bool `json:"changed"`
}

// EngagementUsecase is the ledger entry point for like/bookmark toggles and
// cascade purges.
type EngagementUsecase struct {
	ledger EngagementRepository
	signal EventPublisher
}

func NewEngagementUsecase(ledger EngagementRepository, signal EventPublisher) *EngagementUsecase {
	return &EngagementUsecase{ledger: ledger, signal: signal}
}

// Toggle applies one engagement mutation. The repository serializes the
// dual-side write per (actor, content) pair; this layer validates input,
// shapes the idempotent result, and publishes the event after commit.
func (uc *EngagementUsecase) Toggle(ctx context.Context, kind domain.EngagementKind, action domain.EngagementAction, actorID, contentID string) (ToggleResult, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Toggle")
	defer span.End()

	if actorID == "" {
		return ToggleResult{}, domain.ValidationError{Field: "actorId", Reason: "actor id is required"}
	}
	if contentID == "" {
		return ToggleResult{}, domain.ValidationError{Field: "contentId", Reason: "content id is required"}
	}
	switch action {
	case domain.EngagementAdd, domain.EngagementRemove:
	default:
		return ToggleResult{}, domain.ValidationError{Field: "action", Reason: "action must be add or remove"}
	}

	changed, err := uc.ledger.Toggle(ctx, kind, action, actorID, contentID)
	if err != nil {
		span.RecordError(err)
		return ToggleResult{}, err
	}

	if changed && uc.signal != nil {
		event := domain.EngagementEvent{
			ActorID:   actorID,
			ContentID: contentID,
			Kind:      kind,
			Action:    action,
			At:        time.Now().UTC(),
		}
		// The stream is advisory: a publish failure never fails the
		// committed mutation.
		if err := uc.signal.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to publish engagement event",
				slog.String("error", err.Error()),
				slog.String("module", "engagement"),
			)
		}
	}

	return ToggleResult{Changed: changed}, nil
}

// PurgeContent removes a deleted work from every actor's engagement lists.
func (uc *EngagementUsecase) PurgeContent(ctx context.Context, contentID string) error {
	ctx, span := tracer.Start(ctx, "Engagement.PurgeContent")
	defer span.End()

	if contentID == "" {
		return domain.ValidationError{Field: "contentId", Reason: "content id is required"}
	}
	if err := uc.ledger.PurgeContent(ctx, contentID); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// PurgeActor removes a deleted actor from every work's engagement lists.
func (uc *EngagementUsecase) PurgeActor(ctx context.Context, actorID string) error {
	ctx, span := tracer.Start(ctx, "Engagement.PurgeActor")
	defer span.End()

	if actorID == "" {
		return domain.ValidationError{Field: "actorId", Reason: "actor id is required"}
	}
	if err := uc.ledger.PurgeActor(ctx, actorID); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
