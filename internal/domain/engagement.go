package domain

import "time"

// EngagementKind distinguishes the two relationship types.
type EngagementKind string

const (
	EngagementLike     EngagementKind = "like"
	EngagementBookmark EngagementKind = "bookmark"
)

// EngagementAction is the requested mutation direction.
type EngagementAction string

const (
	EngagementAdd    EngagementAction = "add"
	EngagementRemove EngagementAction = "remove"
)

// EngagementEvent is the atomic unit processed by the ledger, published to
// subscribers after the mutation commits.
type EngagementEvent struct {
	ActorID   string           `json:"actorId"`
	ContentID string           `json:"contentId"`
	Kind      EngagementKind   `json:"kind"`
	Action    EngagementAction `json:"action"`
	At        time.Time        `json:"at"`
}

// EngagementPlan is the outcome of deciding a toggle against the current
// state of both sides of the relationship. The executor applies exactly the
// side writes the plan names, inside one critical section.
type EngagementPlan struct {
	// WriteContentSide / WriteActorSide request that the relation be
	// present (add) or absent (remove) on that side after the mutation.
	WriteContentSide bool
	WriteActorSide   bool

	// Changed is the caller-visible result: true only when the logical
	// relationship flipped, not when a drifted side was merely healed.
	Changed bool

	// Healed notes that the two sides disagreed before the mutation. The
	// executor logs this; it is never surfaced to the caller.
	Healed bool
}

// PlanEngagement decides an add/remove toggle given the relation's presence
// on the content side and on the actor side. Existence is judged against
// both sides: a relation counts as existing when either side has it, and a
// one-sided relation is always reconciled so both sides end up consistent.
func PlanEngagement(action EngagementAction, onContent, onActor bool) EngagementPlan {
	drifted := onContent != onActor
	exists := onContent || onActor

	switch action {
	case EngagementAdd:
		return EngagementPlan{
			WriteContentSide: !onContent,
			WriteActorSide:   !onActor,
			Changed:          !exists,
			Healed:           drifted,
		}
	case EngagementRemove:
		return EngagementPlan{
			WriteContentSide: onContent,
			WriteActorSide:   onActor,
			Changed:          exists,
			Healed:           drifted,
		}
	}
	return EngagementPlan{}
}

// RepairPlan is the outcome of deciding a single-kind read-repair check for
// one actor/content pair.
type RepairPlan struct {
	// AddContentSide / AddActorSide complete the missing side of a
	// one-sided relation.
	AddContentSide bool
	AddActorSide   bool

	// DropActorSide removes a reference to a work that no longer exists.
	DropActorSide bool
}

// Dirty reports whether the plan writes anything.
func (p RepairPlan) Dirty() bool {
	return p.AddContentSide || p.AddActorSide || p.DropActorSide
}

// PlanRepair decides the read-repair action for one engagement kind.
// Existence is judged either-side, so repair completes the missing side
// rather than dropping the present one; the only destructive case is a
// dangling actor-side reference to a deleted work.
func PlanRepair(contentExists, onContent, onActor bool) RepairPlan {
	if !contentExists {
		return RepairPlan{DropActorSide: onActor}
	}
	if onContent == onActor {
		return RepairPlan{}
	}
	return RepairPlan{
		AddContentSide: !onContent,
		AddActorSide:   !onActor,
	}
}
