package domain

import "time"

// Collection is a named, ordered set of work references owned by an actor.
// A collection named CuratedCollectionName is system-managed and overwritten
// in place by the curation engine.
type Collection struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actorId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ContentIDs  []string  `json:"contentIds"`
	System      bool      `json:"system,omitempty"`
	CDate       time.Time `json:"cdate"`
	MDate       time.Time `json:"mdate"`
}

// ValidateCollectionName checks the caller-supplied name bound.
func ValidateCollectionName(name string) error {
	if name == "" {
		return ValidationError{Field: "name", Reason: "collection name is required"}
	}
	if len([]rune(name)) > MaxCollectionNameLen {
		return ValidationError{Field: "name", Reason: "collection name exceeds 100 characters"}
	}
	return nil
}

// ValidateCollectionDescription checks the caller-supplied description bound.
func ValidateCollectionDescription(description string) error {
	if len([]rune(description)) > MaxCollectionDescriptionLen {
		return ValidationError{Field: "description", Reason: "collection description exceeds 500 characters"}
	}
	return nil
}

// DedupOrdered drops repeated ids while preserving first-seen order.
func DedupOrdered(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
