package domain

import "time"

// LikedRef is one liked work on the actor side of the relationship.
type LikedRef struct {
	ContentID string `json:"contentId"`
}

// BookmarkRef is one bookmarked work on the actor side of the relationship.
type BookmarkRef struct {
	ContentID    string    `json:"contentId"`
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

// Actor is a registered participant: reader, poet, or administrator.
type Actor struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	Role      Role     `json:"role"`
	Bio       string   `json:"bio,omitempty"`
	Location  string   `json:"location,omitempty"`
	Interests []string `json:"interests,omitempty"`

	LikedContent []LikedRef    `json:"likedContent"`
	Bookmarks    []BookmarkRef `json:"bookmarks"`

	CDate time.Time `json:"cdate"`
	MDate time.Time `json:"mdate"`
}

// HasLiked reports whether contentID appears in the actor-side like list.
func (a Actor) HasLiked(contentID string) bool {
	for _, l := range a.LikedContent {
		if l.ContentID == contentID {
			return true
		}
	}
	return false
}

// HasBookmarked reports whether contentID appears in the actor-side
// bookmark list.
func (a Actor) HasBookmarked(contentID string) bool {
	for _, b := range a.Bookmarks {
		if b.ContentID == contentID {
			return true
		}
	}
	return false
}

// EngagedContentIDs returns the union of liked and bookmarked work ids,
// deduplicated, in like-then-bookmark first-seen order.
func (a Actor) EngagedContentIDs() []string {
	seen := make(map[string]struct{}, len(a.LikedContent)+len(a.Bookmarks))
	var ids []string
	for _, l := range a.LikedContent {
		if _, ok := seen[l.ContentID]; ok {
			continue
		}
		seen[l.ContentID] = struct{}{}
		ids = append(ids, l.ContentID)
	}
	for _, b := range a.Bookmarks {
		if _, ok := seen[b.ContentID]; ok {
			continue
		}
		seen[b.ContentID] = struct{}{}
		ids = append(ids, b.ContentID)
	}
	return ids
}
