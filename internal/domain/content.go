package domain

import "time"

// Localized holds one text in all three language variants.
type Localized struct {
	En string `json:"en"`
	Hi string `json:"hi"`
	Ur string `json:"ur"`
}

// Get returns the variant for lang, empty when the variant is absent.
func (l Localized) Get(lang Language) string {
	switch lang {
	case LangEnglish:
		return l.En
	case LangHindi:
		return l.Hi
	case LangUrdu:
		return l.Ur
	}
	return ""
}

// Set writes the variant for lang.
func (l *Localized) Set(lang Language, v string) {
	switch lang {
	case LangEnglish:
		l.En = v
	case LangHindi:
		l.Hi = v
	case LangUrdu:
		l.Ur = v
	}
}

// FAQ is a question/answer pair attached to a work. Incomplete entries are
// tolerated; rendering decides what to show.
type FAQ struct {
	Question Localized `json:"question"`
	Answer   Localized `json:"answer"`
}

// LikeEntry is one actor's like on a work, content side.
type LikeEntry struct {
	ActorID string    `json:"actorId"`
	LikedAt time.Time `json:"likedAt"`
}

// BookmarkEntry is one actor's bookmark on a work, content side.
type BookmarkEntry struct {
	ActorID      string    `json:"actorId"`
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

// Content is a published or draft work in three language variants.
type Content struct {
	ID         string           `json:"id"`
	Author     Reference[Actor] `json:"author"`
	Title      Localized        `json:"title"`
	Body       Localized        `json:"body"`
	Summary    Localized        `json:"summary"`
	DidYouKnow Localized        `json:"didYouKnow,omitempty"`
	FAQs       []FAQ            `json:"faqs,omitempty"`
	Topics     []string         `json:"topics"`
	Category   Category         `json:"category"`
	Status     Status           `json:"status"`
	CoverImage string           `json:"coverImage,omitempty"`
	Slug       Localized        `json:"slug"`

	Likes         []LikeEntry     `json:"likes"`
	Bookmarks     []BookmarkEntry `json:"bookmarks"`
	BookmarkCount int             `json:"bookmarkCount"`
	ViewsCount    int64           `json:"viewsCount"`

	CDate time.Time `json:"cdate"`
	MDate time.Time `json:"mdate"`
}

// LikeCount is always derived from the list, never stored.
func (c Content) LikeCount() int {
	return len(c.Likes)
}

// HasLikeFrom reports whether actorID appears in the content-side like list.
func (c Content) HasLikeFrom(actorID string) bool {
	for _, l := range c.Likes {
		if l.ActorID == actorID {
			return true
		}
	}
	return false
}

// HasBookmarkFrom reports whether actorID appears in the content-side
// bookmark list.
func (c Content) HasBookmarkFrom(actorID string) bool {
	for _, b := range c.Bookmarks {
		if b.ActorID == actorID {
			return true
		}
	}
	return false
}

// ContentMeta is the slice of a work the curation engine needs.
type ContentMeta struct {
	ID       string
	Topics   []string
	Category Category
}
