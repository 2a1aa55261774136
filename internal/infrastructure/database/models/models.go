package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

type Content struct {
	ID         string              `json:"id" gorm:"primaryKey;type:text"`
	AuthorID   string              `json:"authorId" gorm:"type:text;index"`
	Title      domain.Localized    `json:"title" gorm:"serializer:json;type:jsonb"`
	Body       domain.Localized    `json:"body" gorm:"serializer:json;type:jsonb"`
	Summary    domain.Localized    `json:"summary" gorm:"serializer:json;type:jsonb"`
	DidYouKnow domain.Localized    `json:"didYouKnow" gorm:"serializer:json;type:jsonb"`
	FAQs       []domain.FAQ        `json:"faqs" gorm:"serializer:json;type:jsonb"`
	Topics     pq.StringArray      `json:"topics" gorm:"type:text[]"`
	Category   string              `json:"category" gorm:"type:text;index"`
	Status     string              `json:"status" gorm:"type:text;index"`
	CoverImage string              `json:"coverImage" gorm:"type:text"`
	SlugEn     string              `json:"slugEn" gorm:"type:text;uniqueIndex"`
	SlugHi     string              `json:"slugHi" gorm:"type:text;uniqueIndex"`
	SlugUr     string              `json:"slugUr" gorm:"type:text;uniqueIndex"`

	Likes         []domain.LikeEntry     `json:"likes" gorm:"serializer:json;type:jsonb"`
	Bookmarks     []domain.BookmarkEntry `json:"bookmarks" gorm:"serializer:json;type:jsonb"`
	BookmarkCount int                    `json:"bookmarkCount" gorm:"type:integer;not null;default:0"`
	ViewsCount    int64                  `json:"viewsCount" gorm:"type:bigint;not null;default:0"`

	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Actor struct {
	ID        string         `json:"id" gorm:"primaryKey;type:text"`
	Name      string         `json:"name" gorm:"type:text"`
	Slug      string         `json:"slug" gorm:"type:text;uniqueIndex"`
	Role      string         `json:"role" gorm:"type:text;index"`
	Bio       string         `json:"bio" gorm:"type:text"`
	Location  string         `json:"location" gorm:"type:text"`
	Interests pq.StringArray `json:"interests" gorm:"type:text[]"`

	LikedContent []domain.LikedRef    `json:"likedContent" gorm:"serializer:json;type:jsonb"`
	Bookmarks    []domain.BookmarkRef `json:"bookmarks" gorm:"serializer:json;type:jsonb"`

	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Collection struct {
	ID          string         `json:"id" gorm:"primaryKey;type:text"`
	ActorID     string         `json:"actorId" gorm:"type:text;index:idx_collection_actor_name;index:idx_collection_system_name,unique,where:system"`
	Name        string         `json:"name" gorm:"type:text;index:idx_collection_actor_name;index:idx_collection_system_name,unique,where:system"`
	Description string         `json:"description" gorm:"type:text"`
	ContentIDs  pq.StringArray `json:"contentIds" gorm:"type:text[]"`
	System      bool           `json:"system" gorm:"type:boolean;not null;default:false"`

	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
