package domain

// Language identifies one of the three supported language variants.
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
	LangUrdu    Language = "ur"
)

// Languages lists the supported variants in resolution order. Slug
// assignment walks this order, so suffix allocation is deterministic.
var Languages = []Language{LangEnglish, LangHindi, LangUrdu}

// IsLanguage reports whether tag names a supported language variant.
func IsLanguage(tag string) bool {
	switch Language(tag) {
	case LangEnglish, LangHindi, LangUrdu:
		return true
	}
	return false
}

// Category classifies a work.
type Category string

const (
	CategoryPoem    Category = "poem"
	CategoryGhazal  Category = "ghazal"
	CategorySher    Category = "sher"
	CategoryNazm    Category = "nazm"
	CategoryRubai   Category = "rubai"
	CategoryMarsiya Category = "marsiya"
	CategoryQataa   Category = "qataa"
	CategoryOther   Category = "other"
)

// IsCategory reports whether s names a known category.
func IsCategory(s string) bool {
	switch Category(s) {
	case CategoryPoem, CategoryGhazal, CategorySher, CategoryNazm,
		CategoryRubai, CategoryMarsiya, CategoryQataa, CategoryOther:
		return true
	}
	return false
}

// Status is the publication state of a work.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Role is the platform role of an actor.
type Role string

const (
	RoleReader Role = "reader"
	RolePoet   Role = "poet"
	RoleAdmin  Role = "admin"
)

const (
	// CuratedCollectionName is the reserved name of the system-managed
	// recommendation collection. There is at most one per actor.
	CuratedCollectionName = "Curated for You"

	// CuratedCollectionDescription accompanies the curated collection.
	CuratedCollectionDescription = "A collection tailored to your interests"

	// MaxCollectionNameLen and MaxCollectionDescriptionLen bound
	// caller-supplied collection text.
	MaxCollectionNameLen        = 100
	MaxCollectionDescriptionLen = 500

	// MaxTopics bounds the topic tag set on a work.
	MaxTopics = 10

	// CurationLimit caps both the recommendation set and the cold-start
	// fallback.
	CurationLimit = 10

	// CurationTopTopics is how many ranked topics feed the candidate query.
	CurationTopTopics = 3
)

const (
	// RequesterIDCtxKey and RequesterRoleCtxKey carry the authenticated
	// actor through the request context.
	RequesterIDCtxKey   = "ul-requesterId"
	RequesterRoleCtxKey = "ul-requesterRole"
)
