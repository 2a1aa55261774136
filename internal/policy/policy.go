package policy

import "github.com/sahzadahmad246/unmatchedlines/internal/domain"

// Requester is the opaque current actor delivered by the auth layer.
type Requester struct {
	ID   string
	Role domain.Role
}

// CanCreateContent allows poets and admins to author works.
func CanCreateContent(r Requester) bool {
	return r.Role == domain.RolePoet || r.Role == domain.RoleAdmin
}

// CanEditContent allows the owning author and admins.
func CanEditContent(r Requester, authorID string) bool {
	if r.Role == domain.RoleAdmin {
		return true
	}
	return r.Role == domain.RolePoet && r.ID == authorID
}

// CanDeleteContent mirrors edit permission.
func CanDeleteContent(r Requester, authorID string) bool {
	return CanEditContent(r, authorID)
}

// CanAssignAuthor allows admins to publish on behalf of another poet.
func CanAssignAuthor(r Requester) bool {
	return r.Role == domain.RoleAdmin
}

// CanManageCollection allows an actor to mutate only their own collections.
func CanManageCollection(r Requester, ownerID string) bool {
	return r.ID == ownerID
}

// CanPurgeActor allows admins and the actor themselves (account deletion).
func CanPurgeActor(r Requester, actorID string) bool {
	return r.Role == domain.RoleAdmin || r.ID == actorID
}
