package auth

import (
	"ember/internal/models"
)

// Action classifies what the caller wants to do with a resource.
type Action int

const (
	// ActionRead covers fetching a resource or a collection. Reads are public.
	ActionRead Action = iota
	// ActionVote covers applying a vote delta. Requires any verified identity.
	ActionVote
	// ActionMutate covers update and delete. Requires ownership or admin.
	ActionMutate
)

// Authorize is the single policy decision point for every operation. It is a
// pure function of the verified identity, the resource's stored owner and the
// action class.
//
// ownerID must be the owner recorded in the store, never a client-supplied
// value; comparing against anything else would widen access. A nil identity
// means the request was not authenticated at all, which is distinct from an
// authenticated caller being denied.
func Authorize(identity *Identity, ownerID string, action Action) error {
	if action == ActionRead {
		return nil
	}

	if identity == nil {
		return models.NewUnauthorizedError("Authentication required")
	}

	if action == ActionVote {
		return nil
	}

	if identity.IsAdmin() || identity.SubjectID == ownerID {
		return nil
	}

	return models.NewForbiddenError("Forbidden")
}
