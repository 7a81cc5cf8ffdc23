package domain

// RequireRole returns ErrForbidden unless the identity holds the given role.
func RequireRole(id Identity, role string) error {
	if id.Role != role {
		return ErrForbidden
	}
	return nil
}

// RequireOwner returns ErrForbidden unless the identity owns the resource.
// Managers are not exempt here; manager-only routes use RequireRole instead.
func RequireOwner(id Identity, ownerID int64) error {
	if id.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
