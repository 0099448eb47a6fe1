package auth

import "github.com/monocle-dev/taskmanager/internal/models"

// IsOwner reports whether principal is the user identified by ownerID.
// A zero principal never owns anything.
func IsOwner(principal models.User, ownerID uint) bool {
	return principal.ID != 0 && principal.ID == ownerID
}
