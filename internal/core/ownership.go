// AngelaMos | 2026
// ownership.go

package core

import "fmt"

// Owned is implemented by every user-scoped entity.
type Owned interface {
	OwnerID() string
}

// Authorize fails with ErrForbidden unless userID owns the entity. Services
// call it before any mutation so a mismatch never reaches the store.
func Authorize(userID string, entity Owned) error {
	if userID == "" {
		return fmt.Errorf("authorize: %w", ErrUnauthorized)
	}
	if entity.OwnerID() != userID {
		return fmt.Errorf("authorize: %w", ErrForbidden)
	}
	return nil
}
