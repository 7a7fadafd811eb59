package domain

import "time"

// AdminUser is a holder of the shared admin PIN. The PIN itself is not
// carried outside the store.
type AdminUser struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
