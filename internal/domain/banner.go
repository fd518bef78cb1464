package domain

import (
	"time"

	"github.com/google/uuid"
)

// Banner is one rotating delivery banner message shown on the storefront.
// IconName must name an icon registered in the banner icon registry; it is
// validated when the banner catalog is loaded, not at render time.
type Banner struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Message   string    `json:"message" db:"message"`
	IconName  string    `json:"icon_name" db:"icon_name"`
	Active    bool      `json:"active" db:"active"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
