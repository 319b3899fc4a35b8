package repo

import "time"

// MovementFilter narrows a product's movement history.
type MovementFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}
