package domain

import "time"

// Plan represents a mentor's configured session offering: duration, price
// and the post-session chat window. Slots reference the plan that priced
// them; deactivating a plan does not invalidate already-created slots.
type Plan struct {
	ID              int64
	MentorID        int64
	Title           string
	DurationMinutes int
	Price           float64
	ChatWindowDays  int
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the session length as time.Duration
func (p *Plan) Duration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}
