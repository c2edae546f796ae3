package create_plan

// CreatePlanRequest HTTP request model
type CreatePlanRequest struct {
	Title           string  `json:"title"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	ChatWindowDays  *int    `json:"chatWindowDays,omitempty"`
}
