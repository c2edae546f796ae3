package update_plan

// UpdatePlanRequest HTTP request model
// Длительность плана не меняется - для другой длительности создаётся новый план
type UpdatePlanRequest struct {
	Title          *string  `json:"title,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	ChatWindowDays *int     `json:"chatWindowDays,omitempty"`
	IsActive       *bool    `json:"isActive,omitempty"`
}
