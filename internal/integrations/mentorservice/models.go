package mentorservice

// Mentor модель ментора из MentorService
type Mentor struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Timezone    string `json:"timezone"` // Используется только presentation-слоем
	IsActive    bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от MentorService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
