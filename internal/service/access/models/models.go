package models

// ChatAccessResponse ответ с состоянием пост-сессионных доступов бронирования
type ChatAccessResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"` // Эффективный статус бронирования

	// Чат: открыт до конца сессии + окно в днях
	ChatOpen      bool   `json:"chatOpen"`
	ChatExpiresAt string `json:"chatExpiresAt"` // ISO 8601

	// Остаток окна для отображения, присутствует только при открытом чате
	RemainingDays  *int `json:"remainingDays,omitempty"`
	RemainingHours *int `json:"remainingHours,omitempty"`

	// Заметки: доступ бессрочный, gate только по наличию записи
	NotesAvailable bool `json:"notesAvailable"`
}
