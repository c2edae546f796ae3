package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ClientID int64 // ID клиента (из X-User-ID)
	SlotID   int64 // ID свободного слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64     // ID созданного бронирования
	Reference      string    // Внешний референс (uuid)
	SlotID         int64     // ID слота
	MentorID       int64     // ID ментора
	ClientID       int64     // ID клиента
	Status         string    // Статус бронирования
	PaymentStatus  string    // Платёжный статус
	StartsAt       time.Time // Начало сессии (скопировано из слота)
	EndsAt         time.Time // Конец сессии (скопировано из слота)
	ChatWindowDays int       // Окно чата в днях (скопировано из плана)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
