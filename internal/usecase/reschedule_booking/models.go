package reschedule_booking

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64 // ID бронирования
	UserID    int64 // ID инициатора (из X-User-ID), клиент или ментор
	NewSlotID int64 // ID нового свободного слота того же ментора
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID            int64     // ID бронирования
	Reference     string    // Внешний референс (uuid)
	SlotID        int64     // ID нового слота
	MentorID      int64     // ID ментора
	ClientID      int64     // ID клиента
	Status        string    // Статус бронирования
	PaymentStatus string    // Платёжный статус
	StartsAt      time.Time // Новое начало сессии
	EndsAt        time.Time // Новый конец сессии

	OldSlotID   int64     // ID освобождённого слота
	OldStartsAt time.Time // Прежнее начало сессии
}
