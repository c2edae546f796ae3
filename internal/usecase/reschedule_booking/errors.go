package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrSlotNotFound возвращается, когда новый слот не найден
	ErrSlotNotFound = errors.New("reschedule_booking: slot not found")

	// ErrSlotNotAvailable возвращается, когда новый слот уже занят
	// Бронирование при этом остаётся на старом слоте
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrSlotInPast возвращается при попытке переноса на начавшийся слот
	ErrSlotInPast = errors.New("reschedule_booking: slot is in the past")

	// ErrNotReschedulable возвращается для завершённых и отменённых бронирований
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrWrongMentor возвращается, когда новый слот принадлежит другому ментору
	ErrWrongMentor = errors.New("reschedule_booking: slot belongs to another mentor")

	// ErrSameSlot возвращается при переносе на текущий слот бронирования
	ErrSameSlot = errors.New("reschedule_booking: booking already on this slot")

	// ErrAccessDenied возвращается, когда инициатор не участник бронирования
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
