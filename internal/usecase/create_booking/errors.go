package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	// Ожидаемый исход при конкурентных попытках бронирования - клиенту
	// следует обновить список слотов и выбрать другой
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotInPast возвращается при попытке забронировать начавшийся слот
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
