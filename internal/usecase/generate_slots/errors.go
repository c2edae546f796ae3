package generate_slots

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("generate_slots: mentor not found")

	// ErrPlanNotFound возвращается, когда план не найден или принадлежит другому ментору
	ErrPlanNotFound = errors.New("generate_slots: plan not found")

	// ErrPlanInactive возвращается при попытке генерации по деактивированному плану
	ErrPlanInactive = errors.New("generate_slots: plan is inactive")

	// ErrInvalidTimeRange возвращается, когда начало окна не раньше его конца
	ErrInvalidTimeRange = errors.New("generate_slots: invalid time range")

	// ErrInvalidDuration возвращается при неположительной длительности слота
	ErrInvalidDuration = errors.New("generate_slots: invalid slot duration")

	// ErrDateInPast возвращается, когда запрошенная дата раньше текущей
	ErrDateInPast = errors.New("generate_slots: date is in the past")

	// ErrAllSlotsConflict возвращается, когда все кандидаты пересекаются с
	// существующими слотами - пачка целиком отклонена, ничего не создано
	ErrAllSlotsConflict = errors.New("generate_slots: all candidate slots conflict with existing slots")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
