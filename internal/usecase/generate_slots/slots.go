package generate_slots

import (
	"time"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
)

// buildCandidates генерирует максимальную последовательность стыкующихся
// интервалов [start, start+duration) внутри окна [windowStart, windowEnd]
// Кандидат, конец которого выходит за границу окна, отбрасывается целиком,
// а не обрезается. Результат отсортирован хронологически по построению.
func buildCandidates(windowStart, windowEnd time.Time, duration time.Duration) []domain.Interval {
	candidates := make([]domain.Interval, 0)

	for current := windowStart; current.Before(windowEnd); current = current.Add(duration) {
		end := current.Add(duration)
		if end.After(windowEnd) {
			break
		}
		candidates = append(candidates, domain.Interval{Start: current, End: end})
	}

	return candidates
}

// partitionCandidates разделяет кандидатов на принятых и отклонённых
// Кандидат отклоняется, если пересекается с ЛЮБЫМ существующим слотом ментора -
// свободным или занятым. Касание границ (конец одного == начало другого)
// пересечением не считается.
//
// Примеры:
// - Кандидат 11:30-12:00, слот 11:20-11:40 → конфликт (пересечение 11:30-11:40)
// - Кандидат 11:30-12:00, слот 11:00-11:30 → нет конфликта (граничат)
// - Кандидат 11:30-12:00, слот 12:00-12:30 → нет конфликта (граничат)
//
// Функция ничего не мутирует - это чистый предикат над множеством кандидатов.
func partitionCandidates(candidates []domain.Interval, existing []*domain.Slot) (accepted, rejected []domain.Interval) {
	accepted = make([]domain.Interval, 0, len(candidates))
	rejected = make([]domain.Interval, 0)

	for _, candidate := range candidates {
		if conflictsWithExisting(candidate, existing) {
			rejected = append(rejected, candidate)
			continue
		}
		accepted = append(accepted, candidate)
	}

	return accepted, rejected
}

// conflictsWithExisting проверяет пересечение кандидата с существующими слотами
func conflictsWithExisting(candidate domain.Interval, existing []*domain.Slot) bool {
	for _, slot := range existing {
		if candidate.Overlaps(slot.Interval()) {
			return true
		}
	}
	return false
}
