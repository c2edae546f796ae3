package generate_slots

import (
	"time"

	"github.com/m04kA/MMP-SchedulingService/pkg/types"
)

// Request модель запроса на генерацию слотов
type Request struct {
	MentorID  int64            // ID ментора
	PlanID    int64            // ID плана, задающего длительность и цену слотов
	Date      time.Time        // Дата, на которую генерируются слоты (без времени)
	StartTime types.TimeString // Начало рабочего окна (например, "09:00")
	EndTime   types.TimeString // Конец рабочего окна (например, "18:00")
}

// Response модель ответа с результатом генерации
type Response struct {
	MentorID int64         // ID ментора
	PlanID   int64         // ID плана
	Date     time.Time     // Дата генерации
	Created  int           // Сколько слотов создано
	Skipped  int           // Сколько кандидатов отклонено из-за конфликтов
	Slots    []CreatedSlot // Созданные слоты в хронологическом порядке
}

// CreatedSlot созданный слот
type CreatedSlot struct {
	ID       int64
	StartsAt time.Time
	EndsAt   time.Time
}
