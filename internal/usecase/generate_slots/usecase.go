package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	planRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/plan"
	mentorClient "github.com/m04kA/MMP-SchedulingService/internal/integrations/mentorservice"
)

// UseCase use case генерации слотов из рабочего окна ментора
type UseCase struct {
	slotRepo     SlotRepository
	planRepo     PlanRepository
	mentorClient MentorServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	planRepo PlanRepository,
	mentorClient MentorServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		planRepo:     planRepo,
		mentorClient: mentorClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case генерации слотов
// Конфликтующие кандидаты пропускаются (partial success), но если конфликтуют
// ВСЕ кандидаты - пачка считается конфликтом целиком и не создаётся ничего.
// Проверка конфликтов и вставка идут в одной сериализуемой транзакции, чтобы
// слот становился видимым для бронирования только будучи durably free.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: mentor=%d, plan=%d, date=%s, window=%s-%s",
		req.MentorID, req.PlanID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GenerateSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование ментора
	if _, err := uc.mentorClient.GetMentor(ctx, req.MentorID); err != nil {
		if errors.Is(err, mentorClient.ErrMentorNotFound) {
			uc.logger.Warn("GenerateSlots: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	// 4. Резолвим план - он задаёт длительность слотов
	plan, err := uc.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			uc.logger.Warn("GenerateSlots: plan id=%d not found", req.PlanID)
			return nil, ErrPlanNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get plan id=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
	}

	// План должен принадлежать ментору и быть активным
	if plan.MentorID != req.MentorID {
		uc.logger.Warn("GenerateSlots: plan id=%d belongs to mentor %d, not %d", plan.ID, plan.MentorID, req.MentorID)
		return nil, ErrPlanNotFound
	}
	if !plan.IsActive {
		uc.logger.Warn("GenerateSlots: plan id=%d is inactive", plan.ID)
		return nil, ErrPlanInactive
	}
	if plan.DurationMinutes <= 0 {
		uc.logger.Error("GenerateSlots: plan id=%d has non-positive duration %d", plan.ID, plan.DurationMinutes)
		return nil, ErrInvalidDuration
	}

	// 5. Совмещаем окно с датой - дальше работаем с абсолютными моментами UTC
	windowStart, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	windowEnd, err := req.EndTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	// 6. Генерируем кандидатов
	candidates := buildCandidates(windowStart, windowEnd, plan.Duration())
	if len(candidates) == 0 {
		// Окно короче одного слота - создавать нечего
		uc.logger.Info("GenerateSlots: window %s-%s shorter than slot duration %dm, nothing to create",
			req.StartTime, req.EndTime, plan.DurationMinutes)
		return &Response{
			MentorID: req.MentorID,
			PlanID:   req.PlanID,
			Date:     req.Date,
			Slots:    []CreatedSlot{},
		}, nil
	}

	var created []*domain.Slot
	var skipped int

	// 7. Проверка конфликтов и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Существующие слоты дня с блокировкой (FOR UPDATE)
		existing, err := uc.slotRepo.GetByMentorWithFilter(txCtx, domain.SlotsFilter{
			MentorID: req.MentorID,
			Date:     &req.Date,
		})
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to get existing slots: %v", err)
			return fmt.Errorf("%w: failed to get existing slots: %v", ErrInternal, err)
		}

		// 7.2. Детектор конфликтов: свободные и занятые слоты учитываются одинаково
		accepted, rejected := partitionCandidates(candidates, existing)
		skipped = len(rejected)

		if len(accepted) == 0 {
			uc.logger.Warn("GenerateSlots: all %d candidates conflict for mentor=%d on %s",
				len(candidates), req.MentorID, req.Date.Format(domain.DateFormat))
			return ErrAllSlotsConflict
		}

		// 7.3. Создаем принятые слоты пачкой
		created, err = uc.slotRepo.CreateBatch(txCtx, req.MentorID, plan.ID, accepted)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to create slots: %v", err)
			return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateSlots: created %d slots, skipped %d for mentor=%d on %s",
		len(created), skipped, req.MentorID, req.Date.Format(domain.DateFormat))

	resp := &Response{
		MentorID: req.MentorID,
		PlanID:   req.PlanID,
		Date:     req.Date,
		Created:  len(created),
		Skipped:  skipped,
		Slots:    make([]CreatedSlot, 0, len(created)),
	}
	for _, slot := range created {
		resp.Slots = append(resp.Slots, CreatedSlot{
			ID:       slot.ID,
			StartsAt: slot.StartsAt,
			EndsAt:   slot.EndsAt,
		})
	}

	return resp, nil
}
