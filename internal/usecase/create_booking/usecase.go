package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	planRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/plan"
	slotRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/MMP-SchedulingService/internal/integrations/notifyservice"
)

// UseCase use case создания бронирования
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	planRepo     PlanRepository
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	planRepo PlanRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		planRepo:     planRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Резервирование слота (compare-and-set free -> booked) и создание записи
// бронирования идут в одной сериализуемой транзакции: при N конкурентных
// попытках на один слот ровно одна завершается успехом, остальные получают
// ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, slot=%d", req.ClientID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 2. Резервирование и создание бронирования в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Атомарный переход free -> booked
		if err := uc.slotRepo.Reserve(txCtx, req.SlotID); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			case errors.Is(err, slotRepo.ErrSlotNotAvailable):
				uc.logger.Info("CreateBooking: slot id=%d already booked, client=%d lost the race",
					req.SlotID, req.ClientID)
				return ErrSlotNotAvailable
			default:
				uc.logger.Error("CreateBooking: failed to reserve slot id=%d: %v", req.SlotID, err)
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			}
		}

		// 2.2. Читаем слот - его время копируется в бронирование
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get reserved slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// Начавшийся слот бронировать нельзя
		if !slot.StartsAt.After(now) {
			uc.logger.Warn("CreateBooking: slot id=%d starts at %s, already in the past",
				slot.ID, slot.StartsAt.Format(domain.DateFormat+" "+domain.TimeFormat))
			return ErrSlotInPast
		}

		// 2.3. Окно чата берём из плана, которым был создан слот
		plan, err := uc.planRepo.GetByID(txCtx, slot.PlanID)
		if err != nil {
			if errors.Is(err, planRepo.ErrPlanNotFound) {
				// Слот ссылается на несуществующий план - нарушение целостности
				uc.logger.Error("CreateBooking: slot id=%d references missing plan id=%d", slot.ID, slot.PlanID)
				return fmt.Errorf("%w: slot references missing plan", ErrInternal)
			}
			uc.logger.Error("CreateBooking: failed to get plan id=%d: %v", slot.PlanID, err)
			return fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
		}

		// 2.4. Создаем бронирование с денормализацией времени сессии и окна чата
		booking := &domain.Booking{
			Reference:      uuid.NewString(),
			SlotID:         slot.ID,
			MentorID:       slot.MentorID,
			ClientID:       req.ClientID,
			Status:         domain.StatusScheduled,
			PaymentStatus:  domain.PaymentPending,
			StartsAt:       slot.StartsAt,
			EndsAt:         slot.EndsAt,
			ChatWindowDays: plan.ChatWindowDays,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d ref=%s for client=%d, slot=%d",
		result.ID, result.Reference, req.ClientID, req.SlotID)

	// 3. Уведомление отправляется после коммита, доставка не гарантируется ядром
	uc.notifyClient.NotifyAsync(notifyservice.EventBookingCreated, notifyservice.Payload{
		BookingID:        result.ID,
		BookingReference: result.Reference,
		MentorID:         result.MentorID,
		ClientID:         result.ClientID,
		StartsAt:         result.StartsAt,
		EndsAt:           result.EndsAt,
	})

	return &Response{
		ID:             result.ID,
		Reference:      result.Reference,
		SlotID:         result.SlotID,
		MentorID:       result.MentorID,
		ClientID:       result.ClientID,
		Status:         string(result.Status),
		PaymentStatus:  string(result.PaymentStatus),
		StartsAt:       result.StartsAt,
		EndsAt:         result.EndsAt,
		ChatWindowDays: result.ChatWindowDays,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
