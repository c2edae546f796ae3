package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/MMP-SchedulingService/internal/integrations/notifyservice"
)

// UseCase use case переноса бронирования на другой слот
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
// Порядок строгий: сначала резервируется новый слот, затем бронирование
// перепривязывается, и только потом освобождается старый слот. Всё в одной
// сериализуемой транзакции - при любой ошибке бронирование остаётся на
// старом слоте без промежуточных состояний.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, newSlot=%d",
		req.BookingID, req.UserID, req.NewSlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result      *domain.Booking
		oldSlotID   int64
		oldStartsAt = now
	)

	// 2. Перенос в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем бронирование с блокировкой
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Переносить может только участник бронирования
		if booking.ClientID != req.UserID && booking.MentorID != req.UserID {
			uc.logger.Warn("RescheduleBooking: user=%d is not a participant of booking id=%d",
				req.UserID, booking.ID)
			return ErrAccessDenied
		}

		// 2.3. Завершённые и отменённые бронирования не переносятся,
		// включая derived completed - сессия на старом слоте уже прошла
		if !booking.CanBeRescheduled() || booking.EffectiveStatus(now) != domain.StatusScheduled {
			uc.logger.Warn("RescheduleBooking: booking id=%d has status %s, cannot reschedule",
				booking.ID, booking.EffectiveStatus(now))
			return ErrNotReschedulable
		}

		if booking.SlotID == req.NewSlotID {
			return ErrSameSlot
		}

		// 2.4. Проверяем новый слот до резервирования
		newSlot, err := uc.slotRepo.GetByID(txCtx, req.NewSlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("RescheduleBooking: slot id=%d not found", req.NewSlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get slot id=%d: %v", req.NewSlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if newSlot.MentorID != booking.MentorID {
			uc.logger.Warn("RescheduleBooking: slot id=%d belongs to mentor=%d, booking mentor=%d",
				newSlot.ID, newSlot.MentorID, booking.MentorID)
			return ErrWrongMentor
		}

		if !newSlot.StartsAt.After(now) {
			uc.logger.Warn("RescheduleBooking: slot id=%d starts at %s, already in the past",
				newSlot.ID, newSlot.StartsAt.Format(domain.DateFormat+" "+domain.TimeFormat))
			return ErrSlotInPast
		}

		// 2.5. Резервируем новый слот ДО освобождения старого
		if err := uc.slotRepo.Reserve(txCtx, req.NewSlotID); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			case errors.Is(err, slotRepo.ErrSlotNotAvailable):
				uc.logger.Info("RescheduleBooking: slot id=%d already booked, booking id=%d stays on slot id=%d",
					req.NewSlotID, booking.ID, booking.SlotID)
				return ErrSlotNotAvailable
			default:
				uc.logger.Error("RescheduleBooking: failed to reserve slot id=%d: %v", req.NewSlotID, err)
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			}
		}

		oldSlotID = booking.SlotID
		oldStartsAt = booking.StartsAt

		// 2.6. Перепривязываем бронирование к новому слоту
		if err := uc.bookingRepo.RebindSlot(txCtx, booking.ID, newSlot.ID, newSlot.StartsAt, newSlot.EndsAt); err != nil {
			uc.logger.Error("RescheduleBooking: failed to rebind booking id=%d to slot id=%d: %v",
				booking.ID, newSlot.ID, err)
			return fmt.Errorf("%w: failed to rebind booking: %v", ErrInternal, err)
		}

		// 2.7. Освобождаем старый слот
		if err := uc.slotRepo.Release(txCtx, oldSlotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) || errors.Is(err, slotRepo.ErrSlotNotBooked) {
				// Старый слот мог быть удалён ментором - перенос всё равно корректен
				uc.logger.Warn("RescheduleBooking: old slot id=%d not released: %v", oldSlotID, err)
			} else {
				uc.logger.Error("RescheduleBooking: failed to release old slot id=%d: %v", oldSlotID, err)
				return fmt.Errorf("%w: failed to release old slot: %v", ErrInternal, err)
			}
		}

		// Перечитываем бронирование, чтобы вернуть актуальные поля
		updated, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to reload booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully moved booking id=%d from slot id=%d to slot id=%d",
		result.ID, oldSlotID, result.SlotID)

	// 3. Уведомление после коммита
	uc.notifyClient.NotifyAsync(notifyservice.EventBookingRescheduled, notifyservice.Payload{
		BookingID:        result.ID,
		BookingReference: result.Reference,
		MentorID:         result.MentorID,
		ClientID:         result.ClientID,
		StartsAt:         result.StartsAt,
		EndsAt:           result.EndsAt,
		OldStartsAt:      &oldStartsAt,
	})

	return &Response{
		ID:            result.ID,
		Reference:     result.Reference,
		SlotID:        result.SlotID,
		MentorID:      result.MentorID,
		ClientID:      result.ClientID,
		Status:        string(result.Status),
		PaymentStatus: string(result.PaymentStatus),
		StartsAt:      result.StartsAt,
		EndsAt:        result.EndsAt,
		OldSlotID:     oldSlotID,
		OldStartsAt:   oldStartsAt,
	}, nil
}
