package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/MMP-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/MMP-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят только его участники - клиент и ментор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkParticipant(booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// GetMentorBookings получает бронирования ментора с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых
// Доступно только самому ментору
//
// Примеры использования:
// - Все активные: GetMentorBookings(ctx, &GetMentorBookingsRequest{MentorID: 1, UserID: 1})
// - За период: указать StartDate и EndDate
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetMentorBookings(ctx context.Context, req *models.GetMentorBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetMentorBookings: fetching bookings for mentor=%d, user=%d", req.MentorID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	// Расписание с клиентами видит только сам ментор
	if req.UserID != req.MentorID {
		s.logger.Warn("GetMentorBookings: access denied for user=%d to mentor=%d bookings", req.UserID, req.MentorID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetMentorBookings: invalid filter for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByMentorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMentorBookings: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: GetMentorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMentorBookings: successfully fetched %d bookings for mentor=%d", len(bookings), req.MentorID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// Cancel отменяет бронирование и освобождает его слот
// Отменить может любой участник - клиент или ментор. Завершённые сессии
// (в том числе derived completed по прошедшему концу) не отменяются.
// Отмена и освобождение слота идут в одной транзакции
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	now := s.timeProvider.Now()

	var cancelled *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if err := s.checkParticipant(booking, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return err
		}

		// Проверяем эффективный статус: scheduled с прошедшим концом сессии
		// считается завершённым и отмене не подлежит
		if !booking.CanBeCancelled() || booking.EffectiveStatus(now) != domain.StatusScheduled {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.EffectiveStatus(now))
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Освобождаем слот - он снова доступен для бронирования
		if err := s.slotRepo.Release(txCtx, booking.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) || errors.Is(err, slotRepo.ErrSlotNotBooked) {
				// Слот мог быть удалён ментором - отмена всё равно корректна
				s.logger.Warn("Cancel: slot id=%d not released: %v", booking.SlotID, err)
			} else {
				s.logger.Error("Cancel: failed to release slot id=%d: %v", booking.SlotID, err)
				return fmt.Errorf("%w: Cancel - failed to release slot: %v", ErrInternal, err)
			}
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d, slot id=%d released", bookingID, cancelled.SlotID)

	// Уведомление после коммита
	s.notifyClient.NotifyAsync(notifyservice.EventBookingCancelled, notifyservice.Payload{
		BookingID:        cancelled.ID,
		BookingReference: cancelled.Reference,
		MentorID:         cancelled.MentorID,
		ClientID:         cancelled.ClientID,
		StartsAt:         cancelled.StartsAt,
		EndsAt:           cancelled.EndsAt,
	})

	return nil
}

// UpdateStatus обновляет статус и/или платёжный статус бронирования
// Доступно только ментору. Единственный допустимый переход статуса -
// явное завершение (scheduled -> completed); отмена идёт через Cancel
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d by user=%d", bookingID, req.UserID)

	if req.Status == nil && req.PaymentStatus == nil {
		s.logger.Warn("UpdateStatus: no fields to update for booking id=%d", bookingID)
		return fmt.Errorf("%w: status or paymentStatus required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if booking.MentorID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if req.Status != nil {
		newStatus, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil || newStatus != domain.StatusCompleted {
			s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", *req.Status, bookingID)
			return ErrInvalidStatus
		}

		if booking.Status != domain.StatusScheduled {
			s.logger.Warn("UpdateStatus: booking id=%d has status=%s, cannot complete", bookingID, booking.Status)
			return ErrInvalidStatus
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("UpdateStatus: booking id=%d marked completed", bookingID)
	}

	if req.PaymentStatus != nil {
		newPayment, err := models.ToDomainPaymentStatus(*req.PaymentStatus)
		if err != nil {
			s.logger.Warn("UpdateStatus: invalid paymentStatus=%s for booking id=%d", *req.PaymentStatus, bookingID)
			return fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
		}

		if err := s.bookingRepo.SetPaymentStatus(ctx, bookingID, newPayment); err != nil {
			s.logger.Error("UpdateStatus: failed to set payment status for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("UpdateStatus: booking id=%d payment status set to %s", bookingID, newPayment)
	}

	return nil
}

// AttachMeetingLink прикрепляет ссылку на встречу к бронированию
// Доступно только ментору, бронирование должно быть активным
func (s *Service) AttachMeetingLink(ctx context.Context, bookingID int64, req *models.AttachMeetingLinkRequest) error {
	s.logger.Info("AttachMeetingLink: attaching link to booking id=%d by user=%d", bookingID, req.UserID)

	if req.MeetingLink == "" {
		return fmt.Errorf("%w: meetingLink is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("AttachMeetingLink: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("AttachMeetingLink: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AttachMeetingLink - repository error: %v", ErrInternal, err)
	}

	if booking.MentorID != req.UserID {
		s.logger.Warn("AttachMeetingLink: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.IsActive() {
		s.logger.Warn("AttachMeetingLink: booking id=%d is cancelled", bookingID)
		return ErrBookingInactive
	}

	if err := s.bookingRepo.SetMeetingLink(ctx, bookingID, req.MeetingLink); err != nil {
		s.logger.Error("AttachMeetingLink: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AttachMeetingLink - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AttachMeetingLink: successfully attached link to booking id=%d", bookingID)

	s.notifyClient.NotifyAsync(notifyservice.EventMeetingLinkAdded, notifyservice.Payload{
		BookingID:        booking.ID,
		BookingReference: booking.Reference,
		MentorID:         booking.MentorID,
		ClientID:         booking.ClientID,
		StartsAt:         booking.StartsAt,
		EndsAt:           booking.EndsAt,
		MeetingLink:      &req.MeetingLink,
	})

	return nil
}

// AttachNotes прикрепляет ссылку на заметки сессии к бронированию
// Доступно только ментору, бронирование должно быть активным.
// Доступ клиента к заметкам бессрочный - gate только по их наличию
func (s *Service) AttachNotes(ctx context.Context, bookingID int64, req *models.AttachNotesRequest) error {
	s.logger.Info("AttachNotes: attaching notes to booking id=%d by user=%d", bookingID, req.UserID)

	if req.NotesRef == "" {
		return fmt.Errorf("%w: notesRef is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("AttachNotes: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("AttachNotes: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AttachNotes - repository error: %v", ErrInternal, err)
	}

	if booking.MentorID != req.UserID {
		s.logger.Warn("AttachNotes: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.IsActive() {
		s.logger.Warn("AttachNotes: booking id=%d is cancelled", bookingID)
		return ErrBookingInactive
	}

	if err := s.bookingRepo.SetNotesRef(ctx, bookingID, req.NotesRef); err != nil {
		s.logger.Error("AttachNotes: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AttachNotes - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AttachNotes: successfully attached notes to booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// checkParticipant проверяет, что пользователь - участник бронирования
func (s *Service) checkParticipant(booking *domain.Booking, userID int64) error {
	if booking.ClientID == userID || booking.MentorID == userID {
		return nil
	}
	return ErrAccessDenied
}
