package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	bookingstorage "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/booking"
	slotstorage "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/MMP-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/MMP-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/MMP-SchedulingService/pkg/ptr"
)

// Фейки

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingstorage.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetByClientID(_ context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.ClientID != clientID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByMentorWithFilter(_ context.Context, filter domain.MentorBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.MentorID != filter.MentorID {
			continue
		}
		if !filter.IncludeCancelled && b.Status == domain.StatusCancelled {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	booking.Status = domain.StatusCancelled
	if reason != "" {
		booking.CancellationReason = &reason
	}
	return nil
}

func (f *fakeBookingRepo) SetMeetingLink(_ context.Context, id int64, link string) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	booking.MeetingLink = &link
	return nil
}

func (f *fakeBookingRepo) SetNotesRef(_ context.Context, id int64, notesRef string) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	booking.NotesRef = &notesRef
	return nil
}

func (f *fakeBookingRepo) SetPaymentStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	booking.PaymentStatus = status
	return nil
}

type fakeSlotRepo struct {
	released   []int64
	releaseErr error
}

func (f *fakeSlotRepo) Release(_ context.Context, id int64) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.released = append(f.released, id)
	return nil
}

type notifyCall struct {
	event   notifyservice.Event
	payload notifyservice.Payload
}

type fakeNotifyClient struct {
	calls []notifyCall
}

func (f *fakeNotifyClient) NotifyAsync(event notifyservice.Event, payload notifyservice.Payload) {
	f.calls = append(f.calls, notifyCall{event: event, payload: payload})
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

const (
	testBookingID = int64(55)
	testSlotID    = int64(7)
	testMentorID  = int64(1)
	testClientID  = int64(100)
	strangerID    = int64(777)
)

func testNow() time.Time {
	return time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
}

func scheduledBooking() *domain.Booking {
	return &domain.Booking{
		ID:            testBookingID,
		Reference:     "ref-55",
		SlotID:        testSlotID,
		MentorID:      testMentorID,
		ClientID:      testClientID,
		Status:        domain.StatusScheduled,
		PaymentStatus: domain.PaymentPending,
		StartsAt:      testNow().Add(24 * time.Hour),
		EndsAt:        testNow().Add(25 * time.Hour),
	}
}

type fixture struct {
	bookingRepo *fakeBookingRepo
	slotRepo    *fakeSlotRepo
	notify      *fakeNotifyClient
	svc         *Service
}

func newFixture(bookings ...*domain.Booking) *fixture {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}

	slotRepo := &fakeSlotRepo{}
	notify := &fakeNotifyClient{}
	svc := NewService(repo, slotRepo, notify, &fakeTxManager{}, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow()}

	return &fixture{bookingRepo: repo, slotRepo: slotRepo, notify: notify, svc: svc}
}

// Тесты

func TestGetByID_ParticipantsOnly(t *testing.T) {
	f := newFixture(scheduledBooking())

	resp, err := f.svc.GetByID(context.Background(), testBookingID, testClientID)
	require.NoError(t, err)
	assert.Equal(t, testBookingID, resp.ID)

	_, err = f.svc.GetByID(context.Background(), testBookingID, testMentorID)
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), testBookingID, strangerID)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_ReturnsEffectiveStatus(t *testing.T) {
	booking := scheduledBooking()
	booking.StartsAt = testNow().Add(-2 * time.Hour)
	booking.EndsAt = testNow().Add(-time.Hour)
	f := newFixture(booking)

	resp, err := f.svc.GetByID(context.Background(), testBookingID, testClientID)

	require.NoError(t, err)
	// Конец сессии прошёл - отдаётся derived completed без записи в хранилище
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, domain.StatusScheduled, f.bookingRepo.bookings[testBookingID].Status)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 999, testClientID)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ReleasesSlotAndNotifies(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
		UserID:             testClientID,
		CancellationReason: "не смогу прийти",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, f.bookingRepo.bookings[testBookingID].Status)
	assert.Equal(t, []int64{testSlotID}, f.slotRepo.released)

	require.Len(t, f.notify.calls, 1)
	assert.Equal(t, notifyservice.EventBookingCancelled, f.notify.calls[0].event)
	assert.Equal(t, testBookingID, f.notify.calls[0].payload.BookingID)
}

func TestCancel_ByMentor(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{UserID: testMentorID})
	require.NoError(t, err)
}

func TestCancel_Stranger(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{UserID: strangerID})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.slotRepo.released)
}

func TestCancel_DerivedCompletedNotCancellable(t *testing.T) {
	booking := scheduledBooking()
	booking.StartsAt = testNow().Add(-2 * time.Hour)
	booking.EndsAt = testNow().Add(-time.Hour)
	f := newFixture(booking)

	err := f.svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{UserID: testClientID})

	require.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusScheduled, f.bookingRepo.bookings[testBookingID].Status)
	assert.Empty(t, f.notify.calls)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := scheduledBooking()
	booking.Status = domain.StatusCancelled
	f := newFixture(booking)

	err := f.svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{UserID: testClientID})
	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_SlotAlreadyDeleted(t *testing.T) {
	f := newFixture(scheduledBooking())
	f.slotRepo.releaseErr = slotstorage.ErrSlotNotFound

	// Слот удалён ментором - отмена всё равно проходит
	err := f.svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{UserID: testClientID})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, f.bookingRepo.bookings[testBookingID].Status)
}

func TestUpdateStatus_Complete(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.UpdateStatus(context.Background(), testBookingID, &models.UpdateStatusRequest{
		UserID: testMentorID,
		Status: ptr.Ptr(string(domain.StatusCompleted)),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, f.bookingRepo.bookings[testBookingID].Status)
}

func TestUpdateStatus_OnlyMentor(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.UpdateStatus(context.Background(), testBookingID, &models.UpdateStatusRequest{
		UserID: testClientID,
		Status: ptr.Ptr(string(domain.StatusCompleted)),
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_CancellationGoesThroughCancel(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.UpdateStatus(context.Background(), testBookingID, &models.UpdateStatusRequest{
		UserID: testMentorID,
		Status: ptr.Ptr(string(domain.StatusCancelled)),
	})

	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_CompletedIsTerminal(t *testing.T) {
	booking := scheduledBooking()
	booking.Status = domain.StatusCompleted
	f := newFixture(booking)

	err := f.svc.UpdateStatus(context.Background(), testBookingID, &models.UpdateStatusRequest{
		UserID: testMentorID,
		Status: ptr.Ptr(string(domain.StatusCompleted)),
	})

	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_PaymentStatus(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.UpdateStatus(context.Background(), testBookingID, &models.UpdateStatusRequest{
		UserID:        testMentorID,
		PaymentStatus: ptr.Ptr(string(domain.PaymentPaid)),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, f.bookingRepo.bookings[testBookingID].PaymentStatus)
}

func TestUpdateStatus_NoFields(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.UpdateStatus(context.Background(), testBookingID, &models.UpdateStatusRequest{UserID: testMentorID})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAttachMeetingLink(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.AttachMeetingLink(context.Background(), testBookingID, &models.AttachMeetingLinkRequest{
		UserID:      testMentorID,
		MeetingLink: "https://meet.example.com/abc",
	})

	require.NoError(t, err)
	require.NotNil(t, f.bookingRepo.bookings[testBookingID].MeetingLink)
	assert.Equal(t, "https://meet.example.com/abc", *f.bookingRepo.bookings[testBookingID].MeetingLink)

	require.Len(t, f.notify.calls, 1)
	assert.Equal(t, notifyservice.EventMeetingLinkAdded, f.notify.calls[0].event)
	require.NotNil(t, f.notify.calls[0].payload.MeetingLink)
}

func TestAttachMeetingLink_ClientForbidden(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.AttachMeetingLink(context.Background(), testBookingID, &models.AttachMeetingLinkRequest{
		UserID:      testClientID,
		MeetingLink: "https://meet.example.com/abc",
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestAttachMeetingLink_CancelledBooking(t *testing.T) {
	booking := scheduledBooking()
	booking.Status = domain.StatusCancelled
	f := newFixture(booking)

	err := f.svc.AttachMeetingLink(context.Background(), testBookingID, &models.AttachMeetingLinkRequest{
		UserID:      testMentorID,
		MeetingLink: "https://meet.example.com/abc",
	})

	require.ErrorIs(t, err, ErrBookingInactive)
}

func TestAttachNotes(t *testing.T) {
	booking := scheduledBooking()
	booking.Status = domain.StatusCompleted
	f := newFixture(booking)

	err := f.svc.AttachNotes(context.Background(), testBookingID, &models.AttachNotesRequest{
		UserID:   testMentorID,
		NotesRef: "doc://notes/55",
	})

	require.NoError(t, err)
	require.NotNil(t, f.bookingRepo.bookings[testBookingID].NotesRef)
	assert.Equal(t, "doc://notes/55", *f.bookingRepo.bookings[testBookingID].NotesRef)
	// Прикрепление заметок не триггерит уведомление
	assert.Empty(t, f.notify.calls)
}

func TestAttachNotes_EmptyRef(t *testing.T) {
	f := newFixture(scheduledBooking())

	err := f.svc.AttachNotes(context.Background(), testBookingID, &models.AttachNotesRequest{UserID: testMentorID})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_FiltersByStatus(t *testing.T) {
	active := scheduledBooking()
	cancelled := scheduledBooking()
	cancelled.ID = 56
	cancelled.Status = domain.StatusCancelled
	f := newFixture(active, cancelled)

	resp, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: testClientID,
		Status: ptr.Ptr(string(domain.StatusCancelled)),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(56), resp.Bookings[0].ID)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: testClientID,
		Status: ptr.Ptr("paused"),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMentorBookings_SelfOnly(t *testing.T) {
	f := newFixture(scheduledBooking())

	resp, err := f.svc.GetMentorBookings(context.Background(), &models.GetMentorBookingsRequest{
		MentorID: testMentorID,
		UserID:   testMentorID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetMentorBookings(context.Background(), &models.GetMentorBookingsRequest{
		MentorID: testMentorID,
		UserID:   testClientID,
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetMentorBookings_ExcludesCancelledByDefault(t *testing.T) {
	active := scheduledBooking()
	cancelled := scheduledBooking()
	cancelled.ID = 56
	cancelled.Status = domain.StatusCancelled
	f := newFixture(active, cancelled)

	resp, err := f.svc.GetMentorBookings(context.Background(), &models.GetMentorBookingsRequest{
		MentorID: testMentorID,
		UserID:   testMentorID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = f.svc.GetMentorBookings(context.Background(), &models.GetMentorBookingsRequest{
		MentorID:         testMentorID,
		UserID:           testMentorID,
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}
