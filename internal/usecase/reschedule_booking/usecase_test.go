package reschedule_booking

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
)

// Фейки

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
	ops   []string
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotstorage.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepo) Reserve(_ context.Context, id int64) error {
	slot, ok := f.slots[id]
	if !ok {
		return slotstorage.ErrSlotNotFound
	}
	if slot.Status != domain.SlotStatusFree {
		return slotstorage.ErrSlotNotAvailable
	}
	slot.Status = domain.SlotStatusBooked
	f.ops = append(f.ops, "reserve")
	return nil
}

func (f *fakeSlotRepo) Release(_ context.Context, id int64) error {
	slot, ok := f.slots[id]
	if !ok {
		return slotstorage.ErrSlotNotFound
	}
	if slot.Status != domain.SlotStatusBooked {
		return slotstorage.ErrSlotNotBooked
	}
	slot.Status = domain.SlotStatusFree
	f.ops = append(f.ops, "release")
	return nil
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	ops      *fakeSlotRepo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingstorage.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) RebindSlot(_ context.Context, id int64, slotID int64, startsAt, endsAt time.Time) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	booking.SlotID = slotID
	booking.StartsAt = startsAt
	booking.EndsAt = endsAt
	if f.ops != nil {
		f.ops.ops = append(f.ops.ops, "rebind")
	}
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
	testOldSlotID = int64(7)
	testNewSlotID = int64(8)
	testMentorID  = int64(1)
	testClientID  = int64(100)
)

func testNow() time.Time {
	return time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
}

type fixture struct {
	slotRepo    *fakeSlotRepo
	bookingRepo *fakeBookingRepo
	notify      *fakeNotifyClient
	uc          *UseCase
}

func newFixture() *fixture {
	oldStart := testNow().Add(24 * time.Hour)
	newStart := testNow().Add(48 * time.Hour)

	slotRepo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		testOldSlotID: {
			ID:       testOldSlotID,
			MentorID: testMentorID,
			StartsAt: oldStart,
			EndsAt:   oldStart.Add(time.Hour),
			Status:   domain.SlotStatusBooked,
		},
		testNewSlotID: {
			ID:       testNewSlotID,
			MentorID: testMentorID,
			StartsAt: newStart,
			EndsAt:   newStart.Add(time.Hour),
			Status:   domain.SlotStatusFree,
		},
	}}

	bookingRepo := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			testBookingID: {
				ID:        testBookingID,
				Reference: "ref-55",
				SlotID:    testOldSlotID,
				MentorID:  testMentorID,
				ClientID:  testClientID,
				Status:    domain.StatusScheduled,
				StartsAt:  oldStart,
				EndsAt:    oldStart.Add(time.Hour),
			},
		},
		ops: slotRepo,
	}

	notify := &fakeNotifyClient{}
	uc := NewUseCase(slotRepo, bookingRepo, notify, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow()}

	return &fixture{slotRepo: slotRepo, bookingRepo: bookingRepo, notify: notify, uc: uc}
}

func validRequest() *Request {
	return &Request{BookingID: testBookingID, UserID: testClientID, NewSlotID: testNewSlotID}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	oldStart := f.bookingRepo.bookings[testBookingID].StartsAt
	newStart := f.slotRepo.slots[testNewSlotID].StartsAt

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, testNewSlotID, resp.SlotID)
	assert.Equal(t, newStart, resp.StartsAt)
	assert.Equal(t, testOldSlotID, resp.OldSlotID)
	assert.Equal(t, oldStart, resp.OldStartsAt)

	// Новый слот занят, старый освобождён
	assert.Equal(t, domain.SlotStatusBooked, f.slotRepo.slots[testNewSlotID].Status)
	assert.Equal(t, domain.SlotStatusFree, f.slotRepo.slots[testOldSlotID].Status)

	// Новый резервируется ДО освобождения старого
	assert.Equal(t, []string{"reserve", "rebind", "release"}, f.slotRepo.ops)

	// Уведомление с прежним началом сессии
	require.Len(t, f.notify.calls, 1)
	assert.Equal(t, notifyservice.EventBookingRescheduled, f.notify.calls[0].event)
	require.NotNil(t, f.notify.calls[0].payload.OldStartsAt)
	assert.Equal(t, oldStart, *f.notify.calls[0].payload.OldStartsAt)
}

func TestExecute_MentorCanReschedule(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.UserID = testMentorID

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_NewSlotTaken_BookingUnchanged(t *testing.T) {
	f := newFixture()
	f.slotRepo.slots[testNewSlotID].Status = domain.SlotStatusBooked

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrSlotNotAvailable)

	// Бронирование осталось на старом слоте, старый слот не освобождён
	booking := f.bookingRepo.bookings[testBookingID]
	assert.Equal(t, testOldSlotID, booking.SlotID)
	assert.Equal(t, domain.SlotStatusBooked, f.slotRepo.slots[testOldSlotID].Status)
	assert.Empty(t, f.notify.calls)
}

func TestExecute_OldSlotDeletedByMentor(t *testing.T) {
	f := newFixture()
	delete(f.slotRepo.slots, testOldSlotID)

	// Перенос корректен даже если старый слот уже удалён
	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, testNewSlotID, resp.SlotID)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.BookingID = 999

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_NotParticipant(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.UserID = 777

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_CancelledNotReschedulable(t *testing.T) {
	f := newFixture()
	f.bookingRepo.bookings[testBookingID].Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrNotReschedulable)
}

func TestExecute_DerivedCompletedNotReschedulable(t *testing.T) {
	f := newFixture()

	// Сессия на старом слоте уже прошла, статус scheduled ещё не обновлён
	booking := f.bookingRepo.bookings[testBookingID]
	booking.StartsAt = testNow().Add(-2 * time.Hour)
	booking.EndsAt = testNow().Add(-time.Hour)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrNotReschedulable)
}

func TestExecute_SameSlot(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.NewSlotID = testOldSlotID

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSameSlot)
}

func TestExecute_NewSlotNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.NewSlotID = 999

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_WrongMentorSlot(t *testing.T) {
	f := newFixture()
	f.slotRepo.slots[testNewSlotID].MentorID = 42

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrWrongMentor)
}

func TestExecute_NewSlotInPast(t *testing.T) {
	f := newFixture()
	f.slotRepo.slots[testNewSlotID].StartsAt = testNow().Add(-time.Hour)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 0, UserID: testClientID, NewSlotID: testNewSlotID})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: testBookingID, UserID: testClientID, NewSlotID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}
