package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	slotstorage "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/MMP-SchedulingService/internal/service/slots/models"
	"github.com/m04kA/MMP-SchedulingService/pkg/ptr"
)

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotstorage.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepo) GetByMentorWithFilter(_ context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	var result []*domain.Slot
	for _, s := range f.slots {
		if s.MentorID != filter.MentorID {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	slot, ok := f.slots[id]
	if !ok {
		return slotstorage.ErrSlotNotFound
	}
	if slot.Status == domain.SlotStatusBooked {
		return slotstorage.ErrSlotBooked
	}
	delete(f.slots, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	testMentorID = int64(1)
	testSlotID   = int64(7)
)

func newTestService(slots ...*domain.Slot) (*Service, *fakeSlotRepo) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{}}
	for _, s := range slots {
		repo.slots[s.ID] = s
	}
	return NewService(repo, nopLogger{}), repo
}

func freeSlot() *domain.Slot {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	return &domain.Slot{
		ID:       testSlotID,
		MentorID: testMentorID,
		PlanID:   10,
		StartsAt: start,
		EndsAt:   start.Add(time.Hour),
		Status:   domain.SlotStatusFree,
	}
}

func TestList_FilterByStatus(t *testing.T) {
	booked := freeSlot()
	booked.ID = 8
	booked.Status = domain.SlotStatusBooked
	svc, _ := newTestService(freeSlot(), booked)

	resp, err := svc.List(context.Background(), &models.ListSlotsRequest{
		MentorID: testMentorID,
		Status:   ptr.Ptr(string(domain.SlotStatusFree)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, testSlotID, resp.Slots[0].ID)

	resp, err = svc.List(context.Background(), &models.ListSlotsRequest{MentorID: testMentorID})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestList_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.List(context.Background(), &models.ListSlotsRequest{
		MentorID: testMentorID,
		Status:   ptr.Ptr("reserved"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_InvalidMentorID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.List(context.Background(), &models.ListSlotsRequest{MentorID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_FreeSlot(t *testing.T) {
	svc, repo := newTestService(freeSlot())

	err := svc.Delete(context.Background(), &models.DeleteSlotRequest{SlotID: testSlotID, UserID: testMentorID})

	require.NoError(t, err)
	assert.Empty(t, repo.slots)
}

func TestDelete_BookedSlot(t *testing.T) {
	slot := freeSlot()
	slot.Status = domain.SlotStatusBooked
	svc, repo := newTestService(slot)

	err := svc.Delete(context.Background(), &models.DeleteSlotRequest{SlotID: testSlotID, UserID: testMentorID})

	require.ErrorIs(t, err, ErrSlotBooked)
	assert.Len(t, repo.slots, 1)
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, _ := newTestService(freeSlot())

	err := svc.Delete(context.Background(), &models.DeleteSlotRequest{SlotID: testSlotID, UserID: 777})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Delete(context.Background(), &models.DeleteSlotRequest{SlotID: 999, UserID: testMentorID})
	require.ErrorIs(t, err, ErrSlotNotFound)
}
