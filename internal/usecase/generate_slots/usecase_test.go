package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	planstorage "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/plan"
	"github.com/m04kA/MMP-SchedulingService/internal/integrations/mentorservice"
	"github.com/m04kA/MMP-SchedulingService/pkg/types"
)

// Фейки

type fakeSlotRepo struct {
	existing  []*domain.Slot
	created   []domain.Interval
	nextID    int64
	listErr   error
	createErr error
}

func (f *fakeSlotRepo) GetByMentorWithFilter(_ context.Context, _ domain.SlotsFilter) ([]*domain.Slot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.existing, nil
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, mentorID, planID int64, intervals []domain.Interval) ([]*domain.Slot, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, intervals...)

	slots := make([]*domain.Slot, 0, len(intervals))
	for _, iv := range intervals {
		f.nextID++
		slots = append(slots, &domain.Slot{
			ID:       f.nextID,
			MentorID: mentorID,
			PlanID:   planID,
			StartsAt: iv.Start,
			EndsAt:   iv.End,
			Status:   domain.SlotStatusFree,
		})
	}
	return slots, nil
}

type fakePlanRepo struct {
	plans map[int64]*domain.Plan
	err   error
}

func (f *fakePlanRepo) GetByID(_ context.Context, id int64) (*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	plan, ok := f.plans[id]
	if !ok {
		return nil, planstorage.ErrPlanNotFound
	}
	return plan, nil
}

type fakeMentorClient struct {
	mentors map[int64]*mentorservice.Mentor
}

func (f *fakeMentorClient) GetMentor(_ context.Context, mentorID int64) (*mentorservice.Mentor, error) {
	mentor, ok := f.mentors[mentorID]
	if !ok {
		return nil, mentorservice.ErrMentorNotFound
	}
	return mentor, nil
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
	testMentorID = int64(1)
	testPlanID   = int64(10)
)

func testDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func ts(t *testing.T, value string) types.TimeString {
	t.Helper()
	parsed, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return parsed
}

func slotAt(startHour, startMin, endHour, endMin int) *domain.Slot {
	day := testDate()
	return &domain.Slot{
		ID:       100,
		MentorID: testMentorID,
		PlanID:   testPlanID,
		StartsAt: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		EndsAt:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
		Status:   domain.SlotStatusFree,
	}
}

func newTestUseCase(slotRepo *fakeSlotRepo, durationMinutes int) *UseCase {
	uc := NewUseCase(
		slotRepo,
		&fakePlanRepo{plans: map[int64]*domain.Plan{
			testPlanID: {
				ID:              testPlanID,
				MentorID:        testMentorID,
				Title:           "Mock interview",
				DurationMinutes: durationMinutes,
				ChatWindowDays:  3,
				IsActive:        true,
			},
		}},
		&fakeMentorClient{mentors: map[int64]*mentorservice.Mentor{
			testMentorID: {ID: testMentorID, DisplayName: "Mentor", IsActive: true},
		}},
		&fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testDate().Add(-24 * time.Hour)}
	return uc
}

// Тесты

func TestExecute_GeneratesBackToBackSlots(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	uc := newTestUseCase(slotRepo, 60)

	resp, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "09:00"),
		EndTime:   ts(t, "11:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 0, resp.Skipped)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, testDate().Add(9*time.Hour), resp.Slots[0].StartsAt)
	assert.Equal(t, testDate().Add(10*time.Hour), resp.Slots[0].EndsAt)
	assert.Equal(t, testDate().Add(10*time.Hour), resp.Slots[1].StartsAt)
	assert.Equal(t, testDate().Add(11*time.Hour), resp.Slots[1].EndsAt)
}

func TestExecute_DiscardsBoundaryExceedingCandidate(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	uc := newTestUseCase(slotRepo, 45)

	// Окно 90 минут при длительности 45: два кандидата, третий вышел бы за границу
	resp, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "09:00"),
		EndTime:   ts(t, "10:40"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, testDate().Add(9*time.Hour+90*time.Minute), resp.Slots[1].EndsAt)
}

func TestExecute_WindowShorterThanSlot(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	uc := newTestUseCase(slotRepo, 60)

	resp, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "09:00"),
		EndTime:   ts(t, "09:30"),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 0, resp.Skipped)
	assert.Empty(t, resp.Slots)
	assert.Empty(t, slotRepo.created)
}

func TestExecute_PartialSuccessSkipsConflicts(t *testing.T) {
	// Существующий слот 11:20-11:40 конфликтует с кандидатом 11:30-12:00
	slotRepo := &fakeSlotRepo{existing: []*domain.Slot{slotAt(11, 20, 11, 40)}}
	uc := newTestUseCase(slotRepo, 30)

	resp, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "11:30"),
		EndTime:   ts(t, "12:30"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, testDate().Add(12*time.Hour), resp.Slots[0].StartsAt)
}

func TestExecute_TouchingEndpointsAreNotConflicts(t *testing.T) {
	// Существующий слот 11:00-11:30 граничит с кандидатом 11:30-12:00
	slotRepo := &fakeSlotRepo{existing: []*domain.Slot{slotAt(11, 0, 11, 30)}}
	uc := newTestUseCase(slotRepo, 30)

	resp, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "11:30"),
		EndTime:   ts(t, "12:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 0, resp.Skipped)
}

func TestExecute_AllCandidatesConflict(t *testing.T) {
	// Существующий слот накрывает всё окно
	slotRepo := &fakeSlotRepo{existing: []*domain.Slot{slotAt(9, 0, 12, 0)}}
	uc := newTestUseCase(slotRepo, 60)

	_, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "09:00"),
		EndTime:   ts(t, "11:00"),
	})

	require.ErrorIs(t, err, ErrAllSlotsConflict)
	assert.Empty(t, slotRepo.created, "nothing must be created when the whole batch conflicts")
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, 60)

	_, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "11:00"),
		EndTime:   ts(t, "09:00"),
	})

	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, 60)
	uc.timeProvider = &fixedTimeProvider{now: testDate().Add(48 * time.Hour)}

	_, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "09:00"),
		EndTime:   ts(t, "11:00"),
	})

	require.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_MentorNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, 60)

	_, err := uc.Execute(context.Background(), &Request{
		MentorID:  999,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "09:00"),
		EndTime:   ts(t, "11:00"),
	})

	require.ErrorIs(t, err, ErrMentorNotFound)
}

func TestExecute_PlanOwnedByAnotherMentor(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotRepo{},
		&fakePlanRepo{plans: map[int64]*domain.Plan{
			testPlanID: {ID: testPlanID, MentorID: 42, DurationMinutes: 60, IsActive: true},
		}},
		&fakeMentorClient{mentors: map[int64]*mentorservice.Mentor{
			testMentorID: {ID: testMentorID},
		}},
		&fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testDate().Add(-24 * time.Hour)}

	_, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "09:00"),
		EndTime:   ts(t, "11:00"),
	})

	require.ErrorIs(t, err, ErrPlanNotFound)
}

func TestExecute_InactivePlan(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotRepo{},
		&fakePlanRepo{plans: map[int64]*domain.Plan{
			testPlanID: {ID: testPlanID, MentorID: testMentorID, DurationMinutes: 60, IsActive: false},
		}},
		&fakeMentorClient{mentors: map[int64]*mentorservice.Mentor{
			testMentorID: {ID: testMentorID},
		}},
		&fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testDate().Add(-24 * time.Hour)}

	_, err := uc.Execute(context.Background(), &Request{
		MentorID:  testMentorID,
		PlanID:    testPlanID,
		Date:      testDate(),
		StartTime: ts(t, "09:00"),
		EndTime:   ts(t, "11:00"),
	})

	require.ErrorIs(t, err, ErrPlanInactive)
}

func TestBuildCandidates_ExactFit(t *testing.T) {
	start := testDate().Add(9 * time.Hour)
	end := testDate().Add(11 * time.Hour)

	candidates := buildCandidates(start, end, time.Hour)

	require.Len(t, candidates, 2)
	assert.Equal(t, start, candidates[0].Start)
	assert.Equal(t, end, candidates[1].End)
}

func TestBuildCandidates_EmptyWindow(t *testing.T) {
	start := testDate().Add(9 * time.Hour)

	assert.Empty(t, buildCandidates(start, start, time.Hour))
	assert.Empty(t, buildCandidates(start.Add(time.Hour), start, time.Hour))
}
