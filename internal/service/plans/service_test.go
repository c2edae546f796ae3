package plans

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	planstorage "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/plan"
	"github.com/m04kA/MMP-SchedulingService/internal/integrations/mentorservice"
	"github.com/m04kA/MMP-SchedulingService/internal/service/plans/models"
	"github.com/m04kA/MMP-SchedulingService/pkg/ptr"
)

// Фейки

type fakePlanRepo struct {
	plans  map[int64]*domain.Plan
	nextID int64
}

func (f *fakePlanRepo) Create(_ context.Context, plan *domain.Plan) (*domain.Plan, error) {
	f.nextID++
	created := *plan
	created.ID = f.nextID
	f.plans[created.ID] = &created
	return &created, nil
}

func (f *fakePlanRepo) GetByID(_ context.Context, id int64) (*domain.Plan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, planstorage.ErrPlanNotFound
	}
	copied := *plan
	return &copied, nil
}

func (f *fakePlanRepo) GetByMentorID(_ context.Context, mentorID int64, onlyActive bool) ([]*domain.Plan, error) {
	var result []*domain.Plan
	for _, p := range f.plans {
		if p.MentorID != mentorID {
			continue
		}
		if onlyActive && !p.IsActive {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *fakePlanRepo) Update(_ context.Context, plan *domain.Plan) error {
	if _, ok := f.plans[plan.ID]; !ok {
		return planstorage.ErrPlanNotFound
	}
	copied := *plan
	f.plans[plan.ID] = &copied
	return nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

const testMentorID = int64(1)

func newTestService() (*Service, *fakePlanRepo) {
	repo := &fakePlanRepo{plans: map[int64]*domain.Plan{}}
	svc := NewService(repo, &fakeMentorClient{mentors: map[int64]*mentorservice.Mentor{
		testMentorID: {ID: testMentorID, DisplayName: "Mentor", IsActive: true},
	}}, nopLogger{})
	return svc, repo
}

func validCreateRequest() *models.CreatePlanRequest {
	return &models.CreatePlanRequest{
		MentorID:        testMentorID,
		UserID:          testMentorID,
		Title:           "Mock interview",
		DurationMinutes: 60,
		Price:           3500,
	}
}

// Тесты

func TestCreate_DefaultChatWindow(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultChatWindowDays, resp.ChatWindowDays)
	assert.True(t, resp.IsActive)
}

func TestCreate_ExplicitChatWindow(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.ChatWindowDays = ptr.Ptr(14)

	resp, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 14, resp.ChatWindowDays)
}

func TestCreate_SelfOnly(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.UserID = 777

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_MentorNotFound(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.MentorID = 999
	req.UserID = 999

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrMentorNotFound)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*models.CreatePlanRequest)
	}{
		{"empty title", func(r *models.CreatePlanRequest) { r.Title = "" }},
		{"duration too short", func(r *models.CreatePlanRequest) { r.DurationMinutes = domain.MinSlotDurationMinutes - 1 }},
		{"duration too long", func(r *models.CreatePlanRequest) { r.DurationMinutes = domain.MaxSlotDurationMinutes + 1 }},
		{"negative price", func(r *models.CreatePlanRequest) { r.Price = -1 }},
		{"chat window out of range", func(r *models.CreatePlanRequest) { r.ChatWindowDays = ptr.Ptr(domain.MaxChatWindowDays + 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestList_OnlyActive(t *testing.T) {
	svc, repo := newTestService()
	repo.plans[1] = &domain.Plan{ID: 1, MentorID: testMentorID, IsActive: true}
	repo.plans[2] = &domain.Plan{ID: 2, MentorID: testMentorID, IsActive: false}

	resp, err := svc.List(context.Background(), &models.ListPlansRequest{MentorID: testMentorID, OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Plans, 1)

	resp, err = svc.List(context.Background(), &models.ListPlansRequest{MentorID: testMentorID})
	require.NoError(t, err)
	assert.Len(t, resp.Plans, 2)
}

func TestUpdate_MutableFieldsOnly(t *testing.T) {
	svc, repo := newTestService()
	repo.plans[1] = &domain.Plan{
		ID:              1,
		MentorID:        testMentorID,
		Title:           "Mock interview",
		DurationMinutes: 60,
		Price:           3500,
		ChatWindowDays:  7,
		IsActive:        true,
	}

	resp, err := svc.Update(context.Background(), &models.UpdatePlanRequest{
		PlanID:         1,
		UserID:         testMentorID,
		Title:          ptr.Ptr("System design"),
		Price:          ptr.Ptr(5000.0),
		ChatWindowDays: ptr.Ptr(10),
		IsActive:       ptr.Ptr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, "System design", resp.Title)
	assert.Equal(t, 5000.0, resp.Price)
	assert.Equal(t, 10, resp.ChatWindowDays)
	assert.False(t, resp.IsActive)
	// Длительность остаётся прежней
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc, repo := newTestService()
	repo.plans[1] = &domain.Plan{ID: 1, MentorID: testMentorID, IsActive: true}

	_, err := svc.Update(context.Background(), &models.UpdatePlanRequest{
		PlanID: 1,
		UserID: 777,
		Title:  ptr.Ptr("Hijacked"),
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), &models.UpdatePlanRequest{PlanID: 999, UserID: testMentorID})
	require.ErrorIs(t, err, ErrPlanNotFound)
}
