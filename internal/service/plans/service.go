package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	planRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/plan"
	mentorClient "github.com/m04kA/MMP-SchedulingService/internal/integrations/mentorservice"
	"github.com/m04kA/MMP-SchedulingService/internal/service/plans/models"
)

// Service сервис для работы с планами менторов
type Service struct {
	planRepo     PlanRepository
	mentorClient MentorServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса планов
func NewService(planRepo PlanRepository, mentorClient MentorServiceClient, logger Logger) *Service {
	return &Service{
		planRepo:     planRepo,
		mentorClient: mentorClient,
		logger:       logger,
	}
}

// Create создает новый план ментора
// Ментор создаёт план только для себя, существование ментора проверяется
// через MentorService
func (s *Service) Create(ctx context.Context, req *models.CreatePlanRequest) (*models.PlanResponse, error) {
	s.logger.Info("Create: creating plan for mentor=%d by user=%d", req.MentorID, req.UserID)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed for mentor=%d: %v", req.MentorID, err)
		return nil, err
	}

	if req.UserID != req.MentorID {
		s.logger.Warn("Create: access denied for user=%d to mentor=%d plans", req.UserID, req.MentorID)
		return nil, ErrAccessDenied
	}

	// Проверяем существование ментора
	if _, err := s.mentorClient.GetMentor(ctx, req.MentorID); err != nil {
		if errors.Is(err, mentorClient.ErrMentorNotFound) {
			s.logger.Warn("Create: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		s.logger.Error("Create: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Create - failed to get mentor: %v", ErrInternal, err)
	}

	chatWindowDays := domain.DefaultChatWindowDays
	if req.ChatWindowDays != nil {
		chatWindowDays = *req.ChatWindowDays
	}

	plan := &domain.Plan{
		MentorID:        req.MentorID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		ChatWindowDays:  chatWindowDays,
		IsActive:        true,
	}

	created, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		s.logger.Error("Create: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created plan id=%d for mentor=%d", created.ID, created.MentorID)
	return models.FromDomainPlan(created), nil
}

// List получает планы ментора
// Публичный метод - клиенты просматривают предложения ментора
func (s *Service) List(ctx context.Context, req *models.ListPlansRequest) (*models.PlanListResponse, error) {
	s.logger.Info("List: fetching plans for mentor=%d, onlyActive=%v", req.MentorID, req.OnlyActive)

	if req.MentorID <= 0 {
		return nil, fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	plans, err := s.planRepo.GetByMentorID(ctx, req.MentorID, req.OnlyActive)
	if err != nil {
		s.logger.Error("List: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d plans for mentor=%d", len(plans), req.MentorID)
	return models.FromDomainPlanList(plans), nil
}

// Update обновляет план ментора
// Меняются название, цена, окно чата и активность. Длительность неизменна -
// слоты, созданные по плану, не должны менять размер задним числом.
// Деактивация плана не трогает уже созданные слоты
func (s *Service) Update(ctx context.Context, req *models.UpdatePlanRequest) (*models.PlanResponse, error) {
	s.logger.Info("Update: updating plan id=%d by user=%d", req.PlanID, req.UserID)

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for plan id=%d: %v", req.PlanID, err)
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			s.logger.Warn("Update: plan id=%d not found", req.PlanID)
			return nil, ErrPlanNotFound
		}
		s.logger.Error("Update: repository error for plan id=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if plan.MentorID != req.UserID {
		s.logger.Warn("Update: access denied for user=%d to plan id=%d", req.UserID, req.PlanID)
		return nil, ErrAccessDenied
	}

	if req.Title != nil {
		plan.Title = *req.Title
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.ChatWindowDays != nil {
		plan.ChatWindowDays = *req.ChatWindowDays
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			s.logger.Warn("Update: plan id=%d not found during update", req.PlanID)
			return nil, ErrPlanNotFound
		}
		s.logger.Error("Update: repository error for plan id=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		s.logger.Error("Update: failed to reload plan id=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: Update - failed to reload plan: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated plan id=%d", req.PlanID)
	return models.FromDomainPlan(updated), nil
}

// Валидация

func validateCreateRequest(req *models.CreatePlanRequest) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.Title == "" || len(req.Title) > domain.MaxPlanTitleLength {
		return fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, domain.MaxPlanTitleLength)
	}

	if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if req.ChatWindowDays != nil {
		if *req.ChatWindowDays < domain.MinChatWindowDays || *req.ChatWindowDays > domain.MaxChatWindowDays {
			return fmt.Errorf("%w: chatWindowDays must be between %d and %d",
				ErrInvalidInput, domain.MinChatWindowDays, domain.MaxChatWindowDays)
		}
	}

	return nil
}

func validateUpdateRequest(req *models.UpdatePlanRequest) error {
	if req.PlanID <= 0 {
		return fmt.Errorf("%w: planID must be positive", ErrInvalidInput)
	}

	if req.Title != nil && (*req.Title == "" || len(*req.Title) > domain.MaxPlanTitleLength) {
		return fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, domain.MaxPlanTitleLength)
	}

	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if req.ChatWindowDays != nil {
		if *req.ChatWindowDays < domain.MinChatWindowDays || *req.ChatWindowDays > domain.MaxChatWindowDays {
			return fmt.Errorf("%w: chatWindowDays must be between %d and %d",
				ErrInvalidInput, domain.MinChatWindowDays, domain.MaxChatWindowDays)
		}
	}

	return nil
}
