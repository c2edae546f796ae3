package get_mentor_plans

import (
	"context"

	"github.com/m04kA/MMP-SchedulingService/internal/service/plans/models"
)

type PlanService interface {
	List(ctx context.Context, req *models.ListPlansRequest) (*models.PlanListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
