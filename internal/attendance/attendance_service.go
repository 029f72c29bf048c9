package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "smg-portal/internal/attendance/errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	GetSummary(ctx context.Context, userID, month string) (SummaryResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetSummary(ctx context.Context, userID, month string) (SummaryResponse, error) {
	if _, err := time.Parse(MonthLayout, month); err != nil {
		return SummaryResponse{}, attendanceerrors.ErrInvalidMonth
	}
	row, err := s.repo.FindSummary(ctx, userID, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, attendanceerrors.ErrSummaryNotFound
		}
		return SummaryResponse{}, err
	}
	return mapToResponse(*row), nil
}

func mapToResponse(s MonthlySummary) SummaryResponse {
	return SummaryResponse{
		UserID:         s.UserID.String(),
		Month:          s.Month,
		TotalDays:      s.TotalDays,
		PresentDays:    s.PresentDays,
		AbsentDays:     s.AbsentDays,
		HalfDays:       s.HalfDays,
		LeaveDays:      s.LeaveDays,
		TotalWorkHours: s.TotalWorkHours,
		OvertimeHours:  s.OvertimeHours,
		Remarks:        s.Remarks,
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}
