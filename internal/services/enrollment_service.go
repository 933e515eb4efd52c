package services

import (
	"context"
	"errors"
	"time"

	"github.com/farellandr/eventstay/internal/apperrors"
	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/repository"
)

type EnrollmentService struct {
	enrollments repository.EnrollmentRepository
}

func NewEnrollmentService(repos *repository.Repositories) *EnrollmentService {
	return &EnrollmentService{enrollments: repos.Enrollments}
}

func (s *EnrollmentService) GetEnrollmentForUser(ctx context.Context, userID uint) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("enrollment not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find enrollment", err)
	}
	return enrollment, nil
}

// SaveEnrollment creates the user's enrollment or updates the existing one.
func (s *EnrollmentService) SaveEnrollment(ctx context.Context, userID uint, enrollment *models.Enrollment) (*models.Enrollment, error) {
	if !enrollment.Birthday.Before(time.Now()) {
		return nil, apperrors.BadRequest("birthday must be in the past")
	}

	enrollment.ID = 0
	enrollment.UserID = userID
	if err := s.enrollments.Save(ctx, enrollment); err != nil {
		return nil, apperrors.Internal("save enrollment", err)
	}
	return enrollment, nil
}
