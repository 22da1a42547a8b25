package worker

import (
	"log/slog"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/auth"
)

type Repository interface {
	Create(w *Worker) error
	Exists(userID int64) (bool, error)
	GetUserRole(userID int64) (string, error)
	GetAll() ([]*ListItem, error)
	Available() ([]*AvailableUser, error)
	Delete(userID int64) error
	Salaries() ([]*SalaryRow, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create promotes an existing user with role=worker to a worker row. A user
// without the worker role is rejected before any write; a user already
// promoted is a conflict.
func (s *Service) Create(dto CreateWorkerDTO) (*Worker, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("worker creation validation failed", "error", err, "user_id", dto.UserID)
		return nil, err
	}

	role, err := s.repo.GetUserRole(dto.UserID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to look up user role", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if role != auth.RoleWorker {
		s.logger.Warn("worker creation rejected: user lacks worker role", "user_id", dto.UserID, "role", role)
		return nil, internal.NewValidationError("user does not have the worker role", internal.ErrCodeInvalidRole)
	}

	exists, err := s.repo.Exists(dto.UserID)
	if err != nil {
		s.logger.Error("failed to check existing worker", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to check existing worker", err)
	}
	if exists {
		s.logger.Warn("worker creation rejected: already registered", "user_id", dto.UserID)
		return nil, internal.ErrWorkerAlreadyRegistered
	}

	w := &Worker{
		UserID:    dto.UserID,
		SalaryCLP: dto.SalaryCLP,
		RUT:       dto.RUT,
		HiredAt:   dto.HiredAt,
	}

	if err := s.repo.Create(w); err != nil {
		s.logger.Error("failed to create worker", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to create worker", err)
	}

	s.logger.Info("worker created", "user_id", w.UserID)
	return w, nil
}

func (s *Service) GetAll() ([]*ListItem, error) {
	workers, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list workers", "error", err)
		return nil, internal.NewInternalError("failed to list workers", err)
	}
	return workers, nil
}

func (s *Service) Available() ([]*AvailableUser, error) {
	users, err := s.repo.Available()
	if err != nil {
		s.logger.Error("failed to list available workers", "error", err)
		return nil, internal.NewInternalError("failed to list available workers", err)
	}
	return users, nil
}

// Delete removes the worker row only; the underlying user account stays.
func (s *Service) Delete(userID int64) error {
	if err := s.repo.Delete(userID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete worker", "error", err, "user_id", userID)
		return internal.NewInternalError("failed to delete worker", err)
	}

	s.logger.Info("worker deleted", "user_id", userID)
	return nil
}

func (s *Service) Salaries() ([]*SalaryRow, error) {
	rows, err := s.repo.Salaries()
	if err != nil {
		s.logger.Error("failed to build salary report", "error", err)
		return nil, internal.NewInternalError("failed to build salary report", err)
	}
	return rows, nil
}
