package user

import (
	"log/slog"

	internal "github.com/dcontreras/workshop-management/internal"
)

// PasswordHasher abstracts credential hashing so the service can be tested
// without bcrypt cost.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Repository interface {
	Create(u *User) error
	GetByEmail(email string) (*User, error)
	GetAll() ([]*User, error)
	Delete(userID int64) error
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates a user account with a hashed credential. The role is fixed
// at registration; no operation updates it afterwards.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("user registration validation failed", "error", err, "email", dto.Email)
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("user registration rejected: email taken", "email", dto.Email)
		return nil, internal.ErrEmailTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         dto.Role,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) GetAll() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// Delete removes the user row. Worker and client extension rows have their
// own delete operations; this does not cascade.
func (s *Service) Delete(userID int64) error {
	if err := s.repo.Delete(userID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		return internal.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
