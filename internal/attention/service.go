package attention

import (
	"context"
	"log/slog"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/core/events"
)

// Repository persists attentions and certificates. RegisterWithCertificate is
// a transactional unit: the attention insert, the issue callback and the
// certificate insert commit together or not at all.
type Repository interface {
	RegisterWithCertificate(a *Attention, issue func(a *Attention) (string, error)) (string, error)
	Exists(attentionID int64) (bool, error)
	GetAll() ([]*ListItem, error)
	Certificates() ([]*CertificateRow, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	generator CertificateGenerator
	eventBus  EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, generator CertificateGenerator, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Register commits the attention, its PDF artifact and the certificate row as
// one unit. A generator failure rolls the database writes back so no
// attention exists without its certificate.
func (s *Service) Register(dto RegisterAttentionDTO) (*RegisterResult, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("attention validation failed", "error", err, "client_id", dto.ClientID)
		return nil, err
	}

	a := &Attention{
		ClientID:    dto.ClientID,
		Plate:       dto.Plate,
		WorkerID:    dto.WorkerID,
		Date:        dto.Date,
		Description: dto.Description,
		AmountCLP:   dto.AmountCLP,
	}

	path, err := s.repo.RegisterWithCertificate(a, s.generator.Generate)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to register attention", "error", err, "client_id", dto.ClientID, "plate", dto.Plate)
		return nil, internal.NewInternalError("failed to register attention", err)
	}

	s.logger.Info("attention registered", "attention_id", a.ID, "client_id", a.ClientID, "certificate", path)
	if s.eventBus != nil {
		s.eventBus.Publish(context.Background(),
			events.NewAttentionRegisteredEvent(a.ID, a.ClientID, a.Plate, a.AmountCLP, path))
	}

	return &RegisterResult{ID: a.ID, CertificatePath: path}, nil
}

func (s *Service) GetAll() ([]*ListItem, error) {
	attentions, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list attentions", "error", err)
		return nil, internal.NewInternalError("failed to list attentions", err)
	}
	return attentions, nil
}

func (s *Service) Certificates() ([]*CertificateRow, error) {
	rows, err := s.repo.Certificates()
	if err != nil {
		s.logger.Error("failed to list certificates", "error", err)
		return nil, internal.NewInternalError("failed to list certificates", err)
	}
	return rows, nil
}

// CertificatePath resolves the artifact location for a committed attention.
func (s *Service) CertificatePath(attentionID int64) (string, error) {
	exists, err := s.repo.Exists(attentionID)
	if err != nil {
		s.logger.Error("failed to look up attention", "error", err, "attention_id", attentionID)
		return "", internal.NewInternalError("failed to look up attention", err)
	}
	if !exists {
		return "", internal.ErrAttentionNotFound
	}
	return s.generator.Path(attentionID), nil
}
