package client

import (
	"context"
	"log/slog"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/core/events"
)

// Repository persists clients, vehicles and their links. The mutating
// operations are transactional units: either every row they touch lands or
// none does.
type Repository interface {
	CreateWithVehicle(c *Client, v *Vehicle) error
	UpdateWithVehicle(clientID int64, c *Client, v *Vehicle) error
	Delete(clientID int64) error
	GetAll() ([]*ListItem, error)
	Available() ([]*AvailableUser, error)
	Plates(clientID int64) ([]string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo     Repository
	eventBus EventPublisher
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create promotes a user to a client and links its vehicle in one
// transaction. The client row reuses the user's id and copies name and email
// from the user. The vehicle is inserted only when the plate is new; the
// client-vehicle link is always inserted.
func (s *Service) Create(dto CreateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("client creation validation failed", "error", err, "user_id", dto.UserID)
		return nil, err
	}

	c := &Client{
		ID:        dto.UserID,
		UserID:    dto.UserID,
		Phone:     dto.Phone,
		Address:   dto.Address,
		BirthDate: dto.BirthDate,
		RUT:       dto.RUT,
	}
	v := &Vehicle{
		Plate:     dto.Vehicle.Plate,
		Make:      dto.Vehicle.Make,
		Model:     dto.Vehicle.Model,
		Type:      dto.Vehicle.Type,
		Color:     dto.Vehicle.Color,
		MileageKM: dto.Vehicle.MileageKM,
	}

	if err := s.repo.CreateWithVehicle(c, v); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create client", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to create client", err)
	}

	s.logger.Info("client created", "client_id", c.ID, "plate", v.Plate)
	if s.eventBus != nil {
		s.eventBus.Publish(context.Background(), events.NewClientCreatedEvent(c.ID, v.Plate))
	}
	return c, nil
}

// Update rewrites the client's contact fields and resolves the submitted
// vehicle against the client's current link. Same plate means the vehicle row
// is updated in place; a different plate links a new vehicle without removing
// earlier links, so the newest link wins.
func (s *Service) Update(clientID int64, dto UpdateClientDTO) error {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("client update validation failed", "error", err, "client_id", clientID)
		return err
	}

	c := &Client{
		ID:        clientID,
		Phone:     dto.Phone,
		Address:   dto.Address,
		BirthDate: dto.BirthDate,
		RUT:       dto.RUT,
	}
	v := &Vehicle{
		Plate:     dto.Vehicle.Plate,
		Make:      dto.Vehicle.Make,
		Model:     dto.Vehicle.Model,
		Type:      dto.Vehicle.Type,
		Color:     dto.Vehicle.Color,
		MileageKM: dto.Vehicle.MileageKM,
	}

	if err := s.repo.UpdateWithVehicle(clientID, c, v); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to update client", "error", err, "client_id", clientID)
		return internal.NewInternalError("failed to update client", err)
	}

	s.logger.Info("client updated", "client_id", clientID, "plate", v.Plate)
	return nil
}

// Delete removes the client and all of its vehicle links in one transaction.
// Vehicles themselves survive; they may be linked to other clients.
func (s *Service) Delete(clientID int64) error {
	if err := s.repo.Delete(clientID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete client", "error", err, "client_id", clientID)
		return internal.NewInternalError("failed to delete client", err)
	}

	s.logger.Info("client deleted", "client_id", clientID)
	if s.eventBus != nil {
		s.eventBus.Publish(context.Background(), events.NewClientDeletedEvent(clientID))
	}
	return nil
}

func (s *Service) GetAll() ([]*ListItem, error) {
	clients, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list clients", "error", err)
		return nil, internal.NewInternalError("failed to list clients", err)
	}
	return clients, nil
}

func (s *Service) Available() ([]*AvailableUser, error) {
	users, err := s.repo.Available()
	if err != nil {
		s.logger.Error("failed to list available clients", "error", err)
		return nil, internal.NewInternalError("failed to list available clients", err)
	}
	return users, nil
}

func (s *Service) Plates(clientID int64) ([]string, error) {
	plates, err := s.repo.Plates(clientID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to list client plates", "error", err, "client_id", clientID)
		return nil, internal.NewInternalError("failed to list client plates", err)
	}
	return plates, nil
}
