package client

import (
	"time"

	clientDatamodel "github.com/dcontreras/workshop-management/internal/core/datamodel/client"
)

type Client struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	BirthDate time.Time `json:"birth_date"`
	RUT       string    `json:"rut"`
	CreatedAt time.Time `json:"created_at"`
}

type Vehicle struct {
	Plate     string `json:"plate"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Type      string `json:"type"`
	Color     string `json:"color"`
	MileageKM int64  `json:"mileage_km"`
}

// ListItem is one row of the client listing: client fields joined with the
// linked vehicle, one row per link. Vehicle columns are nullable because a
// client may have no link yet.
type ListItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	BirthDate time.Time `json:"birth_date"`
	RUT       string    `json:"rut"`
	Plate     *string   `json:"plate,omitempty"`
	Make      *string   `json:"make,omitempty"`
	Model     *string   `json:"model,omitempty"`
	Type      *string   `json:"type,omitempty"`
	Color     *string   `json:"color,omitempty"`
	MileageKM *int64    `json:"mileage_km,omitempty"`
}

// AvailableUser is a user with role=client not yet promoted to a client row.
type AvailableUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToDataModel(c *Client) *clientDatamodel.Client {
	return &clientDatamodel.Client{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		BirthDate: c.BirthDate,
		RUT:       c.RUT,
		CreatedAt: c.CreatedAt,
	}
}

func FromDataModel(c *clientDatamodel.Client) *Client {
	return &Client{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		BirthDate: c.BirthDate,
		RUT:       c.RUT,
		CreatedAt: c.CreatedAt,
	}
}

func VehicleToDataModel(v *Vehicle) *clientDatamodel.Vehicle {
	return &clientDatamodel.Vehicle{
		Plate:     v.Plate,
		Make:      v.Make,
		Model:     v.Model,
		Type:      v.Type,
		Color:     v.Color,
		MileageKM: v.MileageKM,
	}
}

func VehicleFromDataModel(v *clientDatamodel.Vehicle) *Vehicle {
	return &Vehicle{
		Plate:     v.Plate,
		Make:      v.Make,
		Model:     v.Model,
		Type:      v.Type,
		Color:     v.Color,
		MileageKM: v.MileageKM,
	}
}
