package client

import (
	"time"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/core/common/validation"
)

type VehicleDTO struct {
	Plate     string `json:"plate"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Type      string `json:"type"`
	Color     string `json:"color"`
	MileageKM int64  `json:"mileage_km"`
}

func (dto VehicleDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("make", dto.Make).Required()
	v.Field("model", dto.Model).Required()
	v.Field("type", dto.Type).Required()
	v.Field("color", dto.Color).Required()
	v.Field("mileage_km", dto.MileageKM).Required().MinInt(0, internal.ErrCodeValidationFailed)
	if err := v.Validate(); err != nil {
		return err
	}
	return validation.ValidatePlate(dto.Plate)
}

// CreateClientDTO promotes a user to a client and links its vehicle.
type CreateClientDTO struct {
	UserID    int64      `json:"user_id"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	BirthDate time.Time  `json:"birth_date"`
	RUT       string     `json:"rut"`
	Vehicle   VehicleDTO `json:"vehicle"`
}

func (dto CreateClientDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("user_id", dto.UserID).Required()
	v.Field("phone", dto.Phone).Required()
	v.Field("address", dto.Address).Required()
	v.Field("birth_date", dto.BirthDate).Required().NotFuture()
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateRUT(dto.RUT); err != nil {
		return err
	}
	return dto.Vehicle.Validate()
}

// UpdateClientDTO updates a client's contact fields and resolves its vehicle.
type UpdateClientDTO struct {
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	BirthDate time.Time  `json:"birth_date"`
	RUT       string     `json:"rut"`
	Vehicle   VehicleDTO `json:"vehicle"`
}

func (dto UpdateClientDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("phone", dto.Phone).Required()
	v.Field("address", dto.Address).Required()
	v.Field("birth_date", dto.BirthDate).Required().NotFuture()
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateRUT(dto.RUT); err != nil {
		return err
	}
	return dto.Vehicle.Validate()
}
