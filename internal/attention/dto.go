package attention

import (
	"time"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/core/common/validation"
)

// RegisterAttentionDTO records work performed on a client's vehicle.
type RegisterAttentionDTO struct {
	ClientID    int64     `json:"client_id"`
	Plate       string    `json:"plate"`
	WorkerID    int64     `json:"worker_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	AmountCLP   int64     `json:"amount_clp"`
}

func (dto RegisterAttentionDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("client_id", dto.ClientID).Required()
	v.Field("worker_id", dto.WorkerID).Required()
	v.Field("description", dto.Description).Required().MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidatePlate(dto.Plate); err != nil {
		return err
	}
	if err := validation.ValidateServiceDate(dto.Date); err != nil {
		return err
	}
	return validation.ValidateAmount(dto.AmountCLP)
}
