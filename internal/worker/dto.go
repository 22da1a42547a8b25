package worker

import (
	"time"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/core/common/validation"
)

// CreateWorkerDTO is the payload for promoting a user to worker.
type CreateWorkerDTO struct {
	UserID    int64     `json:"user_id"`
	SalaryCLP int64     `json:"salary_clp"`
	RUT       string    `json:"rut"`
	HiredAt   time.Time `json:"hired_at"`
}

func (dto CreateWorkerDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("user_id", dto.UserID).Required()
	v.Field("salary_clp", dto.SalaryCLP).Required().MinInt(1, internal.ErrCodeInvalidAmount)
	v.Field("hired_at", dto.HiredAt).Required().NotFuture()
	if err := v.Validate(); err != nil {
		return err
	}
	return validation.ValidateRUT(dto.RUT)
}
