package user

import (
	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/auth"
	"github.com/dcontreras/workshop-management/internal/core/common/validation"
)

// RegisterDTO is the payload for creating a user account.
type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required()
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("password", dto.Password).Required().MinLength(5)
	v.Field("role", dto.Role).Required().
		OneOf([]string{auth.RoleAdmin, auth.RoleOperator, auth.RoleWorker, auth.RoleClient}, internal.ErrCodeInvalidRole)
	return v.Validate()
}

// RegisterResult echoes the generated id back to the caller.
type RegisterResult struct {
	ID int64 `json:"id"`
}
