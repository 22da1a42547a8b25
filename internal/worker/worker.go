package worker

import (
	"time"

	workerDatamodel "github.com/dcontreras/workshop-management/internal/core/datamodel/worker"
)

type Worker struct {
	UserID    int64     `json:"user_id"`
	SalaryCLP int64     `json:"salary_clp"`
	RUT       string    `json:"rut"`
	HiredAt   time.Time `json:"hired_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ListItem is a worker row joined with its user account.
type ListItem struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	SalaryCLP int64     `json:"salary_clp"`
	RUT       string    `json:"rut"`
	HiredAt   time.Time `json:"hired_at"`
}

// AvailableUser is a user with role=worker not yet promoted to a worker row.
type AvailableUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SalaryRow is one line of the salary report.
type SalaryRow struct {
	Name      string `json:"name"`
	SalaryCLP int64  `json:"salary_clp"`
}

func ToDataModel(w *Worker) *workerDatamodel.Worker {
	return &workerDatamodel.Worker{
		UserID:    w.UserID,
		SalaryCLP: w.SalaryCLP,
		RUT:       w.RUT,
		HiredAt:   w.HiredAt,
		CreatedAt: w.CreatedAt,
	}
}

func FromDataModel(w *workerDatamodel.Worker) *Worker {
	return &Worker{
		UserID:    w.UserID,
		SalaryCLP: w.SalaryCLP,
		RUT:       w.RUT,
		HiredAt:   w.HiredAt,
		CreatedAt: w.CreatedAt,
	}
}
