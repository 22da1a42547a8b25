package worker

import "time"

// Worker extends a user with role=worker. One row per user, keyed by the
// user id itself.
type Worker struct {
	UserID    int64     `json:"user_id" gorm:"column:user_id;primaryKey"`
	SalaryCLP int64     `json:"salary_clp" gorm:"column:salary_clp;not null"`
	RUT       string    `json:"rut" gorm:"column:rut;not null"`
	HiredAt   time.Time `json:"hired_at" gorm:"column:hired_at;type:date;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Worker) TableName() string {
	return "workers"
}
