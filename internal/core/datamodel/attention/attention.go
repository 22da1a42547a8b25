package attention

import "time"

// Attention records work performed on a client's vehicle by a worker.
// Rows are immutable once created.
type Attention struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	ClientID    int64     `json:"client_id" gorm:"column:client_id;not null"`
	Plate       string    `json:"plate" gorm:"not null"`
	WorkerID    int64     `json:"worker_id" gorm:"column:worker_id;not null"`
	Date        time.Time `json:"date" gorm:"column:date;type:date;not null"`
	Description string    `json:"description" gorm:"not null"`
	AmountCLP   int64     `json:"amount_clp" gorm:"column:amount_clp;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Attention) TableName() string {
	return "attentions"
}

// Certificate is the 1:1 database record for an attention's PDF artifact.
type Certificate struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	AttentionID int64     `json:"attention_id" gorm:"column:attention_id;uniqueIndex;not null"`
	IssuedAt    time.Time `json:"issued_at" gorm:"column:issued_at;type:date;not null"`
	Description string    `json:"description" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Certificate) TableName() string {
	return "certificates"
}
