package client

import "time"

// Client extends a user with role=client; the client id reuses the user id.
type Client struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Phone     string    `json:"phone" gorm:"not null"`
	Address   string    `json:"address" gorm:"not null"`
	BirthDate time.Time `json:"birth_date" gorm:"column:birth_date;type:date"`
	RUT       string    `json:"rut" gorm:"column:rut;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Client) TableName() string {
	return "clients"
}

type Vehicle struct {
	Plate     string `json:"plate" gorm:"primaryKey"`
	Make      string `json:"make" gorm:"not null"`
	Model     string `json:"model" gorm:"not null"`
	Type      string `json:"type" gorm:"column:type;not null"`
	Color     string `json:"color" gorm:"not null"`
	MileageKM int64  `json:"mileage_km" gorm:"column:mileage_km;not null"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// ClientVehicle links a client to a vehicle. Links are additive: updating a
// client to a different plate inserts a new row and keeps the old one, so the
// table doubles as ownership history. The newest row (highest id) is the
// client's current vehicle.
type ClientVehicle struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ClientID  int64     `json:"client_id" gorm:"column:client_id;not null"`
	Plate     string    `json:"plate" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (ClientVehicle) TableName() string {
	return "client_vehicles"
}
