package postgres

import (
	"errors"
	"fmt"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/client"
	clientDatamodel "github.com/dcontreras/workshop-management/internal/core/datamodel/client"
	userDatamodel "github.com/dcontreras/workshop-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// ClientRepository implements client.Repository using GORM
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) client.Repository {
	return &ClientRepository{db: db}
}

// CreateWithVehicle runs the whole promotion in one transaction: verify the
// user, insert the client row reusing the user's id and copying name and
// email, insert the vehicle only when the plate is new, and always insert the
// client-vehicle link.
func (r *ClientRepository) CreateWithVehicle(c *client.Client, v *client.Vehicle) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var u userDatamodel.User
		if err := tx.Where("id = ?", c.UserID).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrUserNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&clientDatamodel.Client{}).Where("id = ?", c.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return internal.ErrClientAlreadyRegistered
		}

		c.Name = u.Name
		c.Email = u.Email
		row := client.ToDataModel(c)
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		c.CreatedAt = row.CreatedAt

		if err := insertVehicleIfNew(tx, v); err != nil {
			return err
		}

		link := &clientDatamodel.ClientVehicle{
			ClientID: c.ID,
			Plate:    v.Plate,
		}
		return tx.Create(link).Error
	})
}

// UpdateWithVehicle rewrites the contact fields and resolves the submitted
// vehicle against the client's newest link. Same plate updates the vehicle
// row in place; a different plate inserts the vehicle if new and adds a new
// link without touching the old ones.
func (r *ClientRepository) UpdateWithVehicle(clientID int64, c *client.Client, v *client.Vehicle) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing clientDatamodel.Client
		if err := tx.Where("id = ?", clientID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrClientNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"phone":      c.Phone,
			"address":    c.Address,
			"birth_date": c.BirthDate,
			"rut":        c.RUT,
		}
		if err := tx.Model(&clientDatamodel.Client{}).Where("id = ?", clientID).Updates(updates).Error; err != nil {
			return err
		}

		var link clientDatamodel.ClientVehicle
		err := tx.Where("client_id = ?", clientID).Order("id DESC").First(&link).Error
		switch {
		case err == nil && link.Plate == v.Plate:
			return tx.Model(&clientDatamodel.Vehicle{}).Where("plate = ?", v.Plate).Updates(map[string]interface{}{
				"make":       v.Make,
				"model":      v.Model,
				"type":       v.Type,
				"color":      v.Color,
				"mileage_km": v.MileageKM,
			}).Error
		case err == nil || errors.Is(err, gorm.ErrRecordNotFound):
			if err := insertVehicleIfNew(tx, v); err != nil {
				return err
			}
			newLink := &clientDatamodel.ClientVehicle{
				ClientID: clientID,
				Plate:    v.Plate,
			}
			return tx.Create(newLink).Error
		default:
			return err
		}
	})
}

// Delete verifies the client exists, removes its links, then the client row,
// and fails the transaction unless exactly one client row was deleted.
func (r *ClientRepository) Delete(clientID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&clientDatamodel.Client{}).Where("id = ?", clientID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return internal.ErrClientNotFound
		}

		if err := tx.Where("client_id = ?", clientID).Delete(&clientDatamodel.ClientVehicle{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", clientID).Delete(&clientDatamodel.Client{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("client delete affected %d rows, expected 1", res.RowsAffected)
		}
		return nil
	})
}

func (r *ClientRepository) GetAll() ([]*client.ListItem, error) {
	var items []*client.ListItem
	err := r.db.Raw(`
		SELECT c.id, c.name, c.email, c.phone, c.address, c.birth_date, c.rut,
		       v.plate, v.make, v.model, v.type, v.color, v.mileage_km
		FROM clients c
		LEFT JOIN client_vehicles cv ON c.id = cv.client_id
		LEFT JOIN vehicles v ON cv.plate = v.plate
		ORDER BY c.id, cv.id`).Scan(&items).Error
	return items, err
}

func (r *ClientRepository) Available() ([]*client.AvailableUser, error) {
	var users []*client.AvailableUser
	err := r.db.Raw(`
		SELECT id, name, email FROM users
		WHERE role = 'client'
		AND id NOT IN (SELECT id FROM clients)
		ORDER BY id`).Scan(&users).Error
	return users, err
}

func (r *ClientRepository) Plates(clientID int64) ([]string, error) {
	var count int64
	if err := r.db.Model(&clientDatamodel.Client{}).Where("id = ?", clientID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, internal.ErrClientNotFound
	}

	var plates []string
	err := r.db.Raw(`
		SELECT plate FROM client_vehicles
		WHERE client_id = ?
		ORDER BY id`, clientID).Scan(&plates).Error
	return plates, err
}

func insertVehicleIfNew(tx *gorm.DB, v *client.Vehicle) error {
	var count int64
	if err := tx.Model(&clientDatamodel.Vehicle{}).Where("plate = ?", v.Plate).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(client.VehicleToDataModel(v)).Error
}
