package postgres

import (
	internal "github.com/dcontreras/workshop-management/internal"
	userDatamodel "github.com/dcontreras/workshop-management/internal/core/datamodel/user"
	"github.com/dcontreras/workshop-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	row := user.ToDataModel(u)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	u.ID = row.ID
	u.CreatedAt = row.CreatedAt
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var row userDatamodel.User
	err := r.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var rows []*userDatamodel.User
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(rows), nil
}

func (r *UserRepository) Delete(userID int64) error {
	res := r.db.Where("id = ?", userID).Delete(&userDatamodel.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}
