package postgres

import (
	"database/sql"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(email string) (string, *auth.User, error) {
	var passwordHash string
	user := &auth.User{}

	query := `SELECT id, email, role, password_hash FROM users WHERE email = ?`
	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Role, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", nil, internal.ErrUserNotFound
		}
		return "", nil, err
	}

	return passwordHash, user, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	user := &auth.User{}

	query := `SELECT id, email, role FROM users WHERE id = ?`
	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
