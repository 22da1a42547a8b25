package postgres

import (
	"database/sql"

	internal "github.com/dcontreras/workshop-management/internal"
	workerDatamodel "github.com/dcontreras/workshop-management/internal/core/datamodel/worker"
	"github.com/dcontreras/workshop-management/internal/worker"
	"gorm.io/gorm"
)

// WorkerRepository implements worker.Repository using GORM
type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) worker.Repository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) Create(w *worker.Worker) error {
	row := worker.ToDataModel(w)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	w.CreatedAt = row.CreatedAt
	return nil
}

func (r *WorkerRepository) Exists(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&workerDatamodel.Worker{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *WorkerRepository) GetUserRole(userID int64) (string, error) {
	var role string
	row := r.db.Raw(`SELECT role FROM users WHERE id = ?`, userID).Row()
	if err := row.Scan(&role); err != nil {
		if err == sql.ErrNoRows {
			return "", internal.ErrUserNotFound
		}
		return "", err
	}
	return role, nil
}

func (r *WorkerRepository) GetAll() ([]*worker.ListItem, error) {
	var items []*worker.ListItem
	err := r.db.Raw(`
		SELECT u.id AS user_id, u.name, u.email, w.salary_clp, w.rut, w.hired_at
		FROM users u
		INNER JOIN workers w ON u.id = w.user_id
		WHERE u.role = 'worker'
		ORDER BY u.id`).Scan(&items).Error
	return items, err
}

func (r *WorkerRepository) Available() ([]*worker.AvailableUser, error) {
	var users []*worker.AvailableUser
	err := r.db.Raw(`
		SELECT id, name, email FROM users
		WHERE role = 'worker'
		AND id NOT IN (SELECT user_id FROM workers)
		ORDER BY id`).Scan(&users).Error
	return users, err
}

func (r *WorkerRepository) Delete(userID int64) error {
	res := r.db.Where("user_id = ?", userID).Delete(&workerDatamodel.Worker{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrWorkerNotFound
	}
	return nil
}

func (r *WorkerRepository) Salaries() ([]*worker.SalaryRow, error) {
	var rows []*worker.SalaryRow
	err := r.db.Raw(`
		SELECT u.name, w.salary_clp
		FROM users u
		INNER JOIN workers w ON u.id = w.user_id
		ORDER BY u.name`).Scan(&rows).Error
	return rows, err
}
