package postgres

import (
	"fmt"

	"github.com/dcontreras/workshop-management/internal/attention"
	attentionDatamodel "github.com/dcontreras/workshop-management/internal/core/datamodel/attention"
	"gorm.io/gorm"
)

// AttentionRepository implements attention.Repository using GORM
type AttentionRepository struct {
	db *gorm.DB
}

func NewAttentionRepository(db *gorm.DB) attention.Repository {
	return &AttentionRepository{db: db}
}

// RegisterWithCertificate inserts the attention, invokes the issue callback
// with the committed id, and inserts the certificate row, all inside one
// transaction. If the callback fails the attention insert rolls back.
func (r *AttentionRepository) RegisterWithCertificate(a *attention.Attention, issue func(a *attention.Attention) (string, error)) (string, error) {
	var path string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		row := attention.ToDataModel(a)
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		a.ID = row.ID
		a.CreatedAt = row.CreatedAt

		p, err := issue(a)
		if err != nil {
			return fmt.Errorf("certificate generation failed: %w", err)
		}
		path = p

		cert := &attentionDatamodel.Certificate{
			AttentionID: a.ID,
			IssuedAt:    a.Date,
			Description: "Certificado de " + a.Description,
		}
		return tx.Create(cert).Error
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (r *AttentionRepository) Exists(attentionID int64) (bool, error) {
	var count int64
	err := r.db.Model(&attentionDatamodel.Attention{}).Where("id = ?", attentionID).Count(&count).Error
	return count > 0, err
}

func (r *AttentionRepository) GetAll() ([]*attention.ListItem, error) {
	var items []*attention.ListItem
	err := r.db.Raw(`
		SELECT a.id, a.client_id, c.name AS client_name, a.plate,
		       a.worker_id, u.name AS worker_name, a.date, a.description, a.amount_clp
		FROM attentions a
		INNER JOIN clients c ON a.client_id = c.id
		INNER JOIN users u ON a.worker_id = u.id
		ORDER BY a.id`).Scan(&items).Error
	return items, err
}

func (r *AttentionRepository) Certificates() ([]*attention.CertificateRow, error) {
	var rows []*attention.CertificateRow
	err := r.db.Raw(`
		SELECT ce.id, ce.attention_id, ce.issued_at, ce.description,
		       c.name AS client_name, a.plate
		FROM certificates ce
		INNER JOIN attentions a ON ce.attention_id = a.id
		INNER JOIN clients c ON a.client_id = c.id
		ORDER BY ce.id`).Scan(&rows).Error
	return rows, err
}
