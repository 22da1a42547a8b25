package attention

import (
	"time"

	attentionDatamodel "github.com/dcontreras/workshop-management/internal/core/datamodel/attention"
)

type Attention struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	Plate       string    `json:"plate"`
	WorkerID    int64     `json:"worker_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	AmountCLP   int64     `json:"amount_clp"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListItem is one attention joined with the client and worker names.
type ListItem struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	ClientName  string    `json:"client_name"`
	Plate       string    `json:"plate"`
	WorkerID    int64     `json:"worker_id"`
	WorkerName  string    `json:"worker_name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	AmountCLP   int64     `json:"amount_clp"`
}

// CertificateRow is one certificate joined with its attention.
type CertificateRow struct {
	ID          int64     `json:"id"`
	AttentionID int64     `json:"attention_id"`
	IssuedAt    time.Time `json:"issued_at"`
	Description string    `json:"description"`
	ClientName  string    `json:"client_name"`
	Plate       string    `json:"plate"`
}

// RegisterResult reports the committed attention and the artifact written for it.
type RegisterResult struct {
	ID              int64  `json:"id"`
	CertificatePath string `json:"certificate_path"`
}

// CertificateGenerator renders the PDF artifact for an attention. Generate
// returns the path of the written file; Path returns the deterministic
// location for an attention id without touching the filesystem.
type CertificateGenerator interface {
	Generate(a *Attention) (string, error)
	Path(attentionID int64) string
}

func ToDataModel(a *Attention) *attentionDatamodel.Attention {
	return &attentionDatamodel.Attention{
		ID:          a.ID,
		ClientID:    a.ClientID,
		Plate:       a.Plate,
		WorkerID:    a.WorkerID,
		Date:        a.Date,
		Description: a.Description,
		AmountCLP:   a.AmountCLP,
		CreatedAt:   a.CreatedAt,
	}
}

func FromDataModel(a *attentionDatamodel.Attention) *Attention {
	return &Attention{
		ID:          a.ID,
		ClientID:    a.ClientID,
		Plate:       a.Plate,
		WorkerID:    a.WorkerID,
		Date:        a.Date,
		Description: a.Description,
		AmountCLP:   a.AmountCLP,
		CreatedAt:   a.CreatedAt,
	}
}
