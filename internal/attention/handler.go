package attention

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/dcontreras/workshop-management/internal/transport"
	"github.com/dcontreras/workshop-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Register(dto RegisterAttentionDTO) (*RegisterResult, error)
	GetAll() ([]*ListItem, error)
	Certificates() ([]*CertificateRow, error)
	CertificatePath(attentionID int64) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterAttentionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Register: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("Register: service error", "error", err, "client_id", dto.ClientID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	attentions, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetAll: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, attentions)
}

func (h *Handler) Certificates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Certificates()
	if err != nil {
		h.Logger.Error("Certificates: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rows)
}

// DownloadCertificate streams the PDF artifact for an attention. The database
// row may exist while the file is gone, so the file check gets its own 404.
func (h *Handler) DownloadCertificate(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "attentionID")
	attentionID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("DownloadCertificate: invalid attention ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid attention ID")
		return
	}

	path, err := h.Service.CertificatePath(attentionID)
	if err != nil {
		h.Logger.Error("DownloadCertificate: service error", "error", err, "attention_id", attentionID)
		h.HandleServiceError(w, err)
		return
	}

	if _, err := os.Stat(path); err != nil {
		h.Logger.Error("DownloadCertificate: artifact missing", "path", path, "attention_id", attentionID)
		h.WriteError(w, http.StatusNotFound, "certificate file not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}
