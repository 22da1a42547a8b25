package worker

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dcontreras/workshop-management/internal/transport"
	"github.com/dcontreras/workshop-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(dto CreateWorkerDTO) (*Worker, error)
	GetAll() ([]*ListItem, error)
	Available() ([]*AvailableUser, error)
	Delete(userID int64) error
	Salaries() ([]*SalaryRow, error)
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateWorkerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "user_id", dto.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetAll: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, workers)
}

func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.Available()
	if err != nil {
		h.Logger.Error("Available: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("Delete: invalid worker ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid worker ID")
		return
	}

	if err := h.Service.Delete(userID); err != nil {
		h.Logger.Error("Delete: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) Salaries(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Salaries()
	if err != nil {
		h.Logger.Error("Salaries: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rows)
}
