package client

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
	Create(dto CreateClientDTO) (*Client, error)
	Update(clientID int64, dto UpdateClientDTO) error
	Delete(clientID int64) error
	GetAll() ([]*ListItem, error)
	Available() ([]*AvailableUser, error)
	Plates(clientID int64) ([]string, error)
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
	var dto CreateClientDTO
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

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientIDParam(w, r)
	if !ok {
		return
	}

	var dto UpdateClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Update: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Update(clientID, dto); err != nil {
		h.Logger.Error("Update: service error", "error", err, "client_id", clientID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(clientID); err != nil {
		h.Logger.Error("Delete: service error", "error", err, "client_id", clientID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetAll: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, clients)
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

func (h *Handler) Plates(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientIDParam(w, r)
	if !ok {
		return
	}

	plates, err := h.Service.Plates(clientID)
	if err != nil {
		h.Logger.Error("Plates: service error", "error", err, "client_id", clientID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, plates)
}

func (h *Handler) clientIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	clientID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid client ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid client ID")
		return 0, false
	}
	return clientID, true
}
