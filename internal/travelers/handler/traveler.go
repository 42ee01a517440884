package handler

import (
	"encoding/json"
	"net/http"

	"hotelier/internal/travelers/service"
	apperrors "hotelier/pkg/errors"
	httputil "hotelier/pkg/http"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type TravelerHandler struct {
	service service.TravelerService
	log     *logger.Logger
}

func NewTravelerHandler(service service.TravelerService, log *logger.Logger) *TravelerHandler {
	return &TravelerHandler{
		service: service,
		log:     log,
	}
}

func (h *TravelerHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var traveler model.Traveler
	if err := json.NewDecoder(r.Body).Decode(&traveler); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &traveler); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, traveler); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *TravelerHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	traveler, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, traveler); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TravelerHandler) GetByDocument(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	documentNumber := r.URL.Query().Get("document_number")
	if documentNumber == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "The 'document_number' query parameter is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "GetByDocument", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	traveler, err := h.service.GetByDocumentNumber(r.Context(), documentNumber)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByDocument", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, traveler); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByDocument", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TravelerHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	travelers, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, travelers, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

type updateResponse struct {
	Updated bool `json:"updated"`
}

func (h *TravelerHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var traveler model.Traveler
	if err := json.NewDecoder(r.Body).Decode(&traveler); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	changed, err := h.service.Update(r.Context(), id, &traveler)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, updateResponse{Updated: changed}); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TravelerHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if !deleted {
		if writeErr := httputil.WriteError(w, apperrors.NotFoundWithID("Traveler", id)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *TravelerHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/travelers", h.Create)
	router.GET("/api/v1/travelers", h.GetAll)
	router.GET("/api/v1/travelers/id/:id", h.GetByID)
	router.GET("/api/v1/travelers/search", h.GetByDocument)
	router.PUT("/api/v1/travelers/id/:id", h.Update)
	router.DELETE("/api/v1/travelers/id/:id", h.Delete)
}
