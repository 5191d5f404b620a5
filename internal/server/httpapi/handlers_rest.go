package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wintakam/wintakam/internal/common"
	"github.com/wintakam/wintakam/internal/server/models"
	"github.com/wintakam/wintakam/internal/server/services"
)

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	var (
		rows []*models.Property
		err  error
	)
	if owner := r.URL.Query().Get("owner_id"); owner != "" {
		rows, err = s.propertyService.GetByOwner(r.Context(), owner)
	} else {
		rows, err = s.propertyService.GetAll(r.Context())
	}
	if err != nil {
		s.logger.Error(r.Context(), "listing query failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := s.propertyService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "property not found")
			return
		}
		s.logger.Error(r.Context(), "listing query failed", "id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var p models.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if p.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	created, err := s.propertyService.Create(r.Context(), &p, userIDFrom(r.Context()))
	if err != nil {
		s.logger.Error(r.Context(), "listing create failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePresignImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	key, url, err := s.propertyService.PresignImageUpload(r.Context(), id, userIDFrom(r.Context()))
	if err != nil {
		s.writeImageError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
}

func (s *Server) handleAttachImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := s.propertyService.AttachImage(r.Context(), id, userIDFrom(r.Context()), req.Key); err != nil {
		s.writeImageError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeImageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "property not found")
	case errors.Is(err, services.ErrNotOwner):
		writeError(w, http.StatusForbidden, "not the listing owner")
	default:
		s.logger.Error(r.Context(), "image operation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
