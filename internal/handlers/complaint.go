package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
)

type ComplaintHandler struct {
	complaints domain.ComplaintService
}

func NewComplaintHandler(complaints domain.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

// HandleComplaints serves POST /complaints and GET /complaints
func (h *ComplaintHandler) HandleComplaints(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleComplaintByID serves GET /complaints/{id}
func (h *ComplaintHandler) HandleComplaintByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/complaints/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Complaint not found")
		return
	}

	rec, err := h.complaints.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Complaint not found")
		return
	}
	if err != nil {
		log.Printf("Failed to get complaint %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch complaint")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *ComplaintHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.ComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	id, err := h.complaints.Create(r.Context(), &req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}

		log.Printf("Failed to create complaint: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create complaint")
		return
	}

	writeJSON(w, http.StatusOK, &domain.ComplaintCreatedResponse{ComplaintID: id})
}

func (h *ComplaintHandler) list(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.complaints.GetAll(r.Context())
	if err != nil {
		log.Printf("Failed to list complaints: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list complaints")
		return
	}

	writeJSON(w, http.StatusOK, complaints)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}
