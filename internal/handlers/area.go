package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rfalmeida/facility-control/internal/access"
	"github.com/rfalmeida/facility-control/internal/middleware"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/rfalmeida/facility-control/internal/repo"
)

// AreaHandler manages restricted areas. Reading the list is open to every
// authenticated profile; create/update/delete are admin-only via the
// router's role gate.
type AreaHandler struct {
	Repo    *repo.AreaRepo
	Auditor *access.Auditor
}

type areaInput struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	RequiredAccessLevel string `json:"required_access_level"`
	IsActive            *bool  `json:"is_active"`
}

func (in areaInput) validate() (models.Role, map[string]string) {
	fields := make(map[string]string)
	if in.Name == "" {
		fields["name"] = "required"
	}
	level, err := models.ParseRole(in.RequiredAccessLevel)
	if err != nil {
		fields["required_access_level"] = "must be employee, manager, or admin"
	}
	return level, fields
}

// CreateArea adds a restricted area.
func (h *AreaHandler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var input areaInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	level, fields := input.validate()
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	area, err := h.Repo.Create(r.Context(), input.Name, input.Description, level, active)
	if err != nil {
		JSONError(w, "failed to create area", http.StatusInternalServerError)
		return
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		h.Auditor.Record(r.Context(), userID, models.ActivityCreateArea,
			"Created restricted area: "+area.Name, nil)
	}

	writeJSON(w, http.StatusCreated, area)
}

// ListAreas returns every area, newest first. Inactive areas are included
// so operators can see and re-enable them; they still deny all entries.
func (h *AreaHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Repo.List(r.Context())
	if err != nil {
		JSONError(w, "failed to fetch areas", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

// GetArea returns one area by id.
func (h *AreaHandler) GetArea(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid area id", http.StatusBadRequest)
		return
	}

	area, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		JSONError(w, "area not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, area)
}

// UpdateArea replaces the mutable fields of an area.
func (h *AreaHandler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid area id", http.StatusBadRequest)
		return
	}

	var input areaInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	level, fields := input.validate()
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	area, err := h.Repo.Update(r.Context(), id, input.Name, input.Description, level, active)
	if err == models.ErrNotFound {
		JSONError(w, "area not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, "failed to update area", http.StatusInternalServerError)
		return
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		h.Auditor.Record(r.Context(), userID, models.ActivityUpdateArea,
			"Updated restricted area: "+area.Name, nil)
	}

	writeJSON(w, http.StatusOK, area)
}

// DeleteArea removes an area. Areas with existing access logs cannot be
// deleted; the store's foreign key enforces the audit trail's integrity.
func (h *AreaHandler) DeleteArea(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid area id", http.StatusBadRequest)
		return
	}

	area, err := h.Repo.Get(r.Context(), id)
	if err == models.ErrNotFound {
		JSONError(w, "area not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err == models.ErrNotFound {
		JSONError(w, "area not found", http.StatusNotFound)
		return
	} else if err != nil {
		JSONError(w, "failed to delete area", http.StatusInternalServerError)
		return
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		h.Auditor.Record(r.Context(), userID, models.ActivityDeleteArea,
			"Deleted restricted area: "+area.Name, nil)
	}

	w.WriteHeader(http.StatusNoContent)
}
