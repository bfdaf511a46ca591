package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rfalmeida/facility-control/internal/access"
	"github.com/rfalmeida/facility-control/internal/middleware"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/rfalmeida/facility-control/internal/repo"
)

// ResourceHandler serves the facility resource catalog. Any authenticated
// profile may create and edit resources; every mutation leaves an activity
// trail entry attributed to the caller.
type ResourceHandler struct {
	Repo    *repo.ResourceRepo
	Auditor *access.Auditor
}

var validate = validator.New()

type resourceInput struct {
	Name        string `json:"name" validate:"required,min=3,max=255"`
	Type        string `json:"type" validate:"required,oneof=equipment vehicle security_device"`
	Status      string `json:"status" validate:"required,oneof=available in_use maintenance retired"`
	Description string `json:"description" validate:"max=1000"`
	Location    string `json:"location" validate:"max=255"`
}

func decodeResourceInput(w http.ResponseWriter, r *http.Request) (resourceInput, bool) {
	var input resourceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return input, false
	}
	if input.Status == "" {
		input.Status = string(models.StatusAvailable)
	}
	if err := validate.Struct(input); err != nil {
		fields := make(map[string]string)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return input, false
	}
	return input, true
}

// CreateResource adds a catalog entry owned by the caller.
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	input, ok := decodeResourceInput(w, r)
	if !ok {
		return
	}

	res, err := h.Repo.Create(r.Context(),
		models.ResourceType(input.Type), input.Name, models.ResourceStatus(input.Status),
		input.Description, input.Location, userID)
	if err != nil {
		JSONError(w, "failed to create resource", http.StatusInternalServerError)
		return
	}

	h.Auditor.Record(r.Context(), userID, models.ActivityCreateResource,
		"Created resource: "+res.Name, &res.ID)

	writeJSON(w, http.StatusCreated, res)
}

// ListResources returns catalog entries with optional type/status/search
// filters and pagination.
func (h *ResourceHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 10)

	f := repo.ListFilter{Search: r.URL.Query().Get("search")}
	if t := r.URL.Query().Get("type"); t != "" {
		typ := models.ResourceType(t)
		if !typ.Valid() {
			JSONError(w, "invalid resource type", http.StatusBadRequest)
			return
		}
		f.Type = typ
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := models.ResourceStatus(s)
		if !status.Valid() {
			JSONError(w, "invalid resource status", http.StatusBadRequest)
			return
		}
		f.Status = status
	}

	resources, err := h.Repo.List(r.Context(), f, limit, offset)
	if err != nil {
		JSONError(w, "failed to fetch resources", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

// GetResource returns one catalog entry by id.
func (h *ResourceHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid resource id", http.StatusBadRequest)
		return
	}

	res, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		JSONError(w, "resource not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateResource replaces the mutable fields of a catalog entry.
// Last-writer-wins: there is no concurrency token, a stale update simply
// overwrites prior fields.
func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid resource id", http.StatusBadRequest)
		return
	}

	input, ok := decodeResourceInput(w, r)
	if !ok {
		return
	}

	res, err := h.Repo.Update(r.Context(), id,
		models.ResourceType(input.Type), input.Name, models.ResourceStatus(input.Status),
		input.Description, input.Location)
	if err == models.ErrNotFound {
		JSONError(w, "resource not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, "failed to update resource", http.StatusInternalServerError)
		return
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		h.Auditor.Record(r.Context(), userID, models.ActivityUpdateResource,
			"Updated resource: "+res.Name, &res.ID)
	}

	writeJSON(w, http.StatusOK, res)
}

// DeleteResource removes a catalog entry. Deleting a missing resource is a
// 404, not a silent success, and leaves no activity row.
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid resource id", http.StatusBadRequest)
		return
	}

	// Fetch first so the audit description can name the resource.
	res, err := h.Repo.Get(r.Context(), id)
	if err == models.ErrNotFound {
		JSONError(w, "resource not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err == models.ErrNotFound {
		JSONError(w, "resource not found", http.StatusNotFound)
		return
	} else if err != nil {
		JSONError(w, "failed to delete resource", http.StatusInternalServerError)
		return
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		h.Auditor.Record(r.Context(), userID, models.ActivityDeleteResource,
			"Deleted resource: "+res.Name, nil)
	}

	w.WriteHeader(http.StatusNoContent)
}
