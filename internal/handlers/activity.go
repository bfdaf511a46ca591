package handlers

import (
	"net/http"

	"github.com/rfalmeida/facility-control/internal/repo"
)

// ActivityHandler serves the free-text audit trail. Admin-only.
type ActivityHandler struct {
	Repo *repo.ActivityRepo
}

// ListActivities returns recent activities with actor display fields,
// newest first. Query: limit (default 50, max 200), offset.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50)
	activities, err := h.Repo.ListRecent(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
