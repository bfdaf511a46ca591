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

// AccessHandler serves access attempts against restricted areas. A denial
// is a normal outcome with a 200 response, not an error: the decision is
// always evaluated, recorded, and returned to the caller.
type AccessHandler struct {
	Users    *repo.UserRepo
	Areas    *repo.AreaRepo
	Recorder *access.Recorder
}

type accessResponse struct {
	Decision access.Decision  `json:"decision"`
	Log      models.AccessLog `json:"log"`
}

// resolve loads the caller's profile and the target area. A token for a
// profile that no longer exists means no access (401); an unknown area is
// 404. Returns ok=false after writing the error response.
func (h *AccessHandler) resolve(w http.ResponseWriter, r *http.Request) (*models.UserProfile, models.RestrictedArea, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthenticated", http.StatusUnauthorized)
		return nil, models.RestrictedArea{}, false
	}
	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		JSONError(w, "profile not found", http.StatusUnauthorized)
		return nil, models.RestrictedArea{}, false
	}

	areaID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid area id", http.StatusBadRequest)
		return nil, models.RestrictedArea{}, false
	}
	area, err := h.Areas.Get(r.Context(), areaID)
	if err != nil {
		JSONError(w, "area not found", http.StatusNotFound)
		return nil, models.RestrictedArea{}, false
	}
	return user, area, true
}

func decodeNotes(r *http.Request) string {
	var input struct {
		Notes string `json:"notes"`
	}
	// Body is optional; ignore decode errors on an empty body.
	_ = json.NewDecoder(r.Body).Decode(&input)
	return input.Notes
}

// RequestEntry evaluates the caller against the area and records the
// outcome. The response carries the decision either way; only a failed log
// write is an error.
func (h *AccessHandler) RequestEntry(w http.ResponseWriter, r *http.Request) {
	user, area, ok := h.resolve(w, r)
	if !ok {
		return
	}

	decision, logRow, err := h.Recorder.Attempt(r.Context(), user, area, decodeNotes(r))
	if err != nil {
		JSONError(w, "failed to record access", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, accessResponse{Decision: decision, Log: logRow})
}

// RecordExit appends a user-declared exit event. Exits bypass policy
// evaluation; there is no area-level exit control.
func (h *AccessHandler) RecordExit(w http.ResponseWriter, r *http.Request) {
	user, area, ok := h.resolve(w, r)
	if !ok {
		return
	}

	logRow, err := h.Recorder.Exit(r.Context(), user, area, decodeNotes(r))
	if err != nil {
		JSONError(w, "failed to record exit", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, logRow)
}

// ListAccessLogs returns recent access logs with display fields, newest
// first.
func (h *AccessHandler) ListAccessLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50)
	logs, err := h.Recorder.Logs.ListRecent(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
