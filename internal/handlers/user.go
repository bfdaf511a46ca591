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
	"golang.org/x/crypto/bcrypt"
)

// UserHandler manages user profiles. All routes here are admin-only; the
// router gates them with middleware.RequireRole.
type UserHandler struct {
	Repo    *repo.UserRepo
	Auditor *access.Auditor
}

// CreateUser provisions a profile with a role and password.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email      string `json:"email"`
		FullName   string `json:"full_name"`
		Password   string `json:"password"`
		Role       string `json:"role"`
		Department string `json:"department"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Email == "" {
		fields["email"] = "required"
	}
	if input.FullName == "" {
		fields["full_name"] = "required"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	role := input.Role
	if role == "" {
		role = string(models.RoleEmployee)
	}
	parsedRole, err := models.ParseRole(role)
	if err != nil {
		fields["role"] = "must be employee, manager, or admin"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Repo.Create(r.Context(), input.Email, input.FullName, string(hash), parsedRole, input.Department)
	if err != nil {
		JSONError(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	if actorID, ok := middleware.GetUserID(r.Context()); ok {
		h.Auditor.Record(r.Context(), actorID, models.ActivityCreateUser,
			"Provisioned profile "+user.Email+" with role "+string(user.Role), nil)
	}

	writeJSON(w, http.StatusCreated, user)
}

// ListUsers returns profiles with pagination and a total count.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50)
	users, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	total, err := h.Repo.Count(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":  users,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetUser returns one profile by id.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, "user not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUserRole changes a profile's role. This is the only role mutation
// in the system.
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	role, err := models.ParseRole(input.Role)
	if err != nil {
		JSONValidationError(w, "validation failed",
			map[string]string{"role": "must be employee, manager, or admin"}, http.StatusBadRequest)
		return
	}

	user, err := h.Repo.UpdateRole(r.Context(), id, role)
	if err == models.ErrNotFound {
		JSONError(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if actorID, ok := middleware.GetUserID(r.Context()); ok {
		h.Auditor.Record(r.Context(), actorID, models.ActivityUpdateUser,
			"Changed role of "+user.Email+" to "+string(user.Role), nil)
	}

	writeJSON(w, http.StatusOK, user)
}

// pagination parses limit/offset query params with a caller-supplied
// default limit, capped at 200.
func pagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}
	return limit, offset
}
