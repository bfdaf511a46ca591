package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rfalmeida/facility-control/internal/middleware"
	"github.com/rfalmeida/facility-control/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues JWTs for provisioned profiles. There is no open
// registration: profiles are created by an administrator (see UserHandler).
type AuthHandler struct {
	Users       *repo.UserRepo
	Secret      []byte
	ExpireHours int
}

// Login verifies email and password and returns a signed token plus the
// profile. Profiles with an empty password hash (the system actor) can
// never log in.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), input.Email)
	if err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if user.PasswordHash == "" {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	expire := h.ExpireHours
	if expire <= 0 {
		expire = 24
	}
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Duration(expire) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.Secret)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": signed,
		"user":  user,
	})
}

// Me returns the caller's own profile, resolved fresh from the store.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		JSONError(w, "profile not found", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
