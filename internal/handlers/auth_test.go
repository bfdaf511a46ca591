package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/rfalmeida/facility-control/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

func expectUserByEmail(t *testing.T, mock sqlmock.Sqlmock, email, password string, role models.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM user_profiles WHERE email = \$1`).
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "password_hash", "role", "department", "created_at", "updated_at"}).
			AddRow(1, email, "Bruce Wayne", string(hash), string(role), "", now, now))
}

func TestAuthHandler_Login(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expectUserByEmail(t, mock, "bruce@facility.local", "s3cret", models.RoleAdmin)

	h := &AuthHandler{Users: repo.NewUserRepo(db), Secret: []byte("test-secret"), ExpireHours: 1}

	body, _ := json.Marshal(map[string]string{"email": "bruce@facility.local", "password": "s3cret"})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Token string `json:"token"`
		User  struct {
			ID    int    `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("expected a token")
	}
	if out.User.Role != "admin" {
		t.Errorf("unexpected user: %+v", out.User)
	}

	// The token must verify against the same secret and carry our claims.
	token, err := jwt.Parse(out.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse issued token: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"].(float64) != 1 || claims["role"].(string) != "admin" {
		t.Errorf("unexpected claims: %v", claims)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expectUserByEmail(t, mock, "bruce@facility.local", "s3cret", models.RoleAdmin)

	h := &AuthHandler{Users: repo.NewUserRepo(db), Secret: []byte("test-secret")}

	body, _ := json.Marshal(map[string]string{"email": "bruce@facility.local", "password": "wrong"})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM user_profiles WHERE email = \$1`).
		WithArgs("nobody@facility.local").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "password_hash", "role", "department", "created_at", "updated_at"}))

	h := &AuthHandler{Users: repo.NewUserRepo(db), Secret: []byte("test-secret")}

	body, _ := json.Marshal(map[string]string{"email": "nobody@facility.local", "password": "s3cret"})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Login_SystemActorCannotLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The seeded system actor has a NULL password hash, read back as "".
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM user_profiles WHERE email = \$1`).
		WithArgs("system@facility.local").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "password_hash", "role", "department", "created_at", "updated_at"}).
			AddRow(1, "system@facility.local", "System", "", "admin", "", now, now))

	h := &AuthHandler{Users: repo.NewUserRepo(db), Secret: []byte("test-secret")}

	body, _ := json.Marshal(map[string]string{"email": "system@facility.local", "password": ""})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expectUser(mock, 1, models.RoleManager)

	h := &AuthHandler{Users: repo.NewUserRepo(db), Secret: []byte("test-secret")}

	req := asUser(httptest.NewRequest("GET", "/me", nil), 1, models.RoleManager)
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var user struct {
		ID   int    `json:"id"`
		Role string `json:"role"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != 1 || user.Role != "manager" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
