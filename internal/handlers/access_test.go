package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/rfalmeida/facility-control/internal/access"
	"github.com/rfalmeida/facility-control/internal/middleware"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/rfalmeida/facility-control/internal/repo"
)

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// asUser stamps the request context the way the JWT middleware would.
func asUser(r *http.Request, userID int, role models.Role) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.RoleKey, role)
	return r.WithContext(ctx)
}

func quietAuditor(activities *repo.ActivityRepo) *access.Auditor {
	return access.NewAuditor(activities, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func expectUser(mock sqlmock.Sqlmock, id int, role models.Role) {
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM user_profiles WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "password_hash", "role", "department", "created_at", "updated_at"}).
			AddRow(id, "user@facility.local", "Test User", "hash", string(role), "", now, now))
}

func expectArea(mock sqlmock.Sqlmock, id int, level models.Role, active bool) {
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM restricted_areas WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "required_access_level", "is_active", "created_at", "updated_at"}).
			AddRow(id, "Vault", "", string(level), active, now, now))
}

func TestAccessHandler_RequestEntry_Granted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expectUser(mock, 1, models.RoleAdmin)
	expectArea(mock, 7, models.RoleManager, true)
	mock.ExpectQuery(`INSERT INTO access_logs`).
		WithArgs(1, 7, "entry", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "area_id", "action", "ts", "notes"}).
			AddRow(10, 1, 7, "entry", time.Now(), ""))
	mock.ExpectQuery(`INSERT INTO activities`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "resource_id", "action_type", "description", "ts"}).
			AddRow(1, 1, nil, models.ActivityAccessGranted, "Test User entered area \"Vault\"", time.Now()))

	activityRepo := repo.NewActivityRepo(db)
	h := &AccessHandler{
		Users:    repo.NewUserRepo(db),
		Areas:    repo.NewAreaRepo(db),
		Recorder: access.NewRecorder(repo.NewAccessLogRepo(db), quietAuditor(activityRepo)),
	}

	req := asUser(requestWithChiURLParams("POST", "/areas/7/access", nil, map[string]string{"id": "7"}), 1, models.RoleAdmin)
	rr := httptest.NewRecorder()
	h.RequestEntry(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Decision struct {
			Granted bool   `json:"granted"`
			Action  string `json:"action"`
			Reason  string `json:"reason"`
		} `json:"decision"`
		Log struct {
			ID     int    `json:"id"`
			Action string `json:"action"`
		} `json:"log"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Decision.Granted || out.Decision.Action != "entry" {
		t.Errorf("unexpected decision: %+v", out.Decision)
	}
	if out.Log.ID != 10 || out.Log.Action != "entry" {
		t.Errorf("unexpected log: %+v", out.Log)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAccessHandler_RequestEntry_Denied(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expectUser(mock, 2, models.RoleEmployee)
	expectArea(mock, 7, models.RoleManager, true)
	mock.ExpectQuery(`INSERT INTO access_logs`).
		WithArgs(2, 7, "denied", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "area_id", "action", "ts", "notes"}).
			AddRow(11, 2, 7, "denied", time.Now(), ""))
	mock.ExpectQuery(`INSERT INTO activities`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "resource_id", "action_type", "description", "ts"}).
			AddRow(2, 2, nil, models.ActivityAccessDenied, "denied", time.Now()))

	activityRepo := repo.NewActivityRepo(db)
	h := &AccessHandler{
		Users:    repo.NewUserRepo(db),
		Areas:    repo.NewAreaRepo(db),
		Recorder: access.NewRecorder(repo.NewAccessLogRepo(db), quietAuditor(activityRepo)),
	}

	req := asUser(requestWithChiURLParams("POST", "/areas/7/access", nil, map[string]string{"id": "7"}), 2, models.RoleEmployee)
	rr := httptest.NewRecorder()
	h.RequestEntry(rr, req)

	// A denial is a normal outcome, not an HTTP error.
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Decision struct {
			Granted bool   `json:"granted"`
			Action  string `json:"action"`
			Reason  string `json:"reason"`
		} `json:"decision"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Decision.Granted || out.Decision.Action != "denied" || out.Decision.Reason != "insufficient_role" {
		t.Errorf("unexpected decision: %+v", out.Decision)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAccessHandler_RequestEntry_AreaNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expectUser(mock, 1, models.RoleAdmin)
	mock.ExpectQuery(`SELECT .+ FROM restricted_areas WHERE id = \$1`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "required_access_level", "is_active", "created_at", "updated_at"}))

	activityRepo := repo.NewActivityRepo(db)
	h := &AccessHandler{
		Users:    repo.NewUserRepo(db),
		Areas:    repo.NewAreaRepo(db),
		Recorder: access.NewRecorder(repo.NewAccessLogRepo(db), quietAuditor(activityRepo)),
	}

	req := asUser(requestWithChiURLParams("POST", "/areas/999/access", nil, map[string]string{"id": "999"}), 1, models.RoleAdmin)
	rr := httptest.NewRecorder()
	h.RequestEntry(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAccessHandler_RequestEntry_Unauthenticated(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	activityRepo := repo.NewActivityRepo(db)
	h := &AccessHandler{
		Users:    repo.NewUserRepo(db),
		Areas:    repo.NewAreaRepo(db),
		Recorder: access.NewRecorder(repo.NewAccessLogRepo(db), quietAuditor(activityRepo)),
	}

	req := requestWithChiURLParams("POST", "/areas/7/access", nil, map[string]string{"id": "7"})
	rr := httptest.NewRecorder()
	h.RequestEntry(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestAccessHandler_RecordExit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expectUser(mock, 1, models.RoleEmployee)
	expectArea(mock, 7, models.RoleAdmin, true)
	// Exit bypasses evaluation, so even an employee can declare one for an
	// admin-level area.
	mock.ExpectQuery(`INSERT INTO access_logs`).
		WithArgs(1, 7, "exit", "leaving for the day").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "area_id", "action", "ts", "notes"}).
			AddRow(12, 1, 7, "exit", time.Now(), "leaving for the day"))

	activityRepo := repo.NewActivityRepo(db)
	h := &AccessHandler{
		Users:    repo.NewUserRepo(db),
		Areas:    repo.NewAreaRepo(db),
		Recorder: access.NewRecorder(repo.NewAccessLogRepo(db), quietAuditor(activityRepo)),
	}

	body, _ := json.Marshal(map[string]string{"notes": "leaving for the day"})
	req := asUser(requestWithChiURLParams("POST", "/areas/7/exit", body, map[string]string{"id": "7"}), 1, models.RoleEmployee)
	rr := httptest.NewRecorder()
	h.RecordExit(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var logRow struct {
		ID     int    `json:"id"`
		Action string `json:"action"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&logRow); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if logRow.Action != "exit" || logRow.Notes != "leaving for the day" {
		t.Errorf("unexpected log: %+v", logRow)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
