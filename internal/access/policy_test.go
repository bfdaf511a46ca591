package access

import (
	"testing"

	"github.com/rfalmeida/facility-control/internal/models"
)

func user(role models.Role) *models.UserProfile {
	return &models.UserProfile{ID: 1, Email: "u@example.com", FullName: "Test User", Role: role}
}

func area(level models.Role, active bool) models.RestrictedArea {
	return models.RestrictedArea{ID: 7, Name: "Server Room", RequiredAccessLevel: level, IsActive: active}
}

func TestEvaluate_RoleMatrix(t *testing.T) {
	roles := []models.Role{models.RoleEmployee, models.RoleManager, models.RoleAdmin}
	for _, userRole := range roles {
		for _, areaLevel := range roles {
			d := Evaluate(user(userRole), area(areaLevel, true))
			wantGranted := userRole.Rank() >= areaLevel.Rank()
			if d.Granted != wantGranted {
				t.Errorf("user %s vs area %s: granted=%v, want %v", userRole, areaLevel, d.Granted, wantGranted)
			}
			if wantGranted {
				if d.Action != models.ActionEntry || d.Reason != ReasonOK {
					t.Errorf("user %s vs area %s: got action=%s reason=%s", userRole, areaLevel, d.Action, d.Reason)
				}
			} else {
				if d.Action != models.ActionDenied || d.Reason != ReasonInsufficientRole {
					t.Errorf("user %s vs area %s: got action=%s reason=%s", userRole, areaLevel, d.Action, d.Reason)
				}
			}
		}
	}
}

func TestEvaluate_EmployeeDeniedManagerArea(t *testing.T) {
	d := Evaluate(user(models.RoleEmployee), area(models.RoleManager, true))
	if d.Granted {
		t.Fatal("employee must not enter a manager-level area")
	}
	if d.Action != models.ActionDenied {
		t.Errorf("action = %s, want denied", d.Action)
	}
	if d.Reason != ReasonInsufficientRole {
		t.Errorf("reason = %s, want insufficient_role", d.Reason)
	}
}

func TestEvaluate_AdminGrantedManagerArea(t *testing.T) {
	d := Evaluate(user(models.RoleAdmin), area(models.RoleManager, true))
	if !d.Granted {
		t.Fatal("admin must enter a manager-level area")
	}
	if d.Action != models.ActionEntry {
		t.Errorf("action = %s, want entry", d.Action)
	}
}

func TestEvaluate_InactiveAreaDeniesEveryone(t *testing.T) {
	for _, role := range []models.Role{models.RoleEmployee, models.RoleManager, models.RoleAdmin} {
		d := Evaluate(user(role), area(models.RoleEmployee, false))
		if d.Granted {
			t.Errorf("role %s granted on inactive area", role)
		}
		if d.Reason != ReasonAreaInactive {
			t.Errorf("role %s: reason = %s, want area_inactive", role, d.Reason)
		}
		if d.Action != models.ActionDenied {
			t.Errorf("role %s: action = %s, want denied", role, d.Action)
		}
	}
}
