package service

import (
	"errors"
	"testing"

	"github.com/Carlos43525/GardenNetApi/database/model"
)

func TestRegisterDuplicateUsername(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	if _, err := svc.Register("carlos", "gardens1"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register("carlos", "different1"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("second Register err = %v, want ErrUserExists", err)
	}

	var count int64
	if err := svc.DB.Model(&model.User{}).Where("username = ?", "carlos").Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d rows for username carlos, want 1", count)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	if _, err := svc.Register("carlos", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("Register err = %v, want ErrWeakPassword", err)
	}
}

func TestRegisterSetsSecurityStamp(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	first, err := svc.Register("carlos", "gardens1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	second, err := svc.Register("maria", "gardens1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if first.SecurityStamp == "" || first.SecurityStamp == second.SecurityStamp {
		t.Errorf("security stamps not fresh: %q vs %q", first.SecurityStamp, second.SecurityStamp)
	}
}

func TestCheckUser(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	if _, err := svc.Register("carlos", "gardens1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user := svc.CheckUser("carlos", "wrong-password"); user != nil {
		t.Error("CheckUser accepted a wrong password")
	}
	if user := svc.CheckUser("nobody", "gardens1"); user != nil {
		t.Error("CheckUser accepted an unknown username")
	}
	user := svc.CheckUser("carlos", "gardens1")
	if user == nil {
		t.Fatal("CheckUser rejected valid credentials")
	}
	if user.Username != "carlos" {
		t.Errorf("username = %q, want carlos", user.Username)
	}
}

// TestRegisterAdminGrantsBothRoles pins the grant flow as it ships: both
// grants are guarded by an existence check of the Admin role, so as long as
// Admin exists the new account ends up holding Admin and User.
func TestRegisterAdminGrantsBothRoles(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	user, err := svc.RegisterAdmin("boss", "gardens1")
	if err != nil {
		t.Fatalf("RegisterAdmin: %v", err)
	}

	var roles []model.Role
	if err := svc.DB.Model(user).Association("Roles").Find(&roles); err != nil {
		t.Fatalf("load roles: %v", err)
	}

	got := make(map[string]bool, len(roles))
	for _, role := range roles {
		got[role.Name] = true
	}
	if !got[model.RoleAdmin] || !got[model.RoleUser] {
		t.Errorf("roles = %v, want Admin and User", got)
	}
}

func TestRegisterAdminCreatesRolesIdempotently(t *testing.T) {
	setupTestDB(t)
	svc := NewUserService()

	if _, err := svc.RegisterAdmin("boss", "gardens1"); err != nil {
		t.Fatalf("first RegisterAdmin: %v", err)
	}
	if _, err := svc.RegisterAdmin("boss2", "gardens1"); err != nil {
		t.Fatalf("second RegisterAdmin: %v", err)
	}

	var count int64
	if err := svc.DB.Model(&model.Role{}).Count(&count).Error; err != nil {
		t.Fatalf("count roles: %v", err)
	}
	// Admin is seeded at init, User is created on first RegisterAdmin.
	if count != 2 {
		t.Errorf("got %d roles, want 2", count)
	}
}
