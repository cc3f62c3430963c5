package authz

import (
	"fmt"
	"testing"
	"time"

	"github.com/zaika-next/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, name string) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	return svc
}

func TestBuiltinRoleEnforcement(t *testing.T) {
	svc := newTestService(t, "authz_builtin")

	cases := []struct {
		role    string
		obj     string
		act     string
		allowed bool
	}{
		{constants.RoleCustomer, "/cart", "GET", true},
		{constants.RoleCustomer, "/orders", "POST", true},
		{constants.RoleCustomer, "/orders/:id/cancel", "PUT", true},
		{constants.RoleCustomer, "/admin/orders", "GET", false},
		{constants.RoleAdmin, "/admin/orders", "GET", true},
		{constants.RoleAdmin, "/admin/payments/:id/status", "PUT", true},
		// admin 继承 customer 的权限
		{constants.RoleAdmin, "/cart", "GET", true},
	}
	for _, c := range cases {
		allowed, err := svc.EnforceRole(c.role, c.obj, c.act)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", c.role, c.obj, c.act, err)
		}
		if allowed != c.allowed {
			t.Fatalf("enforce %s %s %s = %v, want %v", c.role, c.obj, c.act, allowed, c.allowed)
		}
	}
}

func TestGrantAndRevokeRolePolicy(t *testing.T) {
	svc := newTestService(t, "authz_grant")

	if _, err := svc.EnsureRole("kitchen"); err != nil {
		t.Fatalf("ensure role failed: %v", err)
	}
	if err := svc.GrantRolePolicy("kitchen", "/admin/orders/:id/status", "PUT"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	allowed, err := svc.EnforceRole("kitchen", "/admin/orders/:id/status", "PUT")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !allowed {
		t.Fatalf("expected kitchen role to be allowed after grant")
	}

	if err := svc.RevokeRolePolicy("kitchen", "/admin/orders/:id/status", "PUT"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	allowed, err = svc.EnforceRole("kitchen", "/admin/orders/:id/status", "PUT")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if allowed {
		t.Fatalf("expected kitchen role to be denied after revoke")
	}
}

func TestNormalizeHelpers(t *testing.T) {
	role, err := NormalizeRole(" Admin ")
	if err != nil {
		t.Fatalf("normalize role failed: %v", err)
	}
	if role != "role:admin" {
		t.Fatalf("unexpected role: %s", role)
	}
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatalf("expected error for blank role")
	}
	if got := NormalizeObject("/api/v1/admin/orders"); got != "/admin/orders" {
		t.Fatalf("unexpected object: %s", got)
	}
	if got := NormalizeAction("get"); got != "GET" {
		t.Fatalf("unexpected action: %s", got)
	}
}
