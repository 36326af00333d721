package access

import (
	"reflect"
	"testing"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
)

func newTestService() *Service {
	return NewService([]model.City{
		{ID: "berlin", Name: "Berlin"},
		{ID: "munich", Name: "Munich"},
		{ID: "hamburg", Name: "Hamburg"},
	})
}

func TestAccessibleTenantsSingletonForNonAdmin(t *testing.T) {
	svc := newTestService()

	for _, role := range []enums.Role{enums.RoleParent, enums.RoleOrganiser, enums.RoleGuest, enums.RolePartner} {
		user := model.User{ID: "u1", CityID: "berlin", Role: role}
		got := svc.AccessibleTenants(user)
		if !reflect.DeepEqual(got, []string{"berlin"}) {
			t.Fatalf("unexpected accessible tenants for role %s: got=%v", role, got)
		}
	}
}

func TestAccessibleTenantsFullSetForAdmin(t *testing.T) {
	svc := newTestService()

	got := svc.AccessibleTenants(model.User{ID: "a1", CityID: "berlin", Role: enums.RoleAdmin})
	want := []string{"berlin", "munich", "hamburg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected admin tenants: got=%v want=%v", got, want)
	}
}

func TestTenantIsolationInvariant(t *testing.T) {
	svc := newTestService()

	for _, role := range []enums.Role{enums.RoleParent, enums.RoleOrganiser, enums.RoleGuest, enums.RolePartner} {
		user := model.User{ID: "u1", CityID: "berlin", Role: role}
		for _, target := range []string{"munich", "hamburg", "BERLIN", "unknown", ""} {
			if svc.CanView(user, target) {
				t.Fatalf("role %s must not view city %q", role, target)
			}
			if svc.CanAccess(user, target) {
				t.Fatalf("role %s must not access city %q", role, target)
			}
			if decision := svc.CanCreate(user, target); decision.Allowed {
				t.Fatalf("role %s must not create in city %q", role, target)
			}
		}
	}
}

func TestAdminOverrideInvariant(t *testing.T) {
	svc := newTestService()
	admin := model.User{ID: "a1", CityID: "berlin", Role: enums.RoleAdmin}

	for _, target := range []string{"berlin", "munich", "hamburg"} {
		if !svc.CanAccess(admin, target) {
			t.Fatalf("admin must access city %q", target)
		}
		if decision := svc.ValidateCrossTenant(admin, target, "moderate_content"); !decision.Allowed {
			t.Fatalf("admin cross-city action denied for %q: %s", target, decision.Reason)
		}
	}
}

func TestCanCreateDeniesGuestsEverywhere(t *testing.T) {
	svc := newTestService()
	guest := model.User{ID: "g1", CityID: "berlin", Role: enums.RoleGuest}

	decision := svc.CanCreate(guest, "berlin")
	if decision.Allowed {
		t.Fatalf("guest creation must be denied in home city too")
	}
	if decision.Reason != "guests cannot create content" {
		t.Fatalf("unexpected guest denial reason: %q", decision.Reason)
	}
	if !reflect.DeepEqual(decision.AllowedTenants, []string{"berlin"}) {
		t.Fatalf("unexpected allowed tenants for guest: %v", decision.AllowedTenants)
	}
}

func TestCanCreateAllowsOrganiserAtHome(t *testing.T) {
	svc := newTestService()
	organiser := model.User{ID: "o1", CityID: "munich", Role: enums.RoleOrganiser}

	decision := svc.CanCreate(organiser, "munich")
	if !decision.Allowed || decision.Reason != "" {
		t.Fatalf("organiser home-city creation denied: %+v", decision)
	}
}

func TestValidateCrossTenantDenialEmbedsRoleAndAction(t *testing.T) {
	svc := newTestService()
	parent := model.User{ID: "p1", CityID: "berlin", Role: enums.RoleParent}

	decision := svc.ValidateCrossTenant(parent, "munich", "edit_event")
	if decision.Allowed {
		t.Fatalf("cross-city action must be denied for parent")
	}
	want := "role parent cannot perform edit_event outside home city"
	if decision.Reason != want {
		t.Fatalf("unexpected reason: got=%q want=%q", decision.Reason, want)
	}
}

func TestValidateCrossTenantRequiresTarget(t *testing.T) {
	svc := newTestService()
	admin := model.User{ID: "a1", CityID: "berlin", Role: enums.RoleAdmin}

	if decision := svc.ValidateCrossTenant(admin, "", "export"); decision.Allowed {
		t.Fatalf("empty target city must be denied even for admin")
	}
}

func TestEnforceIsolation(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		name      string
		user      model.User
		requested string
		want      Scope
	}{
		{
			name:      "no request defaults to home",
			user:      model.User{CityID: "berlin", Role: enums.RoleParent},
			requested: "",
			want:      Scope{TenantID: "berlin"},
		},
		{
			name:      "admin request honored",
			user:      model.User{CityID: "berlin", Role: enums.RoleAdmin},
			requested: "munich",
			want:      Scope{TenantID: "munich"},
		},
		{
			name:      "foreign request rewritten to home",
			user:      model.User{CityID: "berlin", Role: enums.RoleParent},
			requested: "munich",
			want:      Scope{TenantID: "berlin", Enforced: true},
		},
		{
			name:      "home request untouched",
			user:      model.User{CityID: "berlin", Role: enums.RoleParent},
			requested: "berlin",
			want:      Scope{TenantID: "berlin"},
		},
	}

	for _, tc := range cases {
		got := svc.EnforceIsolation(tc.user, tc.requested)
		if got != tc.want {
			t.Fatalf("%s: got=%+v want=%+v", tc.name, got, tc.want)
		}
	}
}

func TestFilterByTenantPreservesOrder(t *testing.T) {
	svc := newTestService()

	items := []model.Content{
		{ID: "c1", CityID: "berlin"},
		{ID: "c2", CityID: "munich"},
		{ID: "c3", CityID: "berlin"},
		{ID: "c4", CityID: "hamburg"},
	}

	parent := model.User{ID: "p1", CityID: "berlin", Role: enums.RoleParent}
	got := FilterByTenant(svc, items, parent)
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c3" {
		t.Fatalf("unexpected filtered items for parent: %v", got)
	}

	admin := model.User{ID: "a1", CityID: "berlin", Role: enums.RoleAdmin}
	all := FilterByTenant(svc, items, admin)
	if !reflect.DeepEqual(all, items) {
		t.Fatalf("admin filter must return items unchanged: %v", all)
	}
}

func TestDecisionsAreIdempotent(t *testing.T) {
	svc := newTestService()
	user := model.User{ID: "u1", CityID: "berlin", Role: enums.RoleOrganiser}

	first := svc.CanCreate(user, "berlin")
	for i := 0; i < 5; i++ {
		if got := svc.CanCreate(user, "berlin"); !reflect.DeepEqual(got, first) {
			t.Fatalf("CanCreate not deterministic on run #%d: got=%+v want=%+v", i, got, first)
		}
	}
}
