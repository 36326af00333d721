package access

import (
	"fmt"
	"strings"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
)

// TenantScoped is any item carrying a city tag.
type TenantScoped interface {
	TenantID() string
}

// CreateDecision reports whether a user may create content in a target
// city, together with the full set of cities where creation is allowed.
type CreateDecision struct {
	Allowed        bool     `json:"allowed"`
	Reason         string   `json:"reason,omitempty"`
	AllowedTenants []string `json:"allowed_tenants"`
}

// CrossTenantDecision carries an audit-ready reason when a cross-city
// action is denied.
type CrossTenantDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Scope is the outcome of isolation enforcement. Enforced is true only
// when a requested city was silently replaced by the user's home city;
// callers that care about the rewrite must check it.
type Scope struct {
	TenantID string `json:"tenant_id"`
	Enforced bool   `json:"enforced"`
}

// Service answers every city-scoping question. It is pure: decisions
// depend only on the configured city list and the arguments. City
// comparison is exact and case-sensitive; an empty or unknown city id on
// either side of a comparison never matches.
type Service struct {
	cities []string
}

func NewService(cities []model.City) *Service {
	ids := make([]string, 0, len(cities))
	for _, city := range cities {
		id := strings.TrimSpace(city.ID)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return &Service{cities: ids}
}

// AccessibleTenants returns the cities the user may act in: every known
// city for admins, the singleton home city for everyone else. Order is
// the configured city order.
func (s *Service) AccessibleTenants(user model.User) []string {
	if user.Role == enums.RoleAdmin {
		out := make([]string, len(s.cities))
		copy(out, s.cities)
		return out
	}
	if user.CityID == "" {
		return nil
	}
	return []string{user.CityID}
}

// CanView reports whether the user may see content tagged with the
// given city.
func (s *Service) CanView(user model.User, contentCityID string) bool {
	return s.isAccessible(user, contentCityID)
}

// CanAccess is the same membership test as CanView. Callers reason
// about "access" and "view" separately at the call site.
func (s *Service) CanAccess(user model.User, targetCityID string) bool {
	return s.isAccessible(user, targetCityID)
}

// CanCreate denies guests unconditionally; every other role follows the
// CanAccess rule.
func (s *Service) CanCreate(user model.User, targetCityID string) CreateDecision {
	allowed := s.AccessibleTenants(user)
	if user.Role == enums.RoleGuest {
		return CreateDecision{
			Reason:         "guests cannot create content",
			AllowedTenants: allowed,
		}
	}
	if !s.isAccessible(user, targetCityID) {
		return CreateDecision{
			Reason:         "content can only be created in an accessible city",
			AllowedTenants: allowed,
		}
	}
	return CreateDecision{Allowed: true, AllowedTenants: allowed}
}

// ValidateCrossTenant permits admins everywhere and everyone else only
// in their home city. The denial reason names the role and the action
// for audit logs.
func (s *Service) ValidateCrossTenant(user model.User, targetCityID, action string) CrossTenantDecision {
	if targetCityID == "" {
		return CrossTenantDecision{Reason: "target city is required"}
	}
	if user.Role == enums.RoleAdmin {
		return CrossTenantDecision{Allowed: true}
	}
	if targetCityID == user.CityID {
		return CrossTenantDecision{Allowed: true}
	}
	return CrossTenantDecision{
		Reason: fmt.Sprintf("role %s cannot perform %s outside home city", user.Role, action),
	}
}

// EnforceIsolation resolves the city a request should run against. An
// out-of-scope request from a non-admin is rewritten to the home city,
// not rejected.
func (s *Service) EnforceIsolation(user model.User, requestedCityID string) Scope {
	if requestedCityID == "" {
		return Scope{TenantID: user.CityID}
	}
	if user.Role == enums.RoleAdmin {
		return Scope{TenantID: requestedCityID}
	}
	if requestedCityID != user.CityID {
		return Scope{TenantID: user.CityID, Enforced: true}
	}
	return Scope{TenantID: user.CityID}
}

func (s *Service) isAccessible(user model.User, cityID string) bool {
	if cityID == "" {
		return false
	}
	for _, id := range s.AccessibleTenants(user) {
		if id == cityID {
			return true
		}
	}
	return false
}

// FilterByTenant keeps only the items the user may see, preserving
// input order. Admins get every item back, including items tagged with
// cities that are no longer configured.
func FilterByTenant[T TenantScoped](s *Service, items []T, user model.User) []T {
	out := make([]T, 0, len(items))
	if user.Role == enums.RoleAdmin {
		return append(out, items...)
	}
	for _, item := range items {
		if s.isAccessible(user, item.TenantID()) {
			out = append(out, item)
		}
	}
	return out
}
