package enums

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleParent    Role = "parent"
	RoleOrganiser Role = "organiser"
	RoleAdmin     Role = "admin"
	RoleGuest     Role = "guest"
	RolePartner   Role = "partner"
)

var allRoles = map[Role]struct{}{
	RoleParent:    {},
	RoleOrganiser: {},
	RoleAdmin:     {},
	RoleGuest:     {},
	RolePartner:   {},
}

func ParseRole(value string) (Role, error) {
	role := Role(strings.TrimSpace(value))
	if _, ok := allRoles[role]; !ok {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return role, nil
}

func (r Role) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}
