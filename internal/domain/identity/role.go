package identity

import (
	"fmt"
	"strings"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// Role is the access level stored on a user document
type Role string

const (
	RoleAdmin   Role = "admin"   // Full access, including user management
	RoleManager Role = "gestor"  // Approves requests and manages catalogs
	RoleTech    Role = "tecnico" // Creates requests
)

// Roles lists the stored role values
var Roles = []Role{RoleAdmin, RoleManager, RoleTech}

var roleAliases = map[string]Role{
	"administrator": RoleAdmin,
	"manager":       RoleManager,
	"technician":    RoleTech,
}

// ParseRole accepts a stored role value or its English alias, case-insensitively
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, r := range Roles {
		if name == string(r) {
			return r, nil
		}
	}
	if r, ok := roleAliases[name]; ok {
		return r, nil
	}
	return "", shared.InvalidInput(fmt.Sprintf("invalid role %q: expected one of admin, gestor, tecnico", s))
}

// Valid reports whether r is a stored role value
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// String returns the stored value
func (r Role) String() string {
	return string(r)
}
