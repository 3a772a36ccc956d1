package entity

import "fmt"

// Role is the closed set of authorization roles a user can hold.
// Keep the set small; every switch over Role must handle all constants.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a raw string to a Role, rejecting anything outside
// the known set. Use this at every trust boundary (request payloads,
// token claims, store documents).
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }
