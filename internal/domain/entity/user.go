package entity

import (
	"regexp"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario del sistema (administrador o vendedor).
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt; registros antiguos pueden tener MD5 hasta su primer login
	Role         string
	CreatedAt    time.Time
}

var md5HexRe = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)

// HasLegacyHash indica si la contraseña guardada es un hash MD5 heredado.
func (u *User) HasLegacyHash() bool {
	return md5HexRe.MatchString(u.PasswordHash)
}

// IsValidRole valida el rol contra los roles conocidos.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVendedor
}
