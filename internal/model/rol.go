package model

import "fmt"

// Rol is the closed set of system roles. Authorization decisions compare
// levels through Nivel/AtLeast instead of raw strings.
type Rol string

const (
	RolBloqueado        Rol = "bloqueado"
	RolUsuario          Rol = "usuario"
	RolCliente          Rol = "cliente"
	RolTrabajadorTienda Rol = "trabajador_tienda"
	RolGerente          Rol = "gerente"
	RolAdministrador    Rol = "administrador"
)

// Nivel returns the ordinal position of the role in the hierarchy.
// bloqueado is below every role and can never satisfy a minimum-role check.
func (r Rol) Nivel() int {
	switch r {
	case RolUsuario:
		return 1
	case RolCliente:
		return 2
	case RolTrabajadorTienda:
		return 3
	case RolGerente:
		return 4
	case RolAdministrador:
		return 5
	default:
		return 0
	}
}

// AtLeast reports whether r sits at or above min in the hierarchy.
func (r Rol) AtLeast(min Rol) bool {
	return r.Nivel() > 0 && r.Nivel() >= min.Nivel()
}

// ParseRol validates a role string coming from a request or a token.
func ParseRol(s string) (Rol, error) {
	switch r := Rol(s); r {
	case RolBloqueado, RolUsuario, RolCliente, RolTrabajadorTienda, RolGerente, RolAdministrador:
		return r, nil
	}
	return "", fmt.Errorf("rol desconocido: %q", s)
}
