package middleware

import (
	"net/http"

	"cataldo/internal/apierror"
	"cataldo/internal/model"

	"github.com/gin-gonic/gin"
)

// Accion is a CRUD operation on a resource.
type Accion string

const (
	AccionVer      Accion = "ver"
	AccionCrear    Accion = "crear"
	AccionEditar   Accion = "editar"
	AccionEliminar Accion = "eliminar"
)

// Recursos del sistema.
const (
	RecursoUsuarios    = "usuarios"
	RecursoOperaciones = "operaciones"
	RecursoProductos   = "productos"
	RecursoMateriales  = "materiales"
	RecursoProveedores = "proveedores"
	RecursoEncuestas   = "encuestas"
	RecursoCorreos     = "correos"
	RecursoDashboard   = "dashboard"
	RecursoAuditoria   = "auditoria"
)

var todas = []Accion{AccionVer, AccionCrear, AccionEditar, AccionEliminar}

// permisos is the static rol×recurso→acciones matrix. Permissions derive
// from this table, never from per-user rows.
var permisos = map[model.Rol]map[string][]Accion{
	model.RolCliente: {
		RecursoOperaciones: {AccionVer},
		RecursoEncuestas:   {AccionVer, AccionCrear},
	},
	model.RolTrabajadorTienda: {
		RecursoOperaciones: {AccionVer, AccionCrear, AccionEditar},
		RecursoProductos:   {AccionVer, AccionCrear, AccionEditar},
		RecursoMateriales:  todas,
		RecursoProveedores: {AccionVer, AccionCrear, AccionEditar},
		RecursoEncuestas:   {AccionVer},
		RecursoCorreos:     todas,
	},
	model.RolGerente: {
		RecursoOperaciones: todas,
		RecursoProductos:   todas,
		RecursoMateriales:  todas,
		RecursoProveedores: todas,
		RecursoEncuestas:   {AccionVer},
		RecursoCorreos:     todas,
		RecursoDashboard:   {AccionVer},
	},
	model.RolAdministrador: {
		RecursoUsuarios:    todas,
		RecursoOperaciones: todas,
		RecursoProductos:   todas,
		RecursoMateriales:  todas,
		RecursoProveedores: todas,
		RecursoEncuestas:   {AccionVer},
		RecursoCorreos:     todas,
		RecursoDashboard:   {AccionVer},
		RecursoAuditoria:   {AccionVer},
	},
}

// TienePermiso answers whether rol may perform accion on recurso.
func TienePermiso(rol model.Rol, recurso string, accion Accion) bool {
	acciones, ok := permisos[rol][recurso]
	if !ok {
		return false
	}
	for _, a := range acciones {
		if a == accion {
			return true
		}
	}
	return false
}

// RequirePermiso gates a route on the permission matrix.
func RequirePermiso(recurso string, accion Accion) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !TienePermiso(model.Rol(claims.Rol), recurso, accion) {
			actual := ""
			if claims != nil {
				actual = claims.Rol
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierror.NewForbidden(actual, recurso+":"+string(accion)))
			return
		}
		c.Next()
	}
}
