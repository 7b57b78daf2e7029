package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cataldo/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTienePermiso(t *testing.T) {
	casos := []struct {
		rol      model.Rol
		recurso  string
		accion   Accion
		esperado bool
	}{
		{model.RolCliente, RecursoOperaciones, AccionVer, true},
		{model.RolCliente, RecursoOperaciones, AccionCrear, false},
		{model.RolCliente, RecursoEncuestas, AccionCrear, true},
		{model.RolCliente, RecursoDashboard, AccionVer, false},

		{model.RolTrabajadorTienda, RecursoMateriales, AccionEliminar, true},
		{model.RolTrabajadorTienda, RecursoOperaciones, AccionEliminar, false},
		{model.RolTrabajadorTienda, RecursoDashboard, AccionVer, false},

		{model.RolGerente, RecursoOperaciones, AccionEliminar, true},
		{model.RolGerente, RecursoDashboard, AccionVer, true},
		{model.RolGerente, RecursoUsuarios, AccionCrear, false},

		{model.RolAdministrador, RecursoUsuarios, AccionEliminar, true},
		{model.RolAdministrador, RecursoAuditoria, AccionVer, true},

		{model.RolBloqueado, RecursoOperaciones, AccionVer, false},
		{model.RolUsuario, RecursoOperaciones, AccionVer, false},
	}
	for _, c := range casos {
		got := TienePermiso(c.rol, c.recurso, c.accion)
		assert.Equal(t, c.esperado, got, "%s %s:%s", c.rol, c.recurso, c.accion)
	}
}

func routerConRol(rol string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ClaimsKey, &JWTClaims{Rol: rol})
	})
	r.GET("/operaciones/1", RequirePermiso(RecursoOperaciones, AccionVer), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequirePermisoEnRuta(t *testing.T) {
	casos := map[string]int{
		"cliente":           http.StatusOK,
		"trabajador_tienda": http.StatusOK,
		"gerente":           http.StatusOK,
		"usuario":           http.StatusForbidden,
		"bloqueado":         http.StatusForbidden,
		"":                  http.StatusForbidden,
	}
	for rol, esperado := range casos {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/operaciones/1", nil)
		routerConRol(rol).ServeHTTP(w, req)
		assert.Equal(t, esperado, w.Code, "rol %q", rol)
	}
}

func TestRequirePermisoSinClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequirePermiso(RecursoOperaciones, AccionVer), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
