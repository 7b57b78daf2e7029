package handler

import (
	"net/http"

	"cataldo/internal/apierror"
	"cataldo/internal/dto"
	"cataldo/internal/middleware"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type UsuariosHandler struct{ svc service.UsuarioService }

func NewUsuariosHandler(svc service.UsuarioService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear usuario
// @Description  Alta administrativa con rol explícito y perfil opcional (cliente o personal de tienda).
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearUsuarioRequest true "Datos del usuario"
// @Success      201 {object} dto.UsuarioResponse
// @Failure      409 {object} apierror.APIError
// @Router       /admin/users [post]
func (h *UsuariosHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := actorDe(c)
	resp, err := h.svc.Crear(c.Request.Context(), req, actor.Email, actor.IP)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Usuario creado", resp)
}

// Listar godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        rol    query string false "Filtrar por rol"
// @Param        activo query string false "false | all (default: activos)"
// @Param        page   query int    false "Página"
// @Param        limit  query int    false "Registros por página"
// @Success      200 {object} dto.UsuarioListResponse
// @Router       /admin/users [get]
func (h *UsuariosHandler) Listar(c *gin.Context) {
	var filter dto.UsuarioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Usuarios", resp)
}

// Obtener godoc
// @Summary      Detalle de usuario
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del usuario"
// @Success      200 {object} dto.UsuarioResponse
// @Failure      404 {object} apierror.APIError
// @Router       /admin/users/{id} [get]
func (h *UsuariosHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Usuario", resp)
}

// Perfil returns the authenticated user's own record.
func (h *UsuariosHandler) Perfil(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Obtener(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Perfil", resp)
}

// Actualizar godoc
// @Summary      Actualizar usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID del usuario"
// @Param        body body dto.ActualizarUsuarioRequest true "Campos a modificar"
// @Success      200 {object} dto.UsuarioResponse
// @Failure      404 {object} apierror.APIError
// @Router       /admin/users/{id} [put]
func (h *UsuariosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := actorDe(c)
	resp, err := h.svc.Actualizar(c.Request.Context(), c.Param("id"), req, actor.Email, actor.IP)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Usuario actualizado", resp)
}

// Eliminar godoc
// @Summary      Desactivar usuario
// @Description  Baja lógica: la cuenta queda inactiva y bloqueada, nunca se borra la fila.
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del usuario"
// @Success      200 {object} handler.envelope
// @Failure      404 {object} apierror.APIError
// @Router       /admin/users/{id} [delete]
func (h *UsuariosHandler) Eliminar(c *gin.Context) {
	actor := actorDe(c)
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("id"), actor.Email, actor.IP); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Usuario desactivado", nil)
}
