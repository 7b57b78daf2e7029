package handler

import (
	"net/http"

	"cataldo/internal/apierror"
	"cataldo/internal/dto"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct{ svc service.AuditService }

func NewAuditHandler(svc service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// Logs godoc
// @Summary      Logs del sistema
// @Description  Registros de auditoría paginados, más recientes primero.
// @Tags         auditoria
// @Produce      json
// @Security     BearerAuth
// @Param        tipo_evento query string false "LOGIN | CREACION | CAMBIO_ESTADO | ..."
// @Param        severidad   query string false "INFO | WARNING | ERROR | CRITICAL"
// @Param        entidad     query string false "usuario | operacion | material | ..."
// @Param        desde       query string false "Fecha YYYY-MM-DD"
// @Param        hasta       query string false "Fecha YYYY-MM-DD"
// @Success      200 {object} dto.AuditListResponse
// @Router       /admin/audit/logs [get]
func (h *AuditHandler) Logs(c *gin.Context) {
	var filter dto.AuditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.GetSystemLogs(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Logs del sistema", resp)
}

// ActividadUsuario godoc
// @Summary      Actividad de un usuario
// @Tags         auditoria
// @Produce      json
// @Security     BearerAuth
// @Param        email path string true "Email del actor"
// @Success      200 {object} dto.AuditListResponse
// @Router       /admin/audit/user/{email} [get]
func (h *AuditHandler) ActividadUsuario(c *gin.Context) {
	var filter dto.AuditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.GetUserActivityLog(c.Request.Context(), c.Param("email"), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Actividad del usuario", resp)
}

// LoginsFallidos godoc
// @Summary      Intentos de login fallidos
// @Tags         auditoria
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.AuditListResponse
// @Router       /admin/audit/failed-logins [get]
func (h *AuditHandler) LoginsFallidos(c *gin.Context) {
	var filter dto.AuditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.GetFailedLoginAttempts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Logins fallidos", resp)
}

// HistorialEntidad godoc
// @Summary      Línea de tiempo de una entidad
// @Description  Todos los eventos de una entidad en orden cronológico.
// @Tags         auditoria
// @Produce      json
// @Security     BearerAuth
// @Param        entidad path string true "Tipo de entidad"
// @Param        id      path string true "ID de la entidad"
// @Success      200 {array} dto.AuditLogResponse
// @Router       /admin/audit/entity/{entidad}/{id} [get]
func (h *AuditHandler) HistorialEntidad(c *gin.Context) {
	resp, err := h.svc.GetEntityHistory(c.Request.Context(), c.Param("entidad"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Historial de la entidad", resp)
}
