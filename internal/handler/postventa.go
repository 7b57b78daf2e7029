package handler

import (
	"net/http"

	"cataldo/internal/apierror"
	"cataldo/internal/dto"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type PostventaHandler struct{ svc service.PostventaService }

func NewPostventaHandler(svc service.PostventaService) *PostventaHandler {
	return &PostventaHandler{svc: svc}
}

// Enviar godoc
// @Summary      Enviar correo
// @Description  Registra el correo como pendiente y lo encola; el envío real es asíncrono.
// @Tags         postventa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EnviarCorreoRequest true "Destinatario y contenido"
// @Success      202 {object} dto.CorreoResponse
// @Router       /postventa/enviar [post]
func (h *PostventaHandler) Enviar(c *gin.Context) {
	var req dto.EnviarCorreoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Enviar(c.Request.Context(), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusAccepted, "Correo encolado", resp)
}

// EnviarPostventa godoc
// @Summary      Enviar seguimiento postventa
// @Description  Encola el correo estándar de agradecimiento para una operación entregada o pagada.
// @Tags         postventa
// @Produce      json
// @Security     BearerAuth
// @Param        operacion_id path string true "UUID de la operación"
// @Success      202 {object} dto.CorreoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /postventa/operacion/{operacion_id} [post]
func (h *PostventaHandler) EnviarPostventa(c *gin.Context) {
	resp, err := h.svc.EnviarPostventa(c.Request.Context(), c.Param("operacion_id"), actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusAccepted, "Correo postventa encolado", resp)
}

// Historial godoc
// @Summary      Historial de correos
// @Tags         postventa
// @Produce      json
// @Security     BearerAuth
// @Param        estado query string false "pendiente | enviado | fallido"
// @Param        tipo   query string false "postventa | cumpleanos | manual"
// @Success      200 {object} dto.CorreoListResponse
// @Router       /postventa/historial [get]
func (h *PostventaHandler) Historial(c *gin.Context) {
	var filter dto.CorreoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Historial de correos", resp)
}

// Estadisticas godoc
// @Summary      Estadísticas de envío
// @Tags         postventa
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.EstadisticasCorreoResponse
// @Router       /postventa/estadisticas [get]
func (h *PostventaHandler) Estadisticas(c *gin.Context) {
	resp, err := h.svc.Estadisticas(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Estadísticas de correo", resp)
}

// Reintentar godoc
// @Summary      Reintentar correo fallido
// @Tags         postventa
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del correo"
// @Success      202 {object} dto.CorreoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /postventa/reintentar/{id} [post]
func (h *PostventaHandler) Reintentar(c *gin.Context) {
	resp, err := h.svc.Reintentar(c.Request.Context(), c.Param("id"), actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusAccepted, "Reintento encolado", resp)
}
