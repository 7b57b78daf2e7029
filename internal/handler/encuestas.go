package handler

import (
	"net/http"

	"cataldo/internal/dto"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type EncuestasHandler struct{ svc service.EncuestaService }

func NewEncuestasHandler(svc service.EncuestaService) *EncuestasHandler {
	return &EncuestasHandler{svc: svc}
}

// Crear godoc
// @Summary      Responder encuesta
// @Description  Una sola encuesta por operación, y solo cuando la operación está entregada.
// @Tags         encuestas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearEncuestaRequest true "Notas 1-7 y comentario"
// @Success      201 {object} dto.EncuestaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /encuestas [post]
func (h *EncuestasHandler) Crear(c *gin.Context) {
	var req dto.CrearEncuestaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Encuesta registrada", resp)
}

// Listar returns all survey responses (staff view).
func (h *EncuestasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Encuestas", resp)
}

// ObtenerPorOperacion godoc
// @Summary      Encuesta de una operación
// @Tags         encuestas
// @Produce      json
// @Security     BearerAuth
// @Param        operacion_id path string true "UUID de la operación"
// @Success      200 {object} dto.EncuestaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /encuestas/operacion/{operacion_id} [get]
func (h *EncuestasHandler) ObtenerPorOperacion(c *gin.Context) {
	resp, err := h.svc.ObtenerPorOperacion(c.Request.Context(), c.Param("operacion_id"), actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Encuesta", resp)
}
