package handler

import (
	"net/http"
	"strconv"

	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type CumpleanosHandler struct{ svc service.CumpleanosService }

func NewCumpleanosHandler(svc service.CumpleanosService) *CumpleanosHandler {
	return &CumpleanosHandler{svc: svc}
}

// Hoy godoc
// @Summary      Cumpleaños de hoy
// @Description  Clientes activos con consentimiento cuyo cumpleaños cae hoy (zona horaria del negocio).
// @Tags         cumpleanos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CumpleanosClienteResponse
// @Router       /cumpleanos/hoy [get]
func (h *CumpleanosHandler) Hoy(c *gin.Context) {
	resp, err := h.svc.ClientesHoy(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Cumpleaños de hoy", resp)
}

// Proximos godoc
// @Summary      Próximos cumpleaños
// @Tags         cumpleanos
// @Produce      json
// @Security     BearerAuth
// @Param        dias query int false "Ventana en días (default 7)"
// @Success      200 {array} dto.CumpleanosClienteResponse
// @Router       /cumpleanos/proximos [get]
func (h *CumpleanosHandler) Proximos(c *gin.Context) {
	dias, _ := strconv.Atoi(c.DefaultQuery("dias", "7"))
	resp, err := h.svc.ClientesProximos(c.Request.Context(), dias)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Próximos cumpleaños", resp)
}

// Enviar godoc
// @Summary      Disparar saludos manualmente
// @Description  Ejecuta la misma rutina del job diario y reporta el resultado por cliente.
// @Tags         cumpleanos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ResultadoCumpleanos
// @Router       /cumpleanos/enviar [post]
func (h *CumpleanosHandler) Enviar(c *gin.Context) {
	resp, err := h.svc.EnviarSaludos(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Saludos procesados", resp)
}
