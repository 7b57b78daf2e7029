package handler

import (
	"net/http"
	"strconv"

	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc       service.DashboardService
	encuestas service.EncuestaService
}

func NewDashboardHandler(svc service.DashboardService, encuestas service.EncuestaService) *DashboardHandler {
	return &DashboardHandler{svc: svc, encuestas: encuestas}
}

// Resumen godoc
// @Summary      Resumen general
// @Description  Indicadores de portada para gerencia. Cacheado 60s.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ResumenResponse
// @Router       /dashboard/resumen [get]
func (h *DashboardHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Resumen", resp)
}

// Ventas godoc
// @Summary      Ventas por mes
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        meses query int false "Meses hacia atrás (default 12)"
// @Success      200 {object} dto.VentasResponse
// @Router       /dashboard/ventas [get]
func (h *DashboardHandler) Ventas(c *gin.Context) {
	meses, _ := strconv.Atoi(c.DefaultQuery("meses", "12"))
	resp, err := h.svc.Ventas(c.Request.Context(), meses)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Ventas por mes", resp)
}

// Inventario godoc
// @Summary      Estado del inventario
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.InventarioDashboardResponse
// @Router       /dashboard/inventario [get]
func (h *DashboardHandler) Inventario(c *gin.Context) {
	resp, err := h.svc.Inventario(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Inventario", resp)
}

// Clientes godoc
// @Summary      Métricas de clientes
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ClientesDashboardResponse
// @Router       /dashboard/clientes [get]
func (h *DashboardHandler) Clientes(c *gin.Context) {
	resp, err := h.svc.Clientes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Clientes", resp)
}

// Operaciones godoc
// @Summary      Operaciones por estado
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.OperacionesDashboardResponse
// @Router       /dashboard/operaciones [get]
func (h *DashboardHandler) Operaciones(c *gin.Context) {
	resp, err := h.svc.Operaciones(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Operaciones por estado", resp)
}

// Satisfaccion godoc
// @Summary      Satisfacción de clientes
// @Description  Promedios de las encuestas postventa (escala 1-7).
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SatisfaccionResponse
// @Router       /dashboard/satisfaccion [get]
func (h *DashboardHandler) Satisfaccion(c *gin.Context) {
	resp, err := h.encuestas.Satisfaccion(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Satisfacción", resp)
}
