package handler

import (
	"net/http"

	"cataldo/internal/apierror"
	"cataldo/internal/dto"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type MaterialesHandler struct{ svc service.MaterialService }

func NewMaterialesHandler(svc service.MaterialService) *MaterialesHandler {
	return &MaterialesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear material
// @Tags         materiales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearMaterialRequest true "Datos del material"
// @Success      201 {object} dto.MaterialResponse
// @Router       /materiales [post]
func (h *MaterialesHandler) Crear(c *gin.Context) {
	var req dto.CrearMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Material creado", resp)
}

// Listar godoc
// @Summary      Listar materiales
// @Tags         materiales
// @Produce      json
// @Security     BearerAuth
// @Param        nombre       query string false "Búsqueda por nombre"
// @Param        proveedor_id query string false "Filtrar por proveedor"
// @Success      200 {object} dto.MaterialListResponse
// @Router       /materiales [get]
func (h *MaterialesHandler) Listar(c *gin.Context) {
	var filter dto.MaterialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Materiales", resp)
}

// Obtener godoc
// @Summary      Detalle de material
// @Tags         materiales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del material"
// @Success      200 {object} dto.MaterialResponse
// @Failure      404 {object} apierror.APIError
// @Router       /materiales/{id} [get]
func (h *MaterialesHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Material", resp)
}

// Actualizar godoc
// @Summary      Actualizar material
// @Tags         materiales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                        true "UUID del material"
// @Param        body body dto.ActualizarMaterialRequest true "Campos a modificar"
// @Success      200 {object} dto.MaterialResponse
// @Router       /materiales/{id} [put]
func (h *MaterialesHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), c.Param("id"), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Material actualizado", resp)
}

// ActualizarStock godoc
// @Summary      Ajustar stock
// @Description  Operaciones add, subtract o set. subtract nunca deja existencia negativa.
// @Tags         materiales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                     true "UUID del material"
// @Param        body body dto.ActualizarStockRequest true "Ajuste"
// @Success      200 {object} dto.MaterialResponse
// @Failure      400 {object} apierror.APIError
// @Router       /materiales/{id}/stock [patch]
func (h *MaterialesHandler) ActualizarStock(c *gin.Context) {
	var req dto.ActualizarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarStock(c.Request.Context(), c.Param("id"), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Stock actualizado", resp)
}

// Alertas godoc
// @Summary      Alertas de stock
// @Description  Materiales agrupados por nivel: critico (0), bajo (≤ mínimo) y medio (≤ 1.5x mínimo).
// @Tags         materiales
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.AlertaStockResponse
// @Router       /materiales/alertas [get]
func (h *MaterialesHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.ObtenerAlertas(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Alertas de stock", resp)
}

// Eliminar godoc
// @Summary      Eliminar material
// @Description  Borrado físico, rechazado mientras algún producto use el material.
// @Tags         materiales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del material"
// @Success      200 {object} handler.envelope
// @Failure      409 {object} apierror.APIError
// @Router       /materiales/{id} [delete]
func (h *MaterialesHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("id"), actorDe(c)); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Material eliminado", nil)
}
