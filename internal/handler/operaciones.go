package handler

import (
	"net/http"

	"cataldo/internal/apierror"
	"cataldo/internal/dto"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type OperacionesHandler struct{ svc service.OperacionService }

func NewOperacionesHandler(svc service.OperacionService) *OperacionesHandler {
	return &OperacionesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear operación
// @Description  Abre una operación en estado cotizacion con los productos snapshot a precio del día.
// @Tags         operaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearOperacionRequest true "Cliente y productos"
// @Success      201 {object} dto.OperacionResponse
// @Failure      400 {object} apierror.APIError
// @Router       /operaciones [post]
func (h *OperacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearOperacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Operación creada", resp)
}

// Listar godoc
// @Summary      Listar operaciones
// @Tags         operaciones
// @Produce      json
// @Security     BearerAuth
// @Param        estado     query string false "Filtrar por estado"
// @Param        cliente_id query string false "Filtrar por cliente"
// @Param        desde      query string false "Fecha YYYY-MM-DD"
// @Param        hasta      query string false "Fecha YYYY-MM-DD"
// @Success      200 {object} dto.OperacionListResponse
// @Router       /operaciones [get]
func (h *OperacionesHandler) Listar(c *gin.Context) {
	var filter dto.OperacionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Operaciones", resp)
}

// MisOperaciones lists the calling customer's own orders.
func (h *OperacionesHandler) MisOperaciones(c *gin.Context) {
	var filter dto.OperacionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.MisOperaciones(c.Request.Context(), actorDe(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Mis operaciones", resp)
}

// Obtener godoc
// @Summary      Detalle de operación
// @Description  Incluye items, historial de estados y saldo pendiente. Un cliente solo ve las suyas.
// @Tags         operaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la operación"
// @Success      200 {object} dto.OperacionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /operaciones/{id} [get]
func (h *OperacionesHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"), actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Operación", resp)
}

// CambiarEstado godoc
// @Summary      Cambiar estado
// @Description  Transición dentro de la lista de estados permitidos; cada cambio queda en el historial.
// @Tags         operaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "UUID de la operación"
// @Param        body body dto.CambiarEstadoRequest true "Estado destino"
// @Success      200 {object} dto.OperacionResponse
// @Failure      400 {object} apierror.APIError
// @Router       /operaciones/{id}/estado [patch]
func (h *OperacionesHandler) CambiarEstado(c *gin.Context) {
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), c.Param("id"), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Estado actualizado", resp)
}

// RegistrarAbono godoc
// @Summary      Registrar abono
// @Description  Suma un pago parcial; el total abonado nunca puede exceder el costo de la operación.
// @Tags         operaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "UUID de la operación"
// @Param        body body dto.RegistrarAbonoRequest true "Monto"
// @Success      200 {object} dto.OperacionResponse
// @Failure      400 {object} apierror.APIError
// @Router       /operaciones/{id}/abono [post]
func (h *OperacionesHandler) RegistrarAbono(c *gin.Context) {
	var req dto.RegistrarAbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarAbono(c.Request.Context(), c.Param("id"), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Abono registrado", resp)
}

// Anular godoc
// @Summary      Anular operación
// @Description  Transición terminal a anulada con motivo obligatorio. Requiere gerente o superior.
// @Tags         operaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                     true "UUID de la operación"
// @Param        body body dto.AnularOperacionRequest true "Motivo"
// @Success      200 {object} dto.OperacionResponse
// @Failure      403 {object} apierror.APIError
// @Router       /operaciones/{id} [delete]
func (h *OperacionesHandler) Anular(c *gin.Context) {
	var req dto.AnularOperacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Anular(c.Request.Context(), c.Param("id"), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Operación anulada", resp)
}
