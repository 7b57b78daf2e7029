package handler

import (
	"net/http"

	"cataldo/internal/dto"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type ProveedoresHandler struct{ svc service.ProveedorService }

func NewProveedoresHandler(svc service.ProveedorService) *ProveedoresHandler {
	return &ProveedoresHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear proveedor
// @Description  El RUT se valida con módulo 11 y debe ser único entre proveedores.
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProveedorRequest true "Datos del proveedor"
// @Success      201 {object} dto.ProveedorResponse
// @Failure      409 {object} apierror.APIError
// @Router       /proveedores [post]
func (h *ProveedoresHandler) Crear(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Proveedor creado", resp)
}

// Listar godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Produce      json
// @Security     BearerAuth
// @Param        incluir_inactivos query bool false "Incluir desactivados"
// @Success      200 {array} dto.ProveedorResponse
// @Router       /proveedores [get]
func (h *ProveedoresHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Proveedores", resp)
}

// Obtener godoc
// @Summary      Detalle de proveedor
// @Tags         proveedores
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del proveedor"
// @Success      200 {object} dto.ProveedorResponse
// @Failure      404 {object} apierror.APIError
// @Router       /proveedores/{id} [get]
func (h *ProveedoresHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Proveedor", resp)
}

// Actualizar godoc
// @Summary      Actualizar proveedor
// @Description  Reemplaza los datos comerciales y la lista completa de representantes.
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "UUID del proveedor"
// @Param        body body dto.CrearProveedorRequest true "Datos del proveedor"
// @Success      200 {object} dto.ProveedorResponse
// @Router       /proveedores/{id} [put]
func (h *ProveedoresHandler) Actualizar(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), c.Param("id"), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Proveedor actualizado", resp)
}

// Desactivar godoc
// @Summary      Desactivar proveedor
// @Description  Baja lógica; los materiales que lo referencian no se tocan.
// @Tags         proveedores
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del proveedor"
// @Success      200 {object} handler.envelope
// @Router       /proveedores/{id} [delete]
func (h *ProveedoresHandler) Desactivar(c *gin.Context) {
	if err := h.svc.Desactivar(c.Request.Context(), c.Param("id"), actorDe(c)); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Proveedor desactivado", nil)
}
