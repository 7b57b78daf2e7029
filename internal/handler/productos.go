package handler

import (
	"net/http"

	"cataldo/internal/apierror"
	"cataldo/internal/dto"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear producto o servicio
// @Description  El precio de venta se deriva de los costos y el margen; nunca se acepta desde el cliente.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProductoRequest true "Datos del producto"
// @Success      201 {object} dto.ProductoResponse
// @Router       /productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Producto creado", resp)
}

// Listar godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        nombre      query string false "Búsqueda por nombre"
// @Param        es_servicio query string false "true | false"
// @Param        activo      query string false "false | all (default: activos)"
// @Success      200 {object} dto.ProductoListResponse
// @Router       /productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Productos", resp)
}

// Obtener godoc
// @Summary      Detalle de producto
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /productos/{id} [get]
func (h *ProductosHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Producto", resp)
}

// Actualizar godoc
// @Summary      Actualizar producto
// @Description  Cualquier cambio de costos o margen recalcula el precio de venta.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                        true "UUID del producto"
// @Param        body body dto.ActualizarProductoRequest true "Campos a modificar"
// @Success      200 {object} dto.ProductoResponse
// @Router       /productos/{id} [put]
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), c.Param("id"), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Producto actualizado", resp)
}

// Desactivar hides the product from new orders without touching past ones.
func (h *ProductosHandler) Desactivar(c *gin.Context) {
	if err := h.svc.Desactivar(c.Request.Context(), c.Param("id"), actorDe(c)); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Producto desactivado", nil)
}

// Reactivar restores a deactivated product to the catalog.
func (h *ProductosHandler) Reactivar(c *gin.Context) {
	if err := h.svc.Reactivar(c.Request.Context(), c.Param("id"), actorDe(c)); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Producto reactivado", nil)
}

// CrearCostoTerceros godoc
// @Summary      Registrar costo de terceros
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCostoTercerosRequest true "Detalle del costo"
// @Success      201 {object} dto.CostoTercerosResponse
// @Router       /productos/costos-terceros [post]
func (h *ProductosHandler) CrearCostoTerceros(c *gin.Context) {
	var req dto.CrearCostoTercerosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCostoTerceros(c.Request.Context(), req, actorDe(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Costo registrado", resp)
}

// ListarCostosTerceros lists the registered overhead records.
func (h *ProductosHandler) ListarCostosTerceros(c *gin.Context) {
	resp, err := h.svc.ListarCostosTerceros(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Costos de terceros", resp)
}
