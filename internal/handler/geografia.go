package handler

import (
	"net/http"

	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

// GeografiaHandler expone el árbol territorial chileno precargado
// (país > región > provincia > comuna) para los formularios de dirección.
type GeografiaHandler struct{ svc service.GeografiaService }

func NewGeografiaHandler(svc service.GeografiaService) *GeografiaHandler {
	return &GeografiaHandler{svc: svc}
}

// Paises godoc
// @Summary      Lista de países
// @Tags         geografia
// @Produce      json
// @Success      200 {array} dto.PaisResponse
// @Router       /geografia/paises [get]
func (h *GeografiaHandler) Paises(c *gin.Context) {
	resp, err := h.svc.Paises(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Países", resp)
}

// Regiones godoc
// @Summary      Regiones de un país
// @Tags         geografia
// @Produce      json
// @Param        pais_id path string true "ID del país"
// @Success      200 {array} dto.RegionResponse
// @Router       /geografia/paises/{pais_id}/regiones [get]
func (h *GeografiaHandler) Regiones(c *gin.Context) {
	resp, err := h.svc.Regiones(c.Request.Context(), c.Param("pais_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Regiones", resp)
}

// Provincias godoc
// @Summary      Provincias de una región
// @Tags         geografia
// @Produce      json
// @Param        region_id path string true "ID de la región"
// @Success      200 {array} dto.ProvinciaResponse
// @Router       /geografia/regiones/{region_id}/provincias [get]
func (h *GeografiaHandler) Provincias(c *gin.Context) {
	resp, err := h.svc.Provincias(c.Request.Context(), c.Param("region_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Provincias", resp)
}

// Comunas godoc
// @Summary      Comunas de una provincia
// @Tags         geografia
// @Produce      json
// @Param        provincia_id path string true "ID de la provincia"
// @Success      200 {array} dto.ComunaResponse
// @Router       /geografia/provincias/{provincia_id}/comunas [get]
func (h *GeografiaHandler) Comunas(c *gin.Context) {
	resp, err := h.svc.Comunas(c.Request.Context(), c.Param("provincia_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, "Comunas", resp)
}
