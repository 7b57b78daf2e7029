package dto

import "github.com/shopspring/decimal"

type MaterialProductoRequest struct {
	MaterialID string `json:"material_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type CrearProductoRequest struct {
	Nombre          string          `json:"nombre"           validate:"required,min=2,max=120"`
	Descripcion     *string         `json:"descripcion"`
	EsServicio      bool            `json:"es_servicio"`
	CostoMateriales decimal.Decimal `json:"costo_materiales" validate:"min=0"`
	CostoManoObra   decimal.Decimal `json:"costo_mano_obra"  validate:"min=0"`
	MargenPct       decimal.Decimal `json:"margen_pct"       validate:"min=0,max=500"`
	CostoTercerosID *string         `json:"costo_terceros_id" validate:"omitempty,uuid"`

	Materiales []MaterialProductoRequest `json:"materiales" validate:"omitempty,dive"`
}

type ActualizarProductoRequest struct {
	Nombre          *string          `json:"nombre"           validate:"omitempty,min=2,max=120"`
	Descripcion     *string          `json:"descripcion"`
	CostoMateriales *decimal.Decimal `json:"costo_materiales" validate:"omitempty,min=0"`
	CostoManoObra   *decimal.Decimal `json:"costo_mano_obra"  validate:"omitempty,min=0"`
	MargenPct       *decimal.Decimal `json:"margen_pct"       validate:"omitempty,min=0,max=500"`
	CostoTercerosID *string          `json:"costo_terceros_id" validate:"omitempty,uuid"`
}

type MaterialProductoResponse struct {
	MaterialID     string `json:"material_id"`
	NombreMaterial string `json:"nombre_material"`
	Cantidad       int    `json:"cantidad"`
}

type ProductoResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	Descripcion     *string         `json:"descripcion"`
	EsServicio      bool            `json:"es_servicio"`
	CostoMateriales decimal.Decimal `json:"costo_materiales"`
	CostoManoObra   decimal.Decimal `json:"costo_mano_obra"`
	MargenPct       decimal.Decimal `json:"margen_pct"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	CostoTercerosID *string         `json:"costo_terceros_id"`
	Activo          bool            `json:"activo"`

	Materiales []MaterialProductoResponse `json:"materiales,omitempty"`
}

type ProductoFilter struct {
	Nombre     string `form:"nombre"`
	EsServicio string `form:"es_servicio"` // "true" | "false" | empty
	Activo     string `form:"activo"`      // "false" | "all" | default activos
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type CrearCostoTercerosRequest struct {
	Descripcion string          `json:"descripcion"  validate:"required,min=3"`
	Monto       decimal.Decimal `json:"monto"        validate:"required"`
	FechaInicio *string         `json:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin    *string         `json:"fecha_fin"    validate:"omitempty,datetime=2006-01-02"`
}

type CostoTercerosResponse struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	FechaInicio *string         `json:"fecha_inicio"`
	FechaFin    *string         `json:"fecha_fin"`
}
