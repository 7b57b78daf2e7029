package dto

import "github.com/shopspring/decimal"

type CrearMaterialRequest struct {
	NombreMaterial string          `json:"nombre_material" validate:"required,min=2,max=120"`
	Descripcion    *string         `json:"descripcion"`
	Existencia     int             `json:"existencia"      validate:"min=0"`
	StockMinimo    int             `json:"stock_minimo"    validate:"min=0"`
	UnidadMedida   string          `json:"unidad_medida"   validate:"omitempty,min=1"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"  validate:"min=0"`
	ProveedorID    *string         `json:"proveedor_id"    validate:"omitempty,uuid"`
}

type ActualizarMaterialRequest struct {
	NombreMaterial *string          `json:"nombre_material" validate:"omitempty,min=2,max=120"`
	Descripcion    *string          `json:"descripcion"`
	StockMinimo    *int             `json:"stock_minimo"    validate:"omitempty,min=0"`
	UnidadMedida   *string          `json:"unidad_medida"`
	CostoUnitario  *decimal.Decimal `json:"costo_unitario"  validate:"omitempty,min=0"`
	ProveedorID    *string          `json:"proveedor_id"    validate:"omitempty,uuid"`
}

// ActualizarStockRequest supports three operations. subtract is rejected
// when it would drive stock negative; add and set are not subject to it.
type ActualizarStockRequest struct {
	Operacion string `json:"operacion" validate:"required,oneof=add subtract set"`
	Cantidad  int    `json:"cantidad"  validate:"min=0"`
	Motivo    string `json:"motivo"    validate:"omitempty,max=250"`
}

type MaterialResponse struct {
	ID              string          `json:"id"`
	NombreMaterial  string          `json:"nombre_material"`
	Descripcion     *string         `json:"descripcion"`
	Existencia      int             `json:"existencia"`
	StockMinimo     int             `json:"stock_minimo"`
	UnidadMedida    string          `json:"unidad_medida"`
	CostoUnitario   decimal.Decimal `json:"costo_unitario"`
	ProveedorID     *string         `json:"proveedor_id"`
	ProveedorNombre string          `json:"proveedor_nombre,omitempty"`
	NivelAlerta     string          `json:"nivel_alerta"`
	Activo          bool            `json:"activo"`
}

type MaterialFilter struct {
	Nombre      string `form:"nombre"`
	ProveedorID string `form:"proveedor_id"`
	Activo      string `form:"activo"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MaterialListResponse struct {
	Data  []MaterialResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// AlertaStockResponse aggregates the bulk alert listing.
type AlertaStockResponse struct {
	Criticos []MaterialResponse `json:"criticos"`
	Bajos    []MaterialResponse `json:"bajos"`
	Medios   []MaterialResponse `json:"medios"`
	Total    int                `json:"total"`
}
