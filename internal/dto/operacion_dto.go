package dto

import "github.com/shopspring/decimal"

type ItemOperacionRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type CrearOperacionRequest struct {
	ClienteID   string                 `json:"cliente_id"  validate:"required,uuid"`
	Descripcion *string                `json:"descripcion"`
	Items       []ItemOperacionRequest `json:"items"       validate:"required,min=1,dive"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

type AnularOperacionRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type RegistrarAbonoRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required"`
}

type ItemOperacionResponse struct {
	ProductoID     string          `json:"producto_id"`
	NombreProducto string          `json:"nombre_producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	TotalLinea     decimal.Decimal `json:"total_linea"`
}

type HistorialResponse struct {
	Estado         string  `json:"estado"`
	EstadoAnterior *string `json:"estado_anterior"`
	ActorEmail     *string `json:"actor_email"`
	CreatedAt      string  `json:"created_at"`
}

type OperacionResponse struct {
	ID               string                  `json:"id"`
	ClienteID        string                  `json:"cliente_id"`
	ClienteNombre    string                  `json:"cliente_nombre,omitempty"`
	Estado           string                  `json:"estado"`
	Descripcion      *string                 `json:"descripcion"`
	CostoOperacion   decimal.Decimal         `json:"costo_operacion"`
	CantidadAbono    decimal.Decimal         `json:"cantidad_abono"`
	SaldoPendiente   decimal.Decimal         `json:"saldo_pendiente"`
	FechaPrimerAbono *string                 `json:"fecha_primer_abono"`
	Items            []ItemOperacionResponse `json:"items"`
	Historial        []HistorialResponse     `json:"historial,omitempty"`
	CreatedAt        string                  `json:"created_at"`
}

// OperacionFilter is bound from the query string of GET /api/operaciones.
type OperacionFilter struct {
	Estado    string `form:"estado"` // empty = all
	ClienteID string `form:"cliente_id"`
	Desde     string `form:"desde"` // YYYY-MM-DD
	Hasta     string `form:"hasta"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type OperacionListResponse struct {
	Data  []OperacionResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
