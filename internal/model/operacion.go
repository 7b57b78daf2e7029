package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una operación. Las transiciones aceptan cualquier estado de esta
// lista (el personal puede corregir errores); anulada exige gerente o superior.
const (
	EstadoCotizacion   = "cotizacion"
	EstadoOrdenTrabajo = "orden_trabajo"
	EstadoPendiente    = "pendiente"
	EstadoEnProceso    = "en_proceso"
	EstadoTerminada    = "terminada"
	EstadoCompletada   = "completada"
	EstadoEntregada    = "entregada"
	EstadoPagada       = "pagada"
	EstadoAnulada      = "anulada"
)

// EstadosOperacion is the transition allow-list, in workflow order.
var EstadosOperacion = []string{
	EstadoCotizacion, EstadoOrdenTrabajo, EstadoPendiente, EstadoEnProceso,
	EstadoTerminada, EstadoCompletada, EstadoEntregada, EstadoPagada, EstadoAnulada,
}

// EstadoValido reports membership in the allow-list.
func EstadoValido(estado string) bool {
	for _, e := range EstadosOperacion {
		if e == estado {
			return true
		}
	}
	return false
}

// Operacion is a customer order, from quote through payment/delivery.
// Rows are never physically deleted; voiding is a transition to anulada.
type Operacion struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado           string    `gorm:"type:varchar(20);not null;default:'cotizacion';index"`
	Descripcion      *string
	CostoOperacion   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CantidadAbono    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FechaPrimerAbono *time.Time
	FechaEntrega     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Cliente   *Usuario             `gorm:"foreignKey:ClienteID"`
	Items     []ProductoOperacion  `gorm:"foreignKey:OperacionID"`
	Historial []HistorialOperacion `gorm:"foreignKey:OperacionID"`
}

func (Operacion) TableName() string { return "operaciones" }

// SaldoPendiente is the remaining balance: costo - abono.
func (o *Operacion) SaldoPendiente() decimal.Decimal {
	return o.CostoOperacion.Sub(o.CantidadAbono)
}

// ProductoOperacion is one order line item. Product data is snapshotted at
// creation so later catalog edits do not rewrite past orders.
type ProductoOperacion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperacionID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null"`
	NombreProducto string    `gorm:"not null"`
	Cantidad       int       `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalLinea     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (ProductoOperacion) TableName() string { return "productos_operacion" }

// HistorialOperacion records one state transition of an Operacion.
// One row per successful transition, including the creation one.
type HistorialOperacion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperacionID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado         string    `gorm:"type:varchar(20);not null"`
	EstadoAnterior *string   `gorm:"type:varchar(20)"`
	ActorEmail     *string
	CreatedAt      time.Time
}

func (HistorialOperacion) TableName() string { return "historiales_operacion" }
