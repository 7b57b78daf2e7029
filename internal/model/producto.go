package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto represents a catalog item or a service (EsServicio=true).
// PrecioVenta is derived from the itemized costs plus the margin.
type Producto struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"index;not null"`
	Descripcion     *string
	EsServicio      bool            `gorm:"not null;default:false"`
	CostoMateriales decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoManoObra   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MargenPct       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	PrecioVenta     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoTercerosID *uuid.UUID      `gorm:"type:uuid;index"`
	Activo          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	CostoTerceros *CostoTerceros    `gorm:"foreignKey:CostoTercerosID"`
	Materiales    []ProductoMaterial `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }

// CostoTerceros is a period overhead record (outsourced work, freight)
// optionally shared by several products.
type CostoTerceros struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descripcion string    `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaInicio *time.Time
	FechaFin    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CostoTerceros) TableName() string { return "costos_terceros" }

// ProductoMaterial links a product to the raw materials it consumes.
// A material referenced here cannot be hard-deleted.
type ProductoMaterial struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_material"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_material"`
	Cantidad   int       `gorm:"not null;default:1"`
	CreatedAt  time.Time

	Material *Material `gorm:"foreignKey:MaterialID"`
}

func (ProductoMaterial) TableName() string { return "productos_materiales" }
