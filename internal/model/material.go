package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Niveles de alerta de stock, derivados de existencia vs stock mínimo.
const (
	AlertaCritico = "critico"
	AlertaBajo    = "bajo"
	AlertaMedio   = "medio"
	AlertaNormal  = "normal"
)

// Material is a raw-good inventory item consumed in fabrication.
type Material struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreMaterial     string    `gorm:"index;not null"`
	Descripcion        *string
	ExistenciaMaterial int             `gorm:"not null;default:0"`
	StockMinimo        int             `gorm:"not null;default:5"`
	UnidadMedida       string          `gorm:"not null;default:'unidad'"`
	CostoUnitario      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ProveedorID        *uuid.UUID      `gorm:"type:uuid;index"`
	Activo             bool            `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Material) TableName() string { return "materiales" }
