package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor represents a supplier with commercial data.
type Proveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"not null"`
	Rut         string    `gorm:"uniqueIndex;not null"`
	Telefono    *string
	Email       *string
	Direccion   *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Materiales      []Material      `gorm:"foreignKey:ProveedorID"`
	Representantes  []Representante `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }

// Representante stores one contact person for a Proveedor.
type Representante struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"not null"`
	Cargo       *string
	Telefono    *string
	Email       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Representante) TableName() string { return "representantes" }
