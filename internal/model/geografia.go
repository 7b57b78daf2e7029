package model

import (
	"github.com/google/uuid"
)

// Jerarquía geográfica fija de 4 niveles, sembrada una vez al arranque.
// Las filas son de solo lectura para la aplicación.

type Pais struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`

	Regiones []Region `gorm:"foreignKey:PaisID"`
}

func (Pais) TableName() string { return "paises" }

type Region struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaisID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre string    `gorm:"not null"`

	Provincias []Provincia `gorm:"foreignKey:RegionID"`
}

func (Region) TableName() string { return "regiones" }

type Provincia struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RegionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre   string    `gorm:"not null"`

	Comunas []Comuna `gorm:"foreignKey:ProvinciaID"`
}

func (Provincia) TableName() string { return "provincias" }

type Comuna struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProvinciaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"not null"`
}

func (Comuna) TableName() string { return "comunas" }
