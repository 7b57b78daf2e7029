package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// At most one profile extension (Cliente XOR PersonaTienda) is populated
// per non-bloqueado user; the role decides which one applies.
type Usuario struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreCompleto string    `gorm:"not null"`
	Rut            string    `gorm:"uniqueIndex;not null"`
	Email          string    `gorm:"uniqueIndex;not null"`
	PasswordHash   string    `gorm:"not null"`
	Rol            Rol       `gorm:"type:varchar(20);not null;default:'usuario'"`
	Telefono       *string
	Activo         bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Cliente       *Cliente       `gorm:"foreignKey:UsuarioID"`
	PersonaTienda *PersonaTienda `gorm:"foreignKey:UsuarioID"`
}

func (Usuario) TableName() string { return "usuarios" }

// Cliente is the customer profile extension of a Usuario.
// Categoria drives the birthday discount tier: estandar | frecuente | premium.
type Cliente struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FechaNacimiento     *time.Time
	Whatsapp            *string
	Categoria           string `gorm:"not null;default:'estandar'"`
	ConsentimientoDatos bool   `gorm:"not null;default:false"`
	Direccion           *string
	ComunaID            *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
	Comuna  *Comuna  `gorm:"foreignKey:ComunaID"`
}

func (Cliente) TableName() string { return "clientes" }

// PersonaTienda is the staff profile extension of a Usuario.
type PersonaTienda struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Cargo            string    `gorm:"not null"`
	FechaContratacion *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (PersonaTienda) TableName() string { return "personas_tienda" }
