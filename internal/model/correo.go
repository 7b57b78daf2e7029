package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de envío de un correo.
const (
	EnvioPendiente = "pendiente"
	EnvioEnviado   = "enviado"
	EnvioFallido   = "fallido"
)

// Tipos de correo saliente.
const (
	CorreoPostventa  = "postventa"
	CorreoCumpleanos = "cumpleanos"
	CorreoManual     = "manual"
)

// Correo registra cada intento de envío de correo saliente.
// Un envío fallido queda con estado 'fallido' y el error, habilitando el
// reintento manual o del cron — nunca se propaga como fallo duro.
type Correo struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperacionID       *uuid.UUID `gorm:"type:uuid;index"`
	DestinatarioEmail string     `gorm:"not null;index"`
	Asunto            string     `gorm:"not null"`
	Cuerpo            string     `gorm:"type:text;not null"`
	TipoCorreo        string     `gorm:"type:varchar(20);not null;index"`
	EstadoEnvio       string     `gorm:"type:varchar(10);not null;default:'pendiente';index"`
	ErrorMensaje      *string
	Intentos          int `gorm:"not null;default:0"`
	EnviadoAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Correo) TableName() string { return "correos" }

// Encuesta is the post-delivery satisfaction survey: exactly one per
// Operacion, creatable only once the order is entregada.
type Encuesta struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperacionID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	NotaServicio int       `gorm:"not null"` // 1-7
	NotaProducto int       `gorm:"not null"` // 1-7
	Comentario   *string   `gorm:"type:text"`
	CreatedAt    time.Time

	Operacion *Operacion `gorm:"foreignKey:OperacionID"`
}

func (Encuesta) TableName() string { return "encuestas" }
