package model

import (
	"time"

	"github.com/google/uuid"
)

// Severidad de un evento de auditoría.
const (
	SeveridadInfo     = "INFO"
	SeveridadWarning  = "WARNING"
	SeveridadError    = "ERROR"
	SeveridadCritical = "CRITICAL"
)

// Tipos de evento registrados por el servicio de auditoría.
const (
	EventoLogin          = "LOGIN"
	EventoLoginFallido   = "LOGIN_FALLIDO"
	EventoLogout         = "LOGOUT"
	EventoCreacion       = "CREACION"
	EventoActualizacion  = "ACTUALIZACION"
	EventoEliminacion    = "ELIMINACION"
	EventoCambioEstado   = "CAMBIO_ESTADO"
	EventoAnulacion      = "ANULACION"
	EventoAbono          = "ABONO"
	EventoAjusteStock    = "AJUSTE_STOCK"
	EventoEnvioCorreo    = "ENVIO_CORREO"
)

// AuditLog is an immutable append-only record. Rows are never updated or
// deleted after insert; there is deliberately no UpdatedAt column.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoEvento string    `gorm:"type:varchar(40);not null;index"`
	Severidad  string    `gorm:"type:varchar(10);not null;index;default:'INFO'"`
	ActorEmail *string   `gorm:"index"`
	IP         *string
	Entidad    *string `gorm:"index"`
	EntidadID  *string `gorm:"index"`
	Before     *string `gorm:"type:jsonb"`
	After      *string `gorm:"type:jsonb"`
	Exito      bool    `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"index"`
}

func (AuditLog) TableName() string { return "audit_logs" }
