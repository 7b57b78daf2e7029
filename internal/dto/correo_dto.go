package dto

// EnviarCorreoRequest is bound from POST /api/postventa/enviar.
type EnviarCorreoRequest struct {
	OperacionID  *string `json:"operacion_id" validate:"omitempty,uuid"`
	Destinatario string  `json:"destinatario" validate:"required,email"`
	Asunto       string  `json:"asunto"       validate:"required,min=3,max=200"`
	Cuerpo       string  `json:"cuerpo"       validate:"required,min=1"`
}

type CorreoResponse struct {
	ID           string  `json:"id"`
	OperacionID  *string `json:"operacion_id"`
	Destinatario string  `json:"destinatario"`
	Asunto       string  `json:"asunto"`
	TipoCorreo   string  `json:"tipo_correo"`
	EstadoEnvio  string  `json:"estado_envio"`
	ErrorMensaje *string `json:"error_mensaje"`
	Intentos     int     `json:"intentos"`
	EnviadoAt    *string `json:"enviado_at"`
	CreatedAt    string  `json:"created_at"`
}

type CorreoFilter struct {
	Estado string `form:"estado"` // pendiente | enviado | fallido | empty = all
	Tipo   string `form:"tipo"`
	Email  string `form:"email"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CorreoListResponse struct {
	Data  []CorreoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type EstadisticasCorreoResponse struct {
	Total      int64 `json:"total"`
	Enviados   int64 `json:"enviados"`
	Fallidos   int64 `json:"fallidos"`
	Pendientes int64 `json:"pendientes"`
}

// ─── Cumpleaños ──────────────────────────────────────────────────────────────

type DetalleEnvioCumpleanos struct {
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Estado string `json:"estado"` // enviado | fallido
	Error  string `json:"error,omitempty"`
}

// ResultadoCumpleanos aggregates one run of the birthday job.
type ResultadoCumpleanos struct {
	Enviados int                      `json:"enviados"`
	Fallidos int                      `json:"fallidos"`
	Detalles []DetalleEnvioCumpleanos `json:"detalles"`
}

type CumpleanosClienteResponse struct {
	UsuarioID       string `json:"usuario_id"`
	Nombre          string `json:"nombre"`
	Email           string `json:"email"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Edad            int    `json:"edad"`
	Categoria       string `json:"categoria"`
	Consentimiento  bool   `json:"consentimiento"`
}
