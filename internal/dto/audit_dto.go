package dto

// AuditFilter is bound from the query string of the audit read endpoints.
type AuditFilter struct {
	TipoEvento string `form:"tipo_evento"`
	Severidad  string `form:"severidad"`
	Entidad    string `form:"entidad"`
	ActorEmail string `form:"actor_email"`
	Exito      string `form:"exito"` // "true" | "false" | empty = all
	Desde      string `form:"desde"` // YYYY-MM-DD
	Hasta      string `form:"hasta"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// AuditLogResponse never embeds user records, so no password can leak.
type AuditLogResponse struct {
	ID         string  `json:"id"`
	TipoEvento string  `json:"tipo_evento"`
	Severidad  string  `json:"severidad"`
	ActorEmail *string `json:"actor_email"`
	IP         *string `json:"ip"`
	Entidad    *string `json:"entidad"`
	EntidadID  *string `json:"entidad_id"`
	Before     *string `json:"before"`
	After      *string `json:"after"`
	Exito      bool    `json:"exito"`
	CreatedAt  string  `json:"created_at"`
}

type AuditListResponse struct {
	Data  []AuditLogResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
