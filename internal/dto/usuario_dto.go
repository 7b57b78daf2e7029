package dto

// ClienteProfile carries the customer extension fields.
type ClienteProfile struct {
	FechaNacimiento     *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Whatsapp            *string `json:"whatsapp"`
	Categoria           string  `json:"categoria"        validate:"omitempty,oneof=estandar frecuente premium"`
	ConsentimientoDatos bool    `json:"consentimiento_datos"`
	Direccion           *string `json:"direccion"`
	ComunaID            *string `json:"comuna_id"        validate:"omitempty,uuid"`
}

// PersonaTiendaProfile carries the staff extension fields.
type PersonaTiendaProfile struct {
	Cargo             string  `json:"cargo"              validate:"required,min=2"`
	FechaContratacion *string `json:"fecha_contratacion" validate:"omitempty,datetime=2006-01-02"`
}

// CrearUsuarioRequest is the admin-side user creation. Exactly one profile
// block may accompany the user, matching the role.
type CrearUsuarioRequest struct {
	NombreCompleto string  `json:"nombre_completo" validate:"required,min=3,max=120"`
	Rut            string  `json:"rut"             validate:"required"`
	Email          string  `json:"email"           validate:"required,email"`
	Password       string  `json:"password"        validate:"required,min=8,max=72"`
	Rol            string  `json:"rol"             validate:"required,oneof=usuario cliente trabajador_tienda gerente administrador"`
	Telefono       *string `json:"telefono"`

	Cliente       *ClienteProfile       `json:"cliente"        validate:"omitempty"`
	PersonaTienda *PersonaTiendaProfile `json:"persona_tienda" validate:"omitempty"`
}

type ActualizarUsuarioRequest struct {
	NombreCompleto string  `json:"nombre_completo" validate:"omitempty,min=3,max=120"`
	Email          string  `json:"email"           validate:"omitempty,email"`
	Password       string  `json:"password"        validate:"omitempty,min=8,max=72"`
	Rol            string  `json:"rol"             validate:"omitempty,oneof=usuario cliente trabajador_tienda gerente administrador bloqueado"`
	Telefono       *string `json:"telefono"`

	Cliente       *ClienteProfile       `json:"cliente"        validate:"omitempty"`
	PersonaTienda *PersonaTiendaProfile `json:"persona_tienda" validate:"omitempty"`
}

type ClienteResponse struct {
	FechaNacimiento     *string `json:"fecha_nacimiento"`
	Whatsapp            *string `json:"whatsapp"`
	Categoria           string  `json:"categoria"`
	ConsentimientoDatos bool    `json:"consentimiento_datos"`
	Direccion           *string `json:"direccion"`
	ComunaID            *string `json:"comuna_id"`
}

type PersonaTiendaResponse struct {
	Cargo             string  `json:"cargo"`
	FechaContratacion *string `json:"fecha_contratacion"`
}

// UsuarioResponse never carries the password hash.
type UsuarioResponse struct {
	ID             string  `json:"id"`
	NombreCompleto string  `json:"nombre_completo"`
	Rut            string  `json:"rut"`
	Email          string  `json:"email"`
	Rol            string  `json:"rol"`
	Telefono       *string `json:"telefono"`
	Activo         bool    `json:"activo"`
	CreatedAt      string  `json:"created_at"`

	Cliente       *ClienteResponse       `json:"cliente,omitempty"`
	PersonaTienda *PersonaTiendaResponse `json:"persona_tienda,omitempty"`
}

// UsuarioFilter is bound from the query string of GET /api/admin/users.
type UsuarioFilter struct {
	Rol    string `form:"rol"`
	Activo string `form:"activo"` // "false" | "all" | default activos
	Email  string `form:"email"`
	Rut    string `form:"rut"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type UsuarioListResponse struct {
	Data  []UsuarioResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
