package dto

type RepresentanteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2"`
	Cargo    *string `json:"cargo"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

type CrearProveedorRequest struct {
	RazonSocial string  `json:"razon_social" validate:"required,min=2,max=150"`
	Rut         string  `json:"rut"          validate:"required"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`

	Representantes []RepresentanteRequest `json:"representantes" validate:"omitempty,dive"`
}

type RepresentanteResponse struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre"`
	Cargo    *string `json:"cargo"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"`
}

type ProveedorResponse struct {
	ID          string  `json:"id"`
	RazonSocial string  `json:"razon_social"`
	Rut         string  `json:"rut"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"`
	Direccion   *string `json:"direccion"`
	Activo      bool    `json:"activo"`

	Representantes []RepresentanteResponse `json:"representantes,omitempty"`
}
