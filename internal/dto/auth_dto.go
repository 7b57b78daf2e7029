package dto

// LoginRequest is bound from POST /api/auth/verify.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresIn int             `json:"expires_in"`
	Usuario   UsuarioResponse `json:"usuario"`
}

// RegistroRequest is bound from POST /api/auth/create.
// Self-registered accounts always start with rol usuario.
type RegistroRequest struct {
	NombreCompleto string `json:"nombre_completo" validate:"required,min=3,max=120"`
	Rut            string `json:"rut"             validate:"required"`
	Email          string `json:"email"           validate:"required,email"`
	Password       string `json:"password"        validate:"required,min=8,max=72"`
	Telefono       *string `json:"telefono"       validate:"omitempty,min=8"`
}
