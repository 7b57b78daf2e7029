package dto

type CrearEncuestaRequest struct {
	OperacionID  string  `json:"operacion_id"  validate:"required,uuid"`
	NotaServicio int     `json:"nota_servicio" validate:"required,min=1,max=7"`
	NotaProducto int     `json:"nota_producto" validate:"required,min=1,max=7"`
	Comentario   *string `json:"comentario"    validate:"omitempty,max=1000"`
}

type EncuestaResponse struct {
	ID           string  `json:"id"`
	OperacionID  string  `json:"operacion_id"`
	NotaServicio int     `json:"nota_servicio"`
	NotaProducto int     `json:"nota_producto"`
	Comentario   *string `json:"comentario"`
	CreatedAt    string  `json:"created_at"`
}
