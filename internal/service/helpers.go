package service

import (
	"errors"
	"fmt"
	"time"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"gorm.io/gorm"
)

// ErrDatosInvalidos marks request-level validation failures detected past
// the binding layer; handlers map it to 400.
var ErrDatosInvalidos = errors.New("datos inválidos")

func errDatos(msg string) error {
	return fmt.Errorf("%w: %s", ErrDatosInvalidos, msg)
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.Transaction(fn)
}

func fechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func parseFechaPtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	resp := dto.UsuarioResponse{
		ID:             u.ID.String(),
		NombreCompleto: u.NombreCompleto,
		Rut:            u.Rut,
		Email:          u.Email,
		Rol:            string(u.Rol),
		Telefono:       u.Telefono,
		Activo:         u.Activo,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
	if u.Cliente != nil {
		var comunaID *string
		if u.Cliente.ComunaID != nil {
			s := u.Cliente.ComunaID.String()
			comunaID = &s
		}
		resp.Cliente = &dto.ClienteResponse{
			FechaNacimiento:     fechaPtr(u.Cliente.FechaNacimiento),
			Whatsapp:            u.Cliente.Whatsapp,
			Categoria:           u.Cliente.Categoria,
			ConsentimientoDatos: u.Cliente.ConsentimientoDatos,
			Direccion:           u.Cliente.Direccion,
			ComunaID:            comunaID,
		}
	}
	if u.PersonaTienda != nil {
		resp.PersonaTienda = &dto.PersonaTiendaResponse{
			Cargo:             u.PersonaTienda.Cargo,
			FechaContratacion: fechaPtr(u.PersonaTienda.FechaContratacion),
		}
	}
	return resp
}
