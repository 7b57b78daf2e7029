package service

import (
	"context"
	"fmt"
	"time"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/rs/zerolog/log"
)

// Mailer sends one email synchronously. The SMTP client implements it; tests
// substitute a recorder.
type Mailer interface {
	Enviar(to, asunto, cuerpo string) error
}

// Descuentos de cumpleaños por categoría de cliente.
var descuentoPorCategoria = map[string]int{
	"premium":   15,
	"frecuente": 10,
	"estandar":  5,
}

type CumpleanosService interface {
	// ClientesHoy lists active customers with data-use consent whose
	// birthday falls on today's date in the business timezone.
	ClientesHoy(ctx context.Context) ([]dto.CumpleanosClienteResponse, error)
	// ClientesProximos lists birthdays in the next N days, consent or not
	// (staff planning view; no email goes out from here).
	ClientesProximos(ctx context.Context, dias int) ([]dto.CumpleanosClienteResponse, error)
	// EnviarSaludos sends greetings to every eligible customer. A failed
	// send never aborts the run; each customer's outcome is reported.
	EnviarSaludos(ctx context.Context) (*dto.ResultadoCumpleanos, error)
}

type cumpleanosService struct {
	usuarios repository.UsuarioRepository
	correos  repository.CorreoRepository
	mailer   Mailer
	audit    AuditService
	loc      *time.Location
}

func NewCumpleanosService(
	usuarios repository.UsuarioRepository,
	correos repository.CorreoRepository,
	mailer Mailer,
	audit AuditService,
	tz string,
) CumpleanosService {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn().Str("tz", tz).Msg("cumpleanos: unknown timezone, falling back to UTC")
		loc = time.UTC
	}
	return &cumpleanosService{usuarios: usuarios, correos: correos, mailer: mailer, audit: audit, loc: loc}
}

func (s *cumpleanosService) ClientesHoy(ctx context.Context) ([]dto.CumpleanosClienteResponse, error) {
	hoy := time.Now().In(s.loc)
	usuarios, err := s.usuarios.ListClientesCumpleanos(ctx, int(hoy.Month()), hoy.Day())
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CumpleanosClienteResponse, 0, len(usuarios))
	for i := range usuarios {
		u := &usuarios[i]
		if u.Cliente == nil || !u.Cliente.ConsentimientoDatos {
			continue
		}
		resp = append(resp, s.clienteCumpleanos(u, hoy))
	}
	return resp, nil
}

func (s *cumpleanosService) ClientesProximos(ctx context.Context, dias int) ([]dto.CumpleanosClienteResponse, error) {
	if dias < 1 {
		dias = 7
	}
	usuarios, err := s.usuarios.ListClientesCumpleanosRango(ctx, dias)
	if err != nil {
		return nil, err
	}
	hoy := time.Now().In(s.loc)
	resp := make([]dto.CumpleanosClienteResponse, 0, len(usuarios))
	for i := range usuarios {
		if usuarios[i].Cliente == nil {
			continue
		}
		resp = append(resp, s.clienteCumpleanos(&usuarios[i], hoy))
	}
	return resp, nil
}

func (s *cumpleanosService) EnviarSaludos(ctx context.Context) (*dto.ResultadoCumpleanos, error) {
	hoy := time.Now().In(s.loc)
	usuarios, err := s.usuarios.ListClientesCumpleanos(ctx, int(hoy.Month()), hoy.Day())
	if err != nil {
		return nil, err
	}

	resultado := &dto.ResultadoCumpleanos{Detalles: []dto.DetalleEnvioCumpleanos{}}
	for i := range usuarios {
		u := &usuarios[i]
		if u.Cliente == nil || !u.Cliente.ConsentimientoDatos {
			continue
		}

		asunto := fmt.Sprintf("¡Feliz cumpleaños, %s!", u.NombreCompleto)
		cuerpo := s.cuerpoSaludo(u, hoy)

		detalle := dto.DetalleEnvioCumpleanos{Email: u.Email, Nombre: u.NombreCompleto}
		correo := &model.Correo{
			DestinatarioEmail: u.Email,
			Asunto:            asunto,
			Cuerpo:            cuerpo,
			TipoCorreo:        model.CorreoCumpleanos,
			Intentos:          1,
		}

		if err := s.mailer.Enviar(u.Email, asunto, cuerpo); err != nil {
			msg := err.Error()
			correo.EstadoEnvio = model.EnvioFallido
			correo.ErrorMensaje = &msg
			detalle.Estado = model.EnvioFallido
			detalle.Error = msg
			resultado.Fallidos++
		} else {
			now := time.Now()
			correo.EstadoEnvio = model.EnvioEnviado
			correo.EnviadoAt = &now
			detalle.Estado = model.EnvioEnviado
			resultado.Enviados++
		}
		resultado.Detalles = append(resultado.Detalles, detalle)

		if err := s.correos.Create(ctx, correo); err != nil {
			log.Error().Err(err).Str("email", u.Email).Msg("cumpleanos: failed to record email")
		}
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoEnvioCorreo,
		ActorEmail: "sistema",
		Entidad:    "cumpleanos",
		After: map[string]int{
			"enviados": resultado.Enviados,
			"fallidos": resultado.Fallidos,
		},
		Exito: resultado.Fallidos == 0,
	})

	return resultado, nil
}

func (s *cumpleanosService) clienteCumpleanos(u *model.Usuario, hoy time.Time) dto.CumpleanosClienteResponse {
	resp := dto.CumpleanosClienteResponse{
		UsuarioID:      u.ID.String(),
		Nombre:         u.NombreCompleto,
		Email:          u.Email,
		Categoria:      u.Cliente.Categoria,
		Consentimiento: u.Cliente.ConsentimientoDatos,
	}
	if u.Cliente.FechaNacimiento != nil {
		resp.FechaNacimiento = u.Cliente.FechaNacimiento.Format("2006-01-02")
		resp.Edad = edad(*u.Cliente.FechaNacimiento, hoy)
	}
	return resp
}

func (s *cumpleanosService) cuerpoSaludo(u *model.Usuario, hoy time.Time) string {
	descuento := descuentoPorCategoria[u.Cliente.Categoria]
	if descuento == 0 {
		descuento = descuentoPorCategoria["estandar"]
	}
	anos := ""
	if u.Cliente.FechaNacimiento != nil {
		anos = fmt.Sprintf(" en sus %d años", edad(*u.Cliente.FechaNacimiento, hoy))
	}
	return fmt.Sprintf(
		"Estimado/a %s:\n\n"+
			"Todo el equipo de Mueblería Cataldo le desea un muy feliz cumpleaños%s.\n"+
			"Como regalo, tiene un %d%% de descuento en su próxima compra durante este mes.\n\n"+
			"Saludos cordiales,\nMueblería Cataldo",
		u.NombreCompleto, anos, descuento)
}

// edad computes completed years at the reference date.
func edad(nacimiento, ref time.Time) int {
	anos := ref.Year() - nacimiento.Year()
	cumpleEste := time.Date(ref.Year(), nacimiento.Month(), nacimiento.Day(), 0, 0, 0, 0, ref.Location())
	if ref.Before(cumpleEste) {
		anos--
	}
	return anos
}
