package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EmailEnqueuer pushes a stored email onto the delivery queue. Implemented by
// the worker dispatcher; a stub suffices in tests.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, correoID uuid.UUID) error
}

var ErrCorreoNoEncontrado = errors.New("correo no encontrado")

// ErrCorreoNoReintentable rejects retrying emails that are not in fallido.
var ErrCorreoNoReintentable = errors.New("solo un correo fallido admite reintento")

type PostventaService interface {
	// Enviar stores the email as pendiente and queues it for async delivery.
	Enviar(ctx context.Context, req dto.EnviarCorreoRequest, actor Actor) (*dto.CorreoResponse, error)
	// EnviarPostventa builds and queues the standard follow-up email for a
	// delivered order.
	EnviarPostventa(ctx context.Context, operacionID string, actor Actor) (*dto.CorreoResponse, error)
	Historial(ctx context.Context, filter dto.CorreoFilter) (*dto.CorreoListResponse, error)
	Estadisticas(ctx context.Context) (*dto.EstadisticasCorreoResponse, error)
	Reintentar(ctx context.Context, correoID string, actor Actor) (*dto.CorreoResponse, error)
}

type postventaService struct {
	repo        repository.CorreoRepository
	operaciones repository.OperacionRepository
	usuarios    repository.UsuarioRepository
	queue       EmailEnqueuer
	audit       AuditService
}

func NewPostventaService(
	repo repository.CorreoRepository,
	operaciones repository.OperacionRepository,
	usuarios repository.UsuarioRepository,
	queue EmailEnqueuer,
	audit AuditService,
) PostventaService {
	return &postventaService{repo: repo, operaciones: operaciones, usuarios: usuarios, queue: queue, audit: audit}
}

func (s *postventaService) Enviar(ctx context.Context, req dto.EnviarCorreoRequest, actor Actor) (*dto.CorreoResponse, error) {
	correo := &model.Correo{
		DestinatarioEmail: req.Destinatario,
		Asunto:            req.Asunto,
		Cuerpo:            req.Cuerpo,
		TipoCorreo:        model.CorreoManual,
		EstadoEnvio:       model.EnvioPendiente,
	}
	if req.OperacionID != nil && *req.OperacionID != "" {
		operacionID, err := uuid.Parse(*req.OperacionID)
		if err != nil {
			return nil, ErrOperacionNoEncontrada
		}
		correo.OperacionID = &operacionID
		correo.TipoCorreo = model.CorreoPostventa
	}

	return s.guardarYEncolar(ctx, correo, actor)
}

func (s *postventaService) EnviarPostventa(ctx context.Context, operacionID string, actor Actor) (*dto.CorreoResponse, error) {
	oid, err := uuid.Parse(operacionID)
	if err != nil {
		return nil, ErrOperacionNoEncontrada
	}
	operacion, err := s.operaciones.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperacionNoEncontrada
		}
		return nil, err
	}
	if operacion.Estado != model.EstadoEntregada && operacion.Estado != model.EstadoPagada {
		return nil, ErrOperacionNoEntregada
	}
	cliente, err := s.usuarios.FindByID(ctx, operacion.ClienteID)
	if err != nil {
		return nil, err
	}

	correo := &model.Correo{
		OperacionID:       &operacion.ID,
		DestinatarioEmail: cliente.Email,
		Asunto:            "¡Gracias por su compra en Mueblería Cataldo!",
		Cuerpo:            cuerpoPostventa(cliente.NombreCompleto, operacion.ID.String()),
		TipoCorreo:        model.CorreoPostventa,
		EstadoEnvio:       model.EnvioPendiente,
	}
	return s.guardarYEncolar(ctx, correo, actor)
}

func (s *postventaService) guardarYEncolar(ctx context.Context, correo *model.Correo, actor Actor) (*dto.CorreoResponse, error) {
	if err := s.repo.Create(ctx, correo); err != nil {
		return nil, err
	}

	// Queue failure leaves the row pendiente; the retry cron picks it up.
	if err := s.queue.EnqueueEmail(ctx, correo.ID); err != nil {
		log.Error().Err(err).Str("correo_id", correo.ID.String()).Msg("postventa: enqueue failed")
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoEnvioCorreo,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "correo",
		EntidadID:  correo.ID.String(),
		After: map[string]string{
			"destinatario": correo.DestinatarioEmail,
			"tipo":         correo.TipoCorreo,
		},
		Exito: true,
	})

	resp := correoToResponse(correo)
	return &resp, nil
}

func (s *postventaService) Historial(ctx context.Context, filter dto.CorreoFilter) (*dto.CorreoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	correos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CorreoResponse, 0, len(correos))
	for i := range correos {
		data = append(data, correoToResponse(&correos[i]))
	}
	return &dto.CorreoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *postventaService) Estadisticas(ctx context.Context) (*dto.EstadisticasCorreoResponse, error) {
	total, enviados, fallidos, pendientes, err := s.repo.Estadisticas(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.EstadisticasCorreoResponse{
		Total:      total,
		Enviados:   enviados,
		Fallidos:   fallidos,
		Pendientes: pendientes,
	}, nil
}

func (s *postventaService) Reintentar(ctx context.Context, correoID string, actor Actor) (*dto.CorreoResponse, error) {
	cid, err := uuid.Parse(correoID)
	if err != nil {
		return nil, ErrCorreoNoEncontrado
	}
	correo, err := s.repo.FindByID(ctx, cid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCorreoNoEncontrado
		}
		return nil, err
	}
	if correo.EstadoEnvio != model.EnvioFallido {
		return nil, ErrCorreoNoReintentable
	}

	correo.EstadoEnvio = model.EnvioPendiente
	correo.ErrorMensaje = nil
	if err := s.repo.Update(ctx, correo); err != nil {
		return nil, err
	}
	if err := s.queue.EnqueueEmail(ctx, correo.ID); err != nil {
		log.Error().Err(err).Str("correo_id", correo.ID.String()).Msg("postventa: re-enqueue failed")
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoEnvioCorreo,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "correo",
		EntidadID:  correo.ID.String(),
		After:      map[string]string{"accion": "reintento_manual"},
		Exito:      true,
	})

	resp := correoToResponse(correo)
	return &resp, nil
}

func cuerpoPostventa(nombre, operacionID string) string {
	return fmt.Sprintf(
		"Estimado/a %s:\n\n"+
			"Gracias por preferir Mueblería Cataldo. Su pedido %s ya fue entregado.\n"+
			"Nos encantaría conocer su opinión: responda nuestra breve encuesta de satisfacción.\n\n"+
			"Saludos cordiales,\nMueblería Cataldo",
		nombre, operacionID)
}

func correoToResponse(c *model.Correo) dto.CorreoResponse {
	resp := dto.CorreoResponse{
		ID:           c.ID.String(),
		Destinatario: c.DestinatarioEmail,
		Asunto:       c.Asunto,
		TipoCorreo:   c.TipoCorreo,
		EstadoEnvio:  c.EstadoEnvio,
		ErrorMensaje: c.ErrorMensaje,
		Intentos:     c.Intentos,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
	if c.OperacionID != nil {
		s := c.OperacionID.String()
		resp.OperacionID = &s
	}
	if c.EnviadoAt != nil {
		s := c.EnviadoAt.Format(time.RFC3339)
		resp.EnviadoAt = &s
	}
	return resp
}
