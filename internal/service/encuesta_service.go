package service

import (
	"context"
	"errors"
	"time"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEncuestaDuplicada    = errors.New("la operación ya tiene una encuesta registrada")
	ErrEncuestaNoEncontrada = errors.New("encuesta no encontrada")
	ErrOperacionNoEntregada = errors.New("solo una operación entregada admite encuesta")
)

type EncuestaService interface {
	Crear(ctx context.Context, req dto.CrearEncuestaRequest, actor Actor) (*dto.EncuestaResponse, error)
	ObtenerPorOperacion(ctx context.Context, operacionID string, actor Actor) (*dto.EncuestaResponse, error)
	Listar(ctx context.Context) ([]dto.EncuestaResponse, error)
	Satisfaccion(ctx context.Context) (*dto.SatisfaccionResponse, error)
}

type encuestaService struct {
	repo        repository.EncuestaRepository
	operaciones repository.OperacionRepository
	audit       AuditService
}

func NewEncuestaService(repo repository.EncuestaRepository, operaciones repository.OperacionRepository, audit AuditService) EncuestaService {
	return &encuestaService{repo: repo, operaciones: operaciones, audit: audit}
}

func (s *encuestaService) Crear(ctx context.Context, req dto.CrearEncuestaRequest, actor Actor) (*dto.EncuestaResponse, error) {
	operacionID, err := uuid.Parse(req.OperacionID)
	if err != nil {
		return nil, ErrOperacionNoEncontrada
	}
	operacion, err := s.operaciones.FindByID(ctx, operacionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperacionNoEncontrada
		}
		return nil, err
	}
	if operacion.Estado != model.EstadoEntregada {
		return nil, ErrOperacionNoEntregada
	}
	// Only the owning customer rates the order; staff never submits surveys
	// on a customer's behalf, so anyone below trabajador_tienda must own it.
	if !actor.Rol.AtLeast(model.RolTrabajadorTienda) && operacion.ClienteID.String() != actor.UserID {
		return nil, ErrSinAccesoOperacion
	}

	if _, err := s.repo.FindByOperacionID(ctx, operacionID); err == nil {
		return nil, ErrEncuestaDuplicada
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	encuesta := &model.Encuesta{
		OperacionID:  operacionID,
		NotaServicio: req.NotaServicio,
		NotaProducto: req.NotaProducto,
		Comentario:   req.Comentario,
	}
	if err := s.repo.Create(ctx, encuesta); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoCreacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "encuesta",
		EntidadID:  encuesta.ID.String(),
		After:      map[string]int{"nota_servicio": req.NotaServicio, "nota_producto": req.NotaProducto},
		Exito:      true,
	})

	resp := encuestaToResponse(encuesta)
	return &resp, nil
}

func (s *encuestaService) ObtenerPorOperacion(ctx context.Context, operacionID string, actor Actor) (*dto.EncuestaResponse, error) {
	oid, err := uuid.Parse(operacionID)
	if err != nil {
		return nil, ErrOperacionNoEncontrada
	}
	// Same ownership rule as reading the order itself.
	if !actor.Rol.AtLeast(model.RolTrabajadorTienda) {
		operacion, err := s.operaciones.FindByID(ctx, oid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOperacionNoEncontrada
			}
			return nil, err
		}
		if operacion.ClienteID.String() != actor.UserID {
			return nil, ErrSinAccesoOperacion
		}
	}
	encuesta, err := s.repo.FindByOperacionID(ctx, oid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEncuestaNoEncontrada
		}
		return nil, err
	}
	resp := encuestaToResponse(encuesta)
	return &resp, nil
}

func (s *encuestaService) Listar(ctx context.Context) ([]dto.EncuestaResponse, error) {
	encuestas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EncuestaResponse, 0, len(encuestas))
	for i := range encuestas {
		resp = append(resp, encuestaToResponse(&encuestas[i]))
	}
	return resp, nil
}

func (s *encuestaService) Satisfaccion(ctx context.Context) (*dto.SatisfaccionResponse, error) {
	total, promServicio, promProducto, err := s.repo.Promedios(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SatisfaccionResponse{
		TotalEncuestas:   total,
		PromedioServicio: promServicio,
		PromedioProducto: promProducto,
	}, nil
}

func encuestaToResponse(e *model.Encuesta) dto.EncuestaResponse {
	return dto.EncuestaResponse{
		ID:           e.ID.String(),
		OperacionID:  e.OperacionID.String(),
		NotaServicio: e.NotaServicio,
		NotaProducto: e.NotaProducto,
		Comentario:   e.Comentario,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}
