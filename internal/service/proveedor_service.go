package service

import (
	"context"
	"errors"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"
	"cataldo/internal/rut"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProveedorNoEncontrado = errors.New("proveedor no encontrado")
	ErrProveedorRutEnUso     = errors.New("ya existe un proveedor con ese RUT")
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest, actor Actor) (*dto.ProveedorResponse, error)
	Obtener(ctx context.Context, id string) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id string, req dto.CrearProveedorRequest, actor Actor) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id string, actor Actor) error
}

type proveedorService struct {
	repo  repository.ProveedorRepository
	audit AuditService
}

func NewProveedorService(repo repository.ProveedorRepository, audit AuditService) ProveedorService {
	return &proveedorService{repo: repo, audit: audit}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest, actor Actor) (*dto.ProveedorResponse, error) {
	if err := rut.Validar(req.Rut); err != nil {
		return nil, err
	}
	rutNorm := rut.Normalizar(req.Rut)

	if _, err := s.repo.FindByRut(ctx, rutNorm); err == nil {
		return nil, ErrProveedorRutEnUso
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	proveedor := &model.Proveedor{
		RazonSocial:    req.RazonSocial,
		Rut:            rutNorm,
		Telefono:       req.Telefono,
		Email:          req.Email,
		Direccion:      req.Direccion,
		Activo:         true,
		Representantes: buildRepresentantes(req.Representantes),
	}

	if err := s.repo.Create(ctx, proveedor); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoCreacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "proveedor",
		EntidadID:  proveedor.ID.String(),
		After:      map[string]string{"razon_social": proveedor.RazonSocial, "rut": proveedor.Rut},
		Exito:      true,
	})

	resp := proveedorToResponse(proveedor)
	return &resp, nil
}

func (s *proveedorService) Obtener(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	proveedor, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := proveedorToResponse(proveedor)
	return &resp, nil
}

func (s *proveedorService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		resp = append(resp, proveedorToResponse(&proveedores[i]))
	}
	return resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id string, req dto.CrearProveedorRequest, actor Actor) (*dto.ProveedorResponse, error) {
	proveedor, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rut.Validar(req.Rut); err != nil {
		return nil, err
	}
	rutNorm := rut.Normalizar(req.Rut)
	if rutNorm != proveedor.Rut {
		if _, err := s.repo.FindByRut(ctx, rutNorm); err == nil {
			return nil, ErrProveedorRutEnUso
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	proveedor.RazonSocial = req.RazonSocial
	proveedor.Rut = rutNorm
	proveedor.Telefono = req.Telefono
	proveedor.Email = req.Email
	proveedor.Direccion = req.Direccion
	// Avoid Save cascading stale association rows; contacts are replaced below.
	proveedor.Representantes = nil

	if err := s.repo.Update(ctx, proveedor); err != nil {
		return nil, err
	}

	reps := buildRepresentantes(req.Representantes)
	if err := s.repo.ReplaceRepresentantes(ctx, proveedor.ID, reps); err != nil {
		return nil, err
	}
	proveedor.Representantes = reps

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoActualizacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "proveedor",
		EntidadID:  proveedor.ID.String(),
		After:      map[string]string{"razon_social": proveedor.RazonSocial},
		Exito:      true,
	})

	resp := proveedorToResponse(proveedor)
	return &resp, nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id string, actor Actor) error {
	proveedor, err := s.cargar(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, proveedor.ID); err != nil {
		return err
	}
	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoEliminacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "proveedor",
		EntidadID:  proveedor.ID.String(),
		Before:     map[string]string{"activo": "true"},
		After:      map[string]string{"activo": "false"},
		Exito:      true,
	})
	return nil
}

func (s *proveedorService) cargar(ctx context.Context, id string) (*model.Proveedor, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProveedorNoEncontrado
	}
	proveedor, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProveedorNoEncontrado
		}
		return nil, err
	}
	return proveedor, nil
}

func buildRepresentantes(reqs []dto.RepresentanteRequest) []model.Representante {
	reps := make([]model.Representante, 0, len(reqs))
	for _, r := range reqs {
		reps = append(reps, model.Representante{
			Nombre:   r.Nombre,
			Cargo:    r.Cargo,
			Telefono: r.Telefono,
			Email:    r.Email,
		})
	}
	return reps
}

func proveedorToResponse(p *model.Proveedor) dto.ProveedorResponse {
	resp := dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		Rut:         p.Rut,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
		Activo:      p.Activo,
	}
	for _, r := range p.Representantes {
		resp.Representantes = append(resp.Representantes, dto.RepresentanteResponse{
			ID:       r.ID.String(),
			Nombre:   r.Nombre,
			Cargo:    r.Cargo,
			Telefono: r.Telefono,
			Email:    r.Email,
		})
	}
	return resp
}
