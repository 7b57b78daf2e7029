package service

import (
	"context"
	"errors"
	"strings"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"
	"cataldo/internal/rut"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrPerfilIncompatible  = errors.New("el perfil adjunto no corresponde al rol")
	ErrAutoEliminacion     = errors.New("un administrador no puede eliminarse a sí mismo")
)

type UsuarioService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest, actorEmail, ip string) (*dto.UsuarioResponse, error)
	Obtener(ctx context.Context, id string) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, filter dto.UsuarioFilter) (*dto.UsuarioListResponse, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarUsuarioRequest, actorEmail, ip string) (*dto.UsuarioResponse, error)
	Eliminar(ctx context.Context, id, actorEmail, ip string) error
}

type usuarioService struct {
	repo  repository.UsuarioRepository
	audit AuditService
}

func NewUsuarioService(repo repository.UsuarioRepository, audit AuditService) UsuarioService {
	return &usuarioService{repo: repo, audit: audit}
}

// validarPerfil enforces that the attached profile block matches the role:
// cliente data only for rol cliente, staff data only for store roles.
func validarPerfil(rol model.Rol, cliente *dto.ClienteProfile, personaTienda *dto.PersonaTiendaProfile) error {
	if cliente != nil && rol != model.RolCliente {
		return ErrPerfilIncompatible
	}
	if personaTienda != nil && !rol.AtLeast(model.RolTrabajadorTienda) {
		return ErrPerfilIncompatible
	}
	return nil
}

func buildCliente(usuarioID uuid.UUID, p *dto.ClienteProfile) (*model.Cliente, error) {
	fecha, err := parseFechaPtr(p.FechaNacimiento)
	if err != nil {
		return nil, errDatos("fecha_nacimiento inválida")
	}
	categoria := p.Categoria
	if categoria == "" {
		categoria = "estandar"
	}
	c := &model.Cliente{
		UsuarioID:           usuarioID,
		FechaNacimiento:     fecha,
		Whatsapp:            p.Whatsapp,
		Categoria:           categoria,
		ConsentimientoDatos: p.ConsentimientoDatos,
		Direccion:           p.Direccion,
	}
	if p.ComunaID != nil && *p.ComunaID != "" {
		comunaID, err := uuid.Parse(*p.ComunaID)
		if err != nil {
			return nil, errDatos("comuna_id inválido")
		}
		c.ComunaID = &comunaID
	}
	return c, nil
}

func buildPersonaTienda(usuarioID uuid.UUID, p *dto.PersonaTiendaProfile) (*model.PersonaTienda, error) {
	fecha, err := parseFechaPtr(p.FechaContratacion)
	if err != nil {
		return nil, errDatos("fecha_contratacion inválida")
	}
	return &model.PersonaTienda{
		UsuarioID:         usuarioID,
		Cargo:             p.Cargo,
		FechaContratacion: fecha,
	}, nil
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest, actorEmail, ip string) (*dto.UsuarioResponse, error) {
	if err := rut.Validar(req.Rut); err != nil {
		return nil, err
	}
	rutNorm := rut.Normalizar(req.Rut)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	rol, err := model.ParseRol(req.Rol)
	if err != nil {
		return nil, err
	}
	if err := validarPerfil(rol, req.Cliente, req.PersonaTienda); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailEnUso
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByRut(ctx, rutNorm); err == nil {
		return nil, ErrRutEnUso
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	usuario := &model.Usuario{
		NombreCompleto: strings.TrimSpace(req.NombreCompleto),
		Rut:            rutNorm,
		Email:          email,
		PasswordHash:   string(hash),
		Rol:            rol,
		Telefono:       req.Telefono,
		Activo:         true,
	}

	err = runTx(s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, usuario); err != nil {
			return err
		}
		if req.Cliente != nil {
			cliente, err := buildCliente(usuario.ID, req.Cliente)
			if err != nil {
				return err
			}
			if err := s.repo.CreateClienteTx(tx, cliente); err != nil {
				return err
			}
			usuario.Cliente = cliente
		}
		if req.PersonaTienda != nil {
			persona, err := buildPersonaTienda(usuario.ID, req.PersonaTienda)
			if err != nil {
				return err
			}
			if err := s.repo.CreatePersonaTiendaTx(tx, persona); err != nil {
				return err
			}
			usuario.PersonaTienda = persona
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoCreacion,
		ActorEmail: actorEmail,
		IP:         ip,
		Entidad:    "usuario",
		EntidadID:  usuario.ID.String(),
		After:      map[string]string{"email": email, "rol": string(rol)},
		Exito:      true,
	})

	resp := usuarioToResponse(usuario)
	return &resp, nil
}

func (s *usuarioService) Obtener(ctx context.Context, id string) (*dto.UsuarioResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	usuario, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	resp := usuarioToResponse(usuario)
	return &resp, nil
}

func (s *usuarioService) Listar(ctx context.Context, filter dto.UsuarioFilter) (*dto.UsuarioListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	usuarios, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		data = append(data, usuarioToResponse(&usuarios[i]))
	}
	return &dto.UsuarioListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id string, req dto.ActualizarUsuarioRequest, actorEmail, ip string) (*dto.UsuarioResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	usuario, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}

	before := map[string]string{
		"nombre_completo": usuario.NombreCompleto,
		"email":           usuario.Email,
		"rol":             string(usuario.Rol),
	}

	if req.NombreCompleto != "" {
		usuario.NombreCompleto = strings.TrimSpace(req.NombreCompleto)
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != usuario.Email {
			if _, err := s.repo.FindByEmail(ctx, email); err == nil {
				return nil, ErrEmailEnUso
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			usuario.Email = email
		}
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}
	if req.Rol != "" {
		rol, err := model.ParseRol(req.Rol)
		if err != nil {
			return nil, err
		}
		usuario.Rol = rol
		if rol == model.RolBloqueado {
			usuario.Activo = false
		}
	}
	if req.Telefono != nil {
		usuario.Telefono = req.Telefono
	}
	if err := validarPerfil(usuario.Rol, req.Cliente, req.PersonaTienda); err != nil {
		return nil, err
	}

	err = runTx(s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, usuario); err != nil {
			return err
		}
		if req.Cliente != nil {
			cliente, err := buildCliente(usuario.ID, req.Cliente)
			if err != nil {
				return err
			}
			if err := s.repo.UpsertClienteTx(tx, cliente); err != nil {
				return err
			}
			usuario.Cliente = cliente
		}
		if req.PersonaTienda != nil {
			persona, err := buildPersonaTienda(usuario.ID, req.PersonaTienda)
			if err != nil {
				return err
			}
			if err := s.repo.UpsertPersonaTiendaTx(tx, persona); err != nil {
				return err
			}
			usuario.PersonaTienda = persona
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoActualizacion,
		ActorEmail: actorEmail,
		IP:         ip,
		Entidad:    "usuario",
		EntidadID:  usuario.ID.String(),
		Before:     before,
		After: map[string]string{
			"nombre_completo": usuario.NombreCompleto,
			"email":           usuario.Email,
			"rol":             string(usuario.Rol),
		},
		Exito: true,
	})

	resp := usuarioToResponse(usuario)
	return &resp, nil
}

// Eliminar deactivates the account (soft delete). The row stays for audit and
// referential integrity; the role switches to bloqueado so tokens stop working.
func (s *usuarioService) Eliminar(ctx context.Context, id, actorEmail, ip string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrUsuarioNoEncontrado
	}
	usuario, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNoEncontrado
		}
		return err
	}
	if strings.EqualFold(usuario.Email, actorEmail) {
		return ErrAutoEliminacion
	}

	if err := s.repo.SoftDelete(ctx, uid); err != nil {
		return err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoEliminacion,
		Severidad:  model.SeveridadWarning,
		ActorEmail: actorEmail,
		IP:         ip,
		Entidad:    "usuario",
		EntidadID:  usuario.ID.String(),
		Before:     map[string]string{"email": usuario.Email, "rol": string(usuario.Rol), "activo": "true"},
		After:      map[string]string{"rol": string(model.RolBloqueado), "activo": "false"},
		Exito:      true,
	})
	return nil
}
