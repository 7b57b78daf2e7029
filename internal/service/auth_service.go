package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"cataldo/internal/dto"
	"cataldo/internal/middleware"
	"cataldo/internal/model"
	"cataldo/internal/repository"
	"cataldo/internal/rut"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

var (
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrCuentaBloqueada       = errors.New("cuenta bloqueada o inactiva")
	ErrEmailEnUso            = errors.New("el email ya está registrado")
	ErrRutEnUso              = errors.New("el RUT ya está registrado")
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest, ip string) (*dto.LoginResponse, error)
	Registro(ctx context.Context, req dto.RegistroRequest, ip string) (*dto.UsuarioResponse, error)
	Logout(ctx context.Context, actorEmail, ip string)
}

type authService struct {
	repo      repository.UsuarioRepository
	audit     AuditService
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo repository.UsuarioRepository, audit AuditService, jwtSecret string, jwtExpirationHours int) AuthService {
	return &authService{
		repo:      repo,
		audit:     audit,
		jwtSecret: jwtSecret,
		jwtTTL:    time.Duration(jwtExpirationHours) * time.Hour,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	usuario, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logLoginFallido(ctx, email, ip, "usuario no existe")
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		s.logLoginFallido(ctx, email, ip, "password incorrecta")
		return nil, ErrCredencialesInvalidas
	}

	if !usuario.Activo || usuario.Rol == model.RolBloqueado {
		s.logLoginFallido(ctx, email, ip, "cuenta bloqueada")
		return nil, ErrCuentaBloqueada
	}

	token, err := s.generateToken(usuario)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoLogin,
		ActorEmail: usuario.Email,
		IP:         ip,
		Entidad:    "usuario",
		EntidadID:  usuario.ID.String(),
		Exito:      true,
	})

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.jwtTTL.Seconds()),
		Usuario:   usuarioToResponse(usuario),
	}, nil
}

func (s *authService) logLoginFallido(ctx context.Context, email, ip, motivo string) {
	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoLoginFallido,
		Severidad:  model.SeveridadWarning,
		ActorEmail: email,
		IP:         ip,
		Entidad:    "usuario",
		After:      map[string]string{"motivo": motivo},
		Exito:      false,
	})
}

func (s *authService) Registro(ctx context.Context, req dto.RegistroRequest, ip string) (*dto.UsuarioResponse, error) {
	if err := rut.Validar(req.Rut); err != nil {
		return nil, err
	}
	rutNorm := rut.Normalizar(req.Rut)
	email := strings.ToLower(strings.TrimSpace(req.Email))

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
		Rol:            model.RolUsuario,
		Telefono:       req.Telefono,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, usuario); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoCreacion,
		ActorEmail: email,
		IP:         ip,
		Entidad:    "usuario",
		EntidadID:  usuario.ID.String(),
		After:      map[string]string{"email": email, "rol": string(model.RolUsuario)},
		Exito:      true,
	})

	resp := usuarioToResponse(usuario)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, actorEmail, ip string) {
	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoLogout,
		ActorEmail: actorEmail,
		IP:         ip,
		Entidad:    "usuario",
		Exito:      true,
	})
}

func (s *authService) generateToken(u *model.Usuario) (string, error) {
	now := time.Now()
	claims := middleware.JWTClaims{
		UserID: u.ID.String(),
		Email:  u.Email,
		Rut:    u.Rut,
		Rol:    string(u.Rol),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
