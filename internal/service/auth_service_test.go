package service

import (
	"context"
	"testing"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func nuevoEntornoAuth() (*stubUsuarioRepo, *stubAudit, AuthService) {
	usuarios := newStubUsuarioRepo()
	audit := &stubAudit{}
	svc := NewAuthService(usuarios, audit, "secreto-de-prueba", 8)
	return usuarios, audit, svc
}

func usuarioConPassword(usuarios *stubUsuarioRepo, email, password string, rol model.Rol, activo bool) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return usuarios.agregar(&model.Usuario{
		NombreCompleto: "Usuario de Prueba",
		Rut:            "12345678-5",
		Email:          email,
		PasswordHash:   string(hash),
		Rol:            rol,
		Activo:         activo,
	})
}

func TestLogin(t *testing.T) {
	usuarios, audit, svc := nuevoEntornoAuth()
	usuarioConPassword(usuarios, "ana@example.com", "clave-segura", model.RolCliente, true)

	resp, err := svc.Login(context.Background(),
		dto.LoginRequest{Email: "  Ana@Example.com ", Password: "clave-segura"}, "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "ana@example.com", resp.Usuario.Email)

	ev := audit.ultimo()
	require.NotNil(t, ev)
	assert.Equal(t, model.EventoLogin, ev.TipoEvento)
	assert.True(t, ev.Exito)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	usuarios, audit, svc := nuevoEntornoAuth()
	usuarioConPassword(usuarios, "ana@example.com", "clave-segura", model.RolCliente, true)

	// wrong password and unknown user yield the same opaque error
	_, err := svc.Login(context.Background(),
		dto.LoginRequest{Email: "ana@example.com", Password: "otra-clave"}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	_, err = svc.Login(context.Background(),
		dto.LoginRequest{Email: "nadie@example.com", Password: "clave-segura"}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	// both attempts land in the audit trail as WARNING failures
	require.Len(t, audit.events, 2)
	for _, ev := range audit.events {
		assert.Equal(t, model.EventoLoginFallido, ev.TipoEvento)
		assert.Equal(t, model.SeveridadWarning, ev.Severidad)
		assert.False(t, ev.Exito)
	}
}

func TestLoginCuentaBloqueada(t *testing.T) {
	usuarios, _, svc := nuevoEntornoAuth()
	usuarioConPassword(usuarios, "ex@example.com", "clave-segura", model.RolCliente, false)
	bloqueado := usuarioConPassword(usuarios, "malo@example.com", "clave-segura", model.RolBloqueado, true)
	bloqueado.Rut = "87654321-4"

	_, err := svc.Login(context.Background(),
		dto.LoginRequest{Email: "ex@example.com", Password: "clave-segura"}, "")
	assert.ErrorIs(t, err, ErrCuentaBloqueada)

	_, err = svc.Login(context.Background(),
		dto.LoginRequest{Email: "malo@example.com", Password: "clave-segura"}, "")
	assert.ErrorIs(t, err, ErrCuentaBloqueada)
}

func TestRegistro(t *testing.T) {
	usuarios, _, svc := nuevoEntornoAuth()

	resp, err := svc.Registro(context.Background(), dto.RegistroRequest{
		NombreCompleto: "Carla Muñoz",
		Rut:            "12.345.678-5",
		Email:          "Carla@Example.com",
		Password:       "clave-muy-segura",
	}, "10.0.0.2")
	require.NoError(t, err)

	// RUT normalized, email lowercased, role always usuario
	assert.Equal(t, "12345678-5", resp.Rut)
	assert.Equal(t, "carla@example.com", resp.Email)
	assert.Equal(t, string(model.RolUsuario), resp.Rol)

	// the stored hash is bcrypt, never the plaintext
	u, err := usuarios.FindByEmail(context.Background(), "carla@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("clave-muy-segura")))
}

func TestRegistroDuplicados(t *testing.T) {
	usuarios, _, svc := nuevoEntornoAuth()
	usuarioConPassword(usuarios, "ana@example.com", "clave-segura", model.RolCliente, true)

	_, err := svc.Registro(context.Background(), dto.RegistroRequest{
		NombreCompleto: "Otra Ana",
		Rut:            "87654321-4",
		Email:          "ana@example.com",
		Password:       "clave-muy-segura",
	}, "")
	assert.ErrorIs(t, err, ErrEmailEnUso)

	_, err = svc.Registro(context.Background(), dto.RegistroRequest{
		NombreCompleto: "Tocaya",
		Rut:            "12345678-5",
		Email:          "tocaya@example.com",
		Password:       "clave-muy-segura",
	}, "")
	assert.ErrorIs(t, err, ErrRutEnUso)
}

func TestRegistroRutInvalido(t *testing.T) {
	_, _, svc := nuevoEntornoAuth()

	_, err := svc.Registro(context.Background(), dto.RegistroRequest{
		NombreCompleto: "Impostor",
		Rut:            "12345678-9",
		Email:          "impostor@example.com",
		Password:       "clave-muy-segura",
	}, "")
	assert.Error(t, err)
}
