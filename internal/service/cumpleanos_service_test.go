package service

import (
	"context"
	"testing"
	"time"

	"cataldo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clienteCumpleanero(nombre, email, categoria string, consiente bool) model.Usuario {
	nacimiento := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	return model.Usuario{
		ID:             uuid.New(),
		NombreCompleto: nombre,
		Email:          email,
		Rol:            model.RolCliente,
		Activo:         true,
		Cliente: &model.Cliente{
			FechaNacimiento:     &nacimiento,
			Categoria:           categoria,
			ConsentimientoDatos: consiente,
		},
	}
}

func TestEnviarSaludosRespetaConsentimiento(t *testing.T) {
	usuarios := newStubUsuarioRepo()
	usuarios.cumpleanos = []model.Usuario{
		clienteCumpleanero("Ana Rojas", "ana@example.com", "premium", true),
		clienteCumpleanero("Pedro Pino", "pedro@example.com", "estandar", false),
	}
	correos := &stubCorreoRepo{}
	mailer := &stubMailer{}
	audit := &stubAudit{}
	svc := NewCumpleanosService(usuarios, correos, mailer, audit, "UTC")

	resultado, err := svc.EnviarSaludos(context.Background())
	require.NoError(t, err)

	// only the consenting customer is greeted
	assert.Equal(t, 1, resultado.Enviados)
	assert.Equal(t, 0, resultado.Fallidos)
	require.Len(t, mailer.enviados, 1)
	assert.Equal(t, "ana@example.com", mailer.enviados[0])

	require.Len(t, correos.correos, 1)
	assert.Equal(t, model.CorreoCumpleanos, correos.correos[0].TipoCorreo)
	assert.Equal(t, model.EnvioEnviado, correos.correos[0].EstadoEnvio)

	ev := audit.ultimo()
	require.NotNil(t, ev)
	assert.Equal(t, model.EventoEnvioCorreo, ev.TipoEvento)
	assert.True(t, ev.Exito)
}

func TestEnviarSaludosRegistraFallos(t *testing.T) {
	usuarios := newStubUsuarioRepo()
	usuarios.cumpleanos = []model.Usuario{
		clienteCumpleanero("Ana Rojas", "ana@example.com", "frecuente", true),
		clienteCumpleanero("Luis Vera", "luis@example.com", "premium", true),
	}
	correos := &stubCorreoRepo{}
	mailer := &stubMailer{falla: true}
	audit := &stubAudit{}
	svc := NewCumpleanosService(usuarios, correos, mailer, audit, "UTC")

	resultado, err := svc.EnviarSaludos(context.Background())
	require.NoError(t, err)

	// a failing SMTP never aborts the run; every outcome is recorded
	assert.Equal(t, 0, resultado.Enviados)
	assert.Equal(t, 2, resultado.Fallidos)
	require.Len(t, resultado.Detalles, 2)
	assert.Equal(t, model.EnvioFallido, resultado.Detalles[0].Estado)
	assert.NotEmpty(t, resultado.Detalles[0].Error)

	require.Len(t, correos.correos, 2)
	for _, c := range correos.correos {
		assert.Equal(t, model.EnvioFallido, c.EstadoEnvio)
		assert.Equal(t, 1, c.Intentos)
		require.NotNil(t, c.ErrorMensaje)
	}

	ev := audit.ultimo()
	require.NotNil(t, ev)
	assert.False(t, ev.Exito)
}

func TestClientesHoyFiltraConsentimiento(t *testing.T) {
	usuarios := newStubUsuarioRepo()
	usuarios.cumpleanos = []model.Usuario{
		clienteCumpleanero("Ana Rojas", "ana@example.com", "premium", true),
		clienteCumpleanero("Pedro Pino", "pedro@example.com", "estandar", false),
	}
	svc := NewCumpleanosService(usuarios, &stubCorreoRepo{}, &stubMailer{}, &stubAudit{}, "UTC")

	hoy, err := svc.ClientesHoy(context.Background())
	require.NoError(t, err)
	require.Len(t, hoy, 1)
	assert.Equal(t, "ana@example.com", hoy[0].Email)

	// the planning view keeps non-consenting customers visible to staff
	proximos, err := svc.ClientesProximos(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, proximos, 2)
}

func TestEdad(t *testing.T) {
	nacimiento := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 36, edad(nacimiento, time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, 35, edad(nacimiento, time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, 36, edad(nacimiento, time.Date(2026, 12, 31, 9, 0, 0, 0, time.UTC)))
}
