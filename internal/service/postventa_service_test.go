package service

import (
	"context"
	"errors"
	"testing"

	"cataldo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubQueue records enqueued correo IDs; with falla set every enqueue errors.
type stubQueue struct {
	falla     bool
	encolados []uuid.UUID
}

func (q *stubQueue) EnqueueEmail(_ context.Context, correoID uuid.UUID) error {
	if q.falla {
		return errors.New("redis down")
	}
	q.encolados = append(q.encolados, correoID)
	return nil
}

var _ EmailEnqueuer = (*stubQueue)(nil)

func nuevoEntornoPostventa() (*stubCorreoRepo, *stubOperacionRepo, *stubUsuarioRepo, *stubQueue, PostventaService) {
	correos := &stubCorreoRepo{}
	operaciones := newStubOperacionRepo()
	usuarios := newStubUsuarioRepo()
	queue := &stubQueue{}
	svc := NewPostventaService(correos, operaciones, usuarios, queue, &stubAudit{})
	return correos, operaciones, usuarios, queue, svc
}

func TestEnviarPostventaRequiereEntrega(t *testing.T) {
	correos, operaciones, usuarios, queue, svc := nuevoEntornoPostventa()
	cliente := usuarios.agregar(&model.Usuario{
		NombreCompleto: "María Soto",
		Email:          "maria@example.com",
		Rol:            model.RolCliente,
		Activo:         true,
	})
	o := &model.Operacion{ClienteID: cliente.ID, Estado: model.EstadoEnProceso}
	require.NoError(t, operaciones.CreateTx(nil, o))
	actor := Actor{Email: "vendedor@cataldo.cl"}

	_, err := svc.EnviarPostventa(context.Background(), o.ID.String(), actor)
	assert.ErrorIs(t, err, ErrOperacionNoEntregada)
	assert.Empty(t, correos.correos)

	o.Estado = model.EstadoEntregada
	resp, err := svc.EnviarPostventa(context.Background(), o.ID.String(), actor)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", resp.Destinatario)
	assert.Equal(t, model.CorreoPostventa, resp.TipoCorreo)
	assert.Equal(t, model.EnvioPendiente, resp.EstadoEnvio)

	// the row is persisted and the job queued
	require.Len(t, correos.correos, 1)
	require.Len(t, queue.encolados, 1)
	assert.Equal(t, correos.correos[0].ID, queue.encolados[0])
}

func TestEnviarPostventaSobreviveColaCaida(t *testing.T) {
	correos, operaciones, usuarios, queue, svc := nuevoEntornoPostventa()
	queue.falla = true
	cliente := usuarios.agregar(&model.Usuario{Email: "maria@example.com", Rol: model.RolCliente, Activo: true})
	o := &model.Operacion{ClienteID: cliente.ID, Estado: model.EstadoPagada}
	require.NoError(t, operaciones.CreateTx(nil, o))

	// a dead queue never fails the request: the row stays pendiente for
	// the retry cron
	resp, err := svc.EnviarPostventa(context.Background(), o.ID.String(), Actor{})
	require.NoError(t, err)
	assert.Equal(t, model.EnvioPendiente, resp.EstadoEnvio)
	require.Len(t, correos.correos, 1)
}

func TestReintentarSoloFallidos(t *testing.T) {
	correos, _, _, queue, svc := nuevoEntornoPostventa()

	enviado := &model.Correo{DestinatarioEmail: "a@example.com", EstadoEnvio: model.EnvioEnviado}
	require.NoError(t, correos.Create(context.Background(), enviado))

	_, err := svc.Reintentar(context.Background(), enviado.ID.String(), Actor{})
	assert.ErrorIs(t, err, ErrCorreoNoReintentable)

	msg := "smtp timeout"
	fallido := &model.Correo{
		DestinatarioEmail: "b@example.com",
		EstadoEnvio:       model.EnvioFallido,
		ErrorMensaje:      &msg,
		Intentos:          2,
	}
	require.NoError(t, correos.Create(context.Background(), fallido))

	resp, err := svc.Reintentar(context.Background(), fallido.ID.String(), Actor{Email: "staff@cataldo.cl"})
	require.NoError(t, err)
	assert.Equal(t, model.EnvioPendiente, resp.EstadoEnvio)
	assert.Nil(t, resp.ErrorMensaje)
	require.Len(t, queue.encolados, 1)
	assert.Equal(t, fallido.ID, queue.encolados[0])
}

func TestReintentarInexistente(t *testing.T) {
	_, _, _, _, svc := nuevoEntornoPostventa()

	_, err := svc.Reintentar(context.Background(), uuid.NewString(), Actor{})
	assert.ErrorIs(t, err, ErrCorreoNoEncontrado)
}
