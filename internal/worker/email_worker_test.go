package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCorreoRepo struct {
	correos map[uuid.UUID]*model.Correo
}

func newStubCorreoRepo() *stubCorreoRepo {
	return &stubCorreoRepo{correos: make(map[uuid.UUID]*model.Correo)}
}

func (r *stubCorreoRepo) Create(_ context.Context, c *model.Correo) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.correos[c.ID] = c
	return nil
}
func (r *stubCorreoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Correo, error) {
	c, ok := r.correos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}
func (r *stubCorreoRepo) List(_ context.Context, _ dto.CorreoFilter) ([]model.Correo, int64, error) {
	return nil, 0, nil
}
func (r *stubCorreoRepo) Update(_ context.Context, c *model.Correo) error {
	r.correos[c.ID] = c
	return nil
}
func (r *stubCorreoRepo) Estadisticas(_ context.Context) (int64, int64, int64, int64, error) {
	return 0, 0, 0, 0, nil
}
func (r *stubCorreoRepo) ListFallidosReintentables(_ context.Context, _, _ int) ([]model.Correo, error) {
	return nil, nil
}

var _ repository.CorreoRepository = (*stubCorreoRepo)(nil)

type stubMailer struct {
	falla    bool
	enviados int
}

func (m *stubMailer) Enviar(_, _, _ string) error {
	if m.falla {
		return errors.New("smtp: connection refused")
	}
	m.enviados++
	return nil
}

func payloadPara(t *testing.T, id uuid.UUID) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(EmailJobPayload{CorreoID: id.String()})
	require.NoError(t, err)
	return raw
}

func TestEmailWorkerEntrega(t *testing.T) {
	correos := newStubCorreoRepo()
	mailer := &stubMailer{}
	w := NewEmailWorker(correos, mailer)

	correo := &model.Correo{
		DestinatarioEmail: "cliente@example.com",
		Asunto:            "Gracias por su compra",
		Cuerpo:            "cuerpo",
		TipoCorreo:        model.CorreoPostventa,
		EstadoEnvio:       model.EnvioPendiente,
	}
	require.NoError(t, correos.Create(context.Background(), correo))

	w.Process(context.Background(), nil, payloadPara(t, correo.ID))

	assert.Equal(t, 1, mailer.enviados)
	assert.Equal(t, model.EnvioEnviado, correo.EstadoEnvio)
	assert.Equal(t, 1, correo.Intentos)
	assert.Nil(t, correo.ErrorMensaje)
	require.NotNil(t, correo.EnviadoAt)
}

func TestEmailWorkerEsIdempotente(t *testing.T) {
	correos := newStubCorreoRepo()
	mailer := &stubMailer{}
	w := NewEmailWorker(correos, mailer)

	correo := &model.Correo{
		DestinatarioEmail: "cliente@example.com",
		EstadoEnvio:       model.EnvioEnviado,
		Intentos:          1,
	}
	require.NoError(t, correos.Create(context.Background(), correo))

	// a duplicate job for an already delivered row does nothing
	w.Process(context.Background(), nil, payloadPara(t, correo.ID))

	assert.Equal(t, 0, mailer.enviados)
	assert.Equal(t, 1, correo.Intentos)
}

func TestEmailWorkerRegistraFallo(t *testing.T) {
	correos := newStubCorreoRepo()
	mailer := &stubMailer{falla: true}
	w := NewEmailWorker(correos, mailer)

	correo := &model.Correo{
		DestinatarioEmail: "cliente@example.com",
		EstadoEnvio:       model.EnvioPendiente,
	}
	require.NoError(t, correos.Create(context.Background(), correo))

	w.Process(context.Background(), nil, payloadPara(t, correo.ID))

	assert.Equal(t, model.EnvioFallido, correo.EstadoEnvio)
	assert.Equal(t, 1, correo.Intentos)
	require.NotNil(t, correo.ErrorMensaje)
	assert.Contains(t, *correo.ErrorMensaje, "smtp")
}

func TestEmailWorkerPayloadInvalido(t *testing.T) {
	w := NewEmailWorker(newStubCorreoRepo(), &stubMailer{})

	assert.NotPanics(t, func() {
		w.Process(context.Background(), nil, json.RawMessage(`{"correo_id":"no-es-uuid"}`))
		w.Process(context.Background(), nil, json.RawMessage(`no json`))
	})
}
