package service

import (
	"context"
	"testing"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoEntornoEncuestas() (*stubEncuestaRepo, *stubOperacionRepo, EncuestaService) {
	encuestas := newStubEncuestaRepo()
	operaciones := newStubOperacionRepo()
	svc := NewEncuestaService(encuestas, operaciones, &stubAudit{})
	return encuestas, operaciones, svc
}

func TestCrearEncuestaRequiereEntrega(t *testing.T) {
	_, operaciones, svc := nuevoEntornoEncuestas()
	dueno := uuid.New()
	o := &model.Operacion{ClienteID: dueno, Estado: model.EstadoEnProceso}
	require.NoError(t, operaciones.CreateTx(nil, o))
	actor := Actor{UserID: dueno.String(), Rol: model.RolCliente}
	req := dto.CrearEncuestaRequest{OperacionID: o.ID.String(), NotaServicio: 7, NotaProducto: 6}

	_, err := svc.Crear(context.Background(), req, actor)
	assert.ErrorIs(t, err, ErrOperacionNoEntregada)

	// pagada is not enough: the order must have been delivered
	o.Estado = model.EstadoPagada
	_, err = svc.Crear(context.Background(), req, actor)
	assert.ErrorIs(t, err, ErrOperacionNoEntregada)

	o.Estado = model.EstadoEntregada
	_, err = svc.Crear(context.Background(), req, actor)
	assert.NoError(t, err)
}

func TestCrearEncuestaDuplicada(t *testing.T) {
	_, operaciones, svc := nuevoEntornoEncuestas()
	dueno := uuid.New()
	o := &model.Operacion{ClienteID: dueno, Estado: model.EstadoEntregada}
	require.NoError(t, operaciones.CreateTx(nil, o))
	actor := Actor{UserID: dueno.String(), Rol: model.RolCliente}

	req := dto.CrearEncuestaRequest{OperacionID: o.ID.String(), NotaServicio: 5, NotaProducto: 5}
	_, err := svc.Crear(context.Background(), req, actor)
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), req, actor)
	assert.ErrorIs(t, err, ErrEncuestaDuplicada)
}

func TestCrearEncuestaClienteAjeno(t *testing.T) {
	_, operaciones, svc := nuevoEntornoEncuestas()
	dueno := uuid.New()
	o := &model.Operacion{ClienteID: dueno, Estado: model.EstadoEntregada}
	require.NoError(t, operaciones.CreateTx(nil, o))

	req := dto.CrearEncuestaRequest{OperacionID: o.ID.String(), NotaServicio: 4, NotaProducto: 4}

	_, err := svc.Crear(context.Background(), req,
		Actor{UserID: uuid.NewString(), Rol: model.RolCliente})
	assert.ErrorIs(t, err, ErrSinAccesoOperacion)

	// a plain usuario account is not above the ownership rule either
	_, err = svc.Crear(context.Background(), req,
		Actor{UserID: uuid.NewString(), Rol: model.RolUsuario})
	assert.ErrorIs(t, err, ErrSinAccesoOperacion)

	_, err = svc.Crear(context.Background(), req,
		Actor{UserID: dueno.String(), Rol: model.RolCliente})
	assert.NoError(t, err)
}

func TestObtenerEncuestaAjena(t *testing.T) {
	encuestas, operaciones, svc := nuevoEntornoEncuestas()
	dueno := uuid.New()
	o := &model.Operacion{ClienteID: dueno, Estado: model.EstadoEntregada}
	require.NoError(t, operaciones.CreateTx(nil, o))
	require.NoError(t, encuestas.Create(context.Background(),
		&model.Encuesta{OperacionID: o.ID, NotaServicio: 6, NotaProducto: 6}))

	// the owner and staff read it
	_, err := svc.ObtenerPorOperacion(context.Background(), o.ID.String(),
		Actor{UserID: dueno.String(), Rol: model.RolCliente})
	assert.NoError(t, err)
	_, err = svc.ObtenerPorOperacion(context.Background(), o.ID.String(),
		Actor{UserID: uuid.NewString(), Rol: model.RolTrabajadorTienda})
	assert.NoError(t, err)

	// other customers and plain usuarios do not
	_, err = svc.ObtenerPorOperacion(context.Background(), o.ID.String(),
		Actor{UserID: uuid.NewString(), Rol: model.RolCliente})
	assert.ErrorIs(t, err, ErrSinAccesoOperacion)
	_, err = svc.ObtenerPorOperacion(context.Background(), o.ID.String(),
		Actor{UserID: uuid.NewString(), Rol: model.RolUsuario})
	assert.ErrorIs(t, err, ErrSinAccesoOperacion)
}

func TestObtenerEncuestaInexistente(t *testing.T) {
	_, operaciones, svc := nuevoEntornoEncuestas()
	o := &model.Operacion{ClienteID: uuid.New(), Estado: model.EstadoEntregada}
	require.NoError(t, operaciones.CreateTx(nil, o))

	_, err := svc.ObtenerPorOperacion(context.Background(), o.ID.String(),
		Actor{UserID: o.ClienteID.String(), Rol: model.RolCliente})
	assert.ErrorIs(t, err, ErrEncuestaNoEncontrada)
}
