package service

import (
	"context"
	"testing"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoEntornoOperaciones() (*stubOperacionRepo, *stubUsuarioRepo, *stubProductoRepo, *stubAudit, OperacionService) {
	operaciones := newStubOperacionRepo()
	usuarios := newStubUsuarioRepo()
	productos := newStubProductoRepo()
	audit := &stubAudit{}
	svc := NewOperacionService(operaciones, usuarios, productos, audit)
	return operaciones, usuarios, productos, audit, svc
}

func clienteDePrueba(usuarios *stubUsuarioRepo) *model.Usuario {
	return usuarios.agregar(&model.Usuario{
		NombreCompleto: "María Soto",
		Rut:            "12345678-5",
		Email:          "maria@example.com",
		Rol:            model.RolCliente,
		Activo:         true,
	})
}

func productoDePrueba(productos *stubProductoRepo, nombre string, precio int64) *model.Producto {
	return productos.agregar(&model.Producto{
		Nombre:      nombre,
		PrecioVenta: decimal.NewFromInt(precio),
		Activo:      true,
	})
}

func TestCrearOperacionCalculaTotal(t *testing.T) {
	operaciones, usuarios, productos, _, svc := nuevoEntornoOperaciones()
	cliente := clienteDePrueba(usuarios)
	mesa := productoDePrueba(productos, "Mesa de roble", 120000)
	silla := productoDePrueba(productos, "Silla tapizada", 45000)

	resp, err := svc.Crear(context.Background(), dto.CrearOperacionRequest{
		ClienteID: cliente.ID.String(),
		Items: []dto.ItemOperacionRequest{
			{ProductoID: mesa.ID.String(), Cantidad: 1},
			{ProductoID: silla.ID.String(), Cantidad: 4},
		},
	}, Actor{Email: "vendedor@cataldo.cl", Rol: model.RolTrabajadorTienda})
	require.NoError(t, err)

	// 120000 + 4*45000 = 300000
	assert.True(t, resp.CostoOperacion.Equal(decimal.NewFromInt(300000)),
		"total esperado 300000, fue %s", resp.CostoOperacion)
	assert.Equal(t, model.EstadoCotizacion, resp.Estado)
	assert.True(t, resp.SaldoPendiente.Equal(resp.CostoOperacion))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "Mesa de roble", resp.Items[0].NombreProducto)

	// creation writes the first historial row
	require.Len(t, operaciones.historial, 1)
	assert.Equal(t, model.EstadoCotizacion, operaciones.historial[0].Estado)
	assert.Nil(t, operaciones.historial[0].EstadoAnterior)
}

func TestCrearOperacionClienteInvalido(t *testing.T) {
	_, usuarios, productos, _, svc := nuevoEntornoOperaciones()
	producto := productoDePrueba(productos, "Velador", 30000)

	// staff user can never be the customer of an order
	trabajador := usuarios.agregar(&model.Usuario{
		Email:  "staff@cataldo.cl",
		Rol:    model.RolTrabajadorTienda,
		Activo: true,
	})

	_, err := svc.Crear(context.Background(), dto.CrearOperacionRequest{
		ClienteID: trabajador.ID.String(),
		Items:     []dto.ItemOperacionRequest{{ProductoID: producto.ID.String(), Cantidad: 1}},
	}, Actor{})
	assert.ErrorIs(t, err, ErrClienteInvalido)

	_, err = svc.Crear(context.Background(), dto.CrearOperacionRequest{
		ClienteID: uuid.NewString(),
		Items:     []dto.ItemOperacionRequest{{ProductoID: producto.ID.String(), Cantidad: 1}},
	}, Actor{})
	assert.ErrorIs(t, err, ErrClienteInvalido)
}

func TestCrearOperacionProductoInactivo(t *testing.T) {
	_, usuarios, productos, _, svc := nuevoEntornoOperaciones()
	cliente := clienteDePrueba(usuarios)
	producto := productoDePrueba(productos, "Cómoda", 80000)
	producto.Activo = false

	_, err := svc.Crear(context.Background(), dto.CrearOperacionRequest{
		ClienteID: cliente.ID.String(),
		Items:     []dto.ItemOperacionRequest{{ProductoID: producto.ID.String(), Cantidad: 1}},
	}, Actor{})
	assert.ErrorIs(t, err, ErrProductoInactivo)
}

func TestObtenerOperacionAjena(t *testing.T) {
	operaciones, usuarios, _, _, svc := nuevoEntornoOperaciones()
	cliente := clienteDePrueba(usuarios)

	o := &model.Operacion{ClienteID: cliente.ID, Estado: model.EstadoPendiente}
	require.NoError(t, operaciones.CreateTx(nil, o))

	// the owner sees it
	_, err := svc.Obtener(context.Background(), o.ID.String(),
		Actor{UserID: cliente.ID.String(), Rol: model.RolCliente})
	assert.NoError(t, err)

	// another customer does not
	_, err = svc.Obtener(context.Background(), o.ID.String(),
		Actor{UserID: uuid.NewString(), Rol: model.RolCliente})
	assert.ErrorIs(t, err, ErrSinAccesoOperacion)

	// neither does a plain usuario account that owns nothing
	_, err = svc.Obtener(context.Background(), o.ID.String(),
		Actor{UserID: uuid.NewString(), Rol: model.RolUsuario})
	assert.ErrorIs(t, err, ErrSinAccesoOperacion)

	// staff does
	_, err = svc.Obtener(context.Background(), o.ID.String(),
		Actor{UserID: uuid.NewString(), Rol: model.RolTrabajadorTienda})
	assert.NoError(t, err)
}

func TestCambiarEstado(t *testing.T) {
	operaciones, usuarios, _, audit, svc := nuevoEntornoOperaciones()
	cliente := clienteDePrueba(usuarios)
	o := &model.Operacion{ClienteID: cliente.ID, Estado: model.EstadoCotizacion}
	require.NoError(t, operaciones.CreateTx(nil, o))
	actor := Actor{Email: "vendedor@cataldo.cl", Rol: model.RolTrabajadorTienda}

	resp, err := svc.CambiarEstado(context.Background(), o.ID.String(),
		dto.CambiarEstadoRequest{Estado: model.EstadoOrdenTrabajo}, actor)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoOrdenTrabajo, resp.Estado)

	// one historial row per transition, recording the previous state
	require.Len(t, operaciones.historial, 1)
	require.NotNil(t, operaciones.historial[0].EstadoAnterior)
	assert.Equal(t, model.EstadoCotizacion, *operaciones.historial[0].EstadoAnterior)

	ev := audit.ultimo()
	require.NotNil(t, ev)
	assert.Equal(t, model.EventoCambioEstado, ev.TipoEvento)

	// entering orden_trabajo stamps fecha_primer_abono once
	require.NotNil(t, o.FechaPrimerAbono)
	primerAbono := *o.FechaPrimerAbono
	_, err = svc.CambiarEstado(context.Background(), o.ID.String(),
		dto.CambiarEstadoRequest{Estado: model.EstadoPendiente}, actor)
	require.NoError(t, err)
	assert.Equal(t, primerAbono, *o.FechaPrimerAbono)
	require.Len(t, operaciones.historial, 2)

	// repeating the same state is a conflict
	_, err = svc.CambiarEstado(context.Background(), o.ID.String(),
		dto.CambiarEstadoRequest{Estado: model.EstadoPendiente}, actor)
	assert.ErrorIs(t, err, ErrMismoEstado)

	// unknown states are rejected
	_, err = svc.CambiarEstado(context.Background(), o.ID.String(),
		dto.CambiarEstadoRequest{Estado: "despachada"}, actor)
	assert.ErrorIs(t, err, ErrEstadoInvalido)

	// anulada must go through the dedicated endpoint
	_, err = svc.CambiarEstado(context.Background(), o.ID.String(),
		dto.CambiarEstadoRequest{Estado: model.EstadoAnulada}, actor)
	assert.ErrorIs(t, err, ErrDatosInvalidos)
}

func TestRegistrarAbono(t *testing.T) {
	operaciones, usuarios, _, _, svc := nuevoEntornoOperaciones()
	cliente := clienteDePrueba(usuarios)
	o := &model.Operacion{
		ClienteID:      cliente.ID,
		Estado:         model.EstadoEnProceso,
		CostoOperacion: decimal.NewFromInt(100000),
	}
	require.NoError(t, operaciones.CreateTx(nil, o))
	actor := Actor{Email: "vendedor@cataldo.cl", Rol: model.RolTrabajadorTienda}

	// exceeding the balance is rejected
	_, err := svc.RegistrarAbono(context.Background(), o.ID.String(),
		dto.RegistrarAbonoRequest{Monto: decimal.NewFromInt(100001)}, actor)
	assert.ErrorIs(t, err, ErrAbonoExcedeCosto)

	// zero or negative amounts are rejected
	_, err = svc.RegistrarAbono(context.Background(), o.ID.String(),
		dto.RegistrarAbonoRequest{Monto: decimal.Zero}, actor)
	assert.ErrorIs(t, err, ErrAbonoInvalido)

	resp, err := svc.RegistrarAbono(context.Background(), o.ID.String(),
		dto.RegistrarAbonoRequest{Monto: decimal.NewFromInt(40000)}, actor)
	require.NoError(t, err)
	assert.True(t, resp.SaldoPendiente.Equal(decimal.NewFromInt(60000)))
	require.NotNil(t, o.FechaPrimerAbono)
	primera := *o.FechaPrimerAbono

	// the first payment date is stamped once and never moves
	resp, err = svc.RegistrarAbono(context.Background(), o.ID.String(),
		dto.RegistrarAbonoRequest{Monto: decimal.NewFromInt(60000)}, actor)
	require.NoError(t, err)
	assert.True(t, resp.SaldoPendiente.IsZero())
	require.NotNil(t, o.FechaPrimerAbono)
	assert.Equal(t, primera, *o.FechaPrimerAbono)
}

func TestAnular(t *testing.T) {
	operaciones, usuarios, _, audit, svc := nuevoEntornoOperaciones()
	cliente := clienteDePrueba(usuarios)
	o := &model.Operacion{ClienteID: cliente.ID, Estado: model.EstadoPendiente}
	require.NoError(t, operaciones.CreateTx(nil, o))

	// trabajador_tienda cannot void
	_, err := svc.Anular(context.Background(), o.ID.String(),
		dto.AnularOperacionRequest{Motivo: "cliente desiste"},
		Actor{Email: "staff@cataldo.cl", Rol: model.RolTrabajadorTienda})
	assert.ErrorIs(t, err, ErrSinAccesoOperacion)

	gerente := Actor{Email: "gerente@cataldo.cl", Rol: model.RolGerente}
	resp, err := svc.Anular(context.Background(), o.ID.String(),
		dto.AnularOperacionRequest{Motivo: "cliente desiste"}, gerente)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAnulada, resp.Estado)

	ev := audit.ultimo()
	require.NotNil(t, ev)
	assert.Equal(t, model.EventoAnulacion, ev.TipoEvento)
	assert.Equal(t, model.SeveridadWarning, ev.Severidad)

	// anulada is terminal: no further voids, transitions or payments
	_, err = svc.Anular(context.Background(), o.ID.String(),
		dto.AnularOperacionRequest{Motivo: "de nuevo"}, gerente)
	assert.ErrorIs(t, err, ErrOperacionAnulada)

	_, err = svc.CambiarEstado(context.Background(), o.ID.String(),
		dto.CambiarEstadoRequest{Estado: model.EstadoPendiente}, gerente)
	assert.ErrorIs(t, err, ErrOperacionAnulada)

	_, err = svc.RegistrarAbono(context.Background(), o.ID.String(),
		dto.RegistrarAbonoRequest{Monto: decimal.NewFromInt(1000)}, gerente)
	assert.ErrorIs(t, err, ErrOperacionAnulada)
}

func TestMisOperacionesFiltraPorCliente(t *testing.T) {
	operaciones, usuarios, _, _, svc := nuevoEntornoOperaciones()
	cliente := clienteDePrueba(usuarios)
	otro := usuarios.agregar(&model.Usuario{Email: "otro@example.com", Rol: model.RolCliente, Activo: true})

	require.NoError(t, operaciones.CreateTx(nil, &model.Operacion{ClienteID: cliente.ID, Estado: model.EstadoPendiente}))
	require.NoError(t, operaciones.CreateTx(nil, &model.Operacion{ClienteID: otro.ID, Estado: model.EstadoPendiente}))

	resp, err := svc.MisOperaciones(context.Background(),
		Actor{UserID: cliente.ID.String(), Rol: model.RolCliente}, dto.OperacionFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, cliente.ID.String(), resp.Data[0].ClienteID)
}

func TestListarAcotaLimite(t *testing.T) {
	_, _, _, _, svc := nuevoEntornoOperaciones()

	resp, err := svc.Listar(context.Background(), dto.OperacionFilter{Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Limit)

	resp, err = svc.Listar(context.Background(), dto.OperacionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Limit)
	assert.Equal(t, 1, resp.Page)
}
