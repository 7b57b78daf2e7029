package service

import (
	"context"
	"testing"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClasificarAlerta(t *testing.T) {
	casos := []struct {
		nombre     string
		existencia int
		minimo     int
		esperado   string
	}{
		{"agotado", 0, 10, model.AlertaCritico},
		{"agotado sin minimo", 0, 0, model.AlertaCritico},
		{"igual al minimo", 10, 10, model.AlertaBajo},
		{"bajo el minimo", 4, 10, model.AlertaBajo},
		{"justo sobre el minimo", 11, 10, model.AlertaMedio},
		{"limite 1.5x inclusive", 15, 10, model.AlertaMedio},
		{"sobre 1.5x", 16, 10, model.AlertaNormal},
		{"holgado", 100, 10, model.AlertaNormal},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, ClasificarAlerta(c.existencia, c.minimo))
		})
	}
}

func nuevoEntornoMateriales() (*stubMaterialRepo, *stubProductoRepo, *stubAudit, MaterialService) {
	materiales := newStubMaterialRepo()
	productos := newStubProductoRepo()
	audit := &stubAudit{}
	svc := NewMaterialService(materiales, productos, audit)
	return materiales, productos, audit, svc
}

func TestActualizarStock(t *testing.T) {
	materiales, _, audit, svc := nuevoEntornoMateriales()
	m := materiales.agregar(&model.Material{
		NombreMaterial:     "Tablón de pino",
		ExistenciaMaterial: 20,
		StockMinimo:        5,
		UnidadMedida:       "unidad",
		CostoUnitario:      decimal.NewFromInt(7500),
		Activo:             true,
	})
	actor := Actor{Email: "bodega@cataldo.cl", Rol: model.RolTrabajadorTienda}

	resp, err := svc.ActualizarStock(context.Background(), m.ID.String(),
		dto.ActualizarStockRequest{Operacion: "subtract", Cantidad: 8, Motivo: "consumo orden"}, actor)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Existencia)

	ev := audit.ultimo()
	require.NotNil(t, ev)
	assert.Equal(t, model.EventoAjusteStock, ev.TipoEvento)

	resp, err = svc.ActualizarStock(context.Background(), m.ID.String(),
		dto.ActualizarStockRequest{Operacion: "add", Cantidad: 3}, actor)
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Existencia)

	resp, err = svc.ActualizarStock(context.Background(), m.ID.String(),
		dto.ActualizarStockRequest{Operacion: "set", Cantidad: 40}, actor)
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Existencia)
}

func TestActualizarStockNoPermiteNegativo(t *testing.T) {
	materiales, _, _, svc := nuevoEntornoMateriales()
	m := materiales.agregar(&model.Material{
		NombreMaterial:     "Bisagra",
		ExistenciaMaterial: 3,
		StockMinimo:        5,
	})

	_, err := svc.ActualizarStock(context.Background(), m.ID.String(),
		dto.ActualizarStockRequest{Operacion: "subtract", Cantidad: 4}, Actor{})
	assert.ErrorIs(t, err, ErrStockNegativo)

	// the rejected adjustment leaves stock untouched
	assert.Equal(t, 3, m.ExistenciaMaterial)
}

func TestObtenerAlertasAgrupa(t *testing.T) {
	materiales, _, _, svc := nuevoEntornoMateriales()
	materiales.agregar(&model.Material{NombreMaterial: "Barniz", ExistenciaMaterial: 0, StockMinimo: 4})
	materiales.agregar(&model.Material{NombreMaterial: "Clavos", ExistenciaMaterial: 3, StockMinimo: 10})
	materiales.agregar(&model.Material{NombreMaterial: "Cola fría", ExistenciaMaterial: 14, StockMinimo: 10})
	materiales.agregar(&model.Material{NombreMaterial: "Lija", ExistenciaMaterial: 80, StockMinimo: 10})

	resp, err := svc.ObtenerAlertas(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Criticos, 1)
	assert.Len(t, resp.Bajos, 1)
	assert.Len(t, resp.Medios, 1)
	assert.Equal(t, 3, resp.Total)
}

func TestEliminarMaterialReferenciado(t *testing.T) {
	materiales, productos, _, svc := nuevoEntornoMateriales()
	m := materiales.agregar(&model.Material{NombreMaterial: "Terciado", ExistenciaMaterial: 10})
	productos.links = 2

	err := svc.Eliminar(context.Background(), m.ID.String(), Actor{Email: "admin@cataldo.cl"})
	assert.ErrorIs(t, err, ErrMaterialReferenciado)

	// once no product references it, deletion is physical
	productos.links = 0
	require.NoError(t, svc.Eliminar(context.Background(), m.ID.String(), Actor{Email: "admin@cataldo.cl"}))
	_, err = svc.Obtener(context.Background(), m.ID.String())
	assert.ErrorIs(t, err, ErrMaterialNoEncontrado)
}
