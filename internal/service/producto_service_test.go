package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalcularPrecioVenta(t *testing.T) {
	casos := []struct {
		nombre     string
		materiales string
		manoObra   string
		margen     string
		esperado   string
	}{
		{"margen 30", "50000", "30000", "30", "104000"},
		{"margen 0", "50000", "30000", "0", "80000"},
		{"redondeo a 2 decimales", "10000", "0", "33.333", "13333.30"},
		{"solo mano de obra", "0", "25000", "20", "30000"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			cm := decimal.RequireFromString(c.materiales)
			cmo := decimal.RequireFromString(c.manoObra)
			margen := decimal.RequireFromString(c.margen)
			esperado := decimal.RequireFromString(c.esperado)

			precio := calcularPrecioVenta(cm, cmo, margen)
			assert.True(t, esperado.Equal(precio),
				"esperado %s, fue %s", esperado, precio)
		})
	}
}
