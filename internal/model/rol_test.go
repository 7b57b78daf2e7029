package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNivelOrdenaJerarquia(t *testing.T) {
	orden := []Rol{RolUsuario, RolCliente, RolTrabajadorTienda, RolGerente, RolAdministrador}
	for i := 1; i < len(orden); i++ {
		assert.Greater(t, orden[i].Nivel(), orden[i-1].Nivel(),
			"%s debe estar sobre %s", orden[i], orden[i-1])
	}
	assert.Equal(t, 0, RolBloqueado.Nivel())
	assert.Equal(t, 0, Rol("inventado").Nivel())
}

func TestAtLeast(t *testing.T) {
	assert.True(t, RolAdministrador.AtLeast(RolGerente))
	assert.True(t, RolGerente.AtLeast(RolGerente))
	assert.False(t, RolTrabajadorTienda.AtLeast(RolGerente))

	// bloqueado never satisfies a minimum, not even against itself
	assert.False(t, RolBloqueado.AtLeast(RolUsuario))
	assert.False(t, RolBloqueado.AtLeast(RolBloqueado))
}

func TestParseRol(t *testing.T) {
	r, err := ParseRol("trabajador_tienda")
	require.NoError(t, err)
	assert.Equal(t, RolTrabajadorTienda, r)

	_, err = ParseRol("superadmin")
	assert.Error(t, err)
}

func TestEstadoValido(t *testing.T) {
	for _, e := range EstadosOperacion {
		assert.True(t, EstadoValido(e), e)
	}
	assert.False(t, EstadoValido("despachada"))
	assert.False(t, EstadoValido(""))
}
