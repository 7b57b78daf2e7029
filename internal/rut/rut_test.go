package rut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitoVerificador(t *testing.T) {
	cases := []struct {
		num      uint64
		esperado string
	}{
		{12345678, "5"},
		{11111111, "1"},
		{6, "K"},
		{14, "0"},
		{76086428, "5"},
	}
	for _, c := range cases {
		assert.Equal(t, c.esperado, DigitoVerificador(c.num), "num=%d", c.num)
	}
}

func TestValidar(t *testing.T) {
	assert.NoError(t, Validar("12345678-5"))
	assert.NoError(t, Validar("12.345.678-5"))
	assert.NoError(t, Validar("6-k"))
	assert.NoError(t, Validar("14-0"))

	assert.ErrorIs(t, Validar("12345678-9"), ErrDigitoVerif)
	assert.ErrorIs(t, Validar("12345678"), ErrFormato)
	assert.ErrorIs(t, Validar("abc-5"), ErrFormato)
	assert.ErrorIs(t, Validar(""), ErrFormato)
	assert.ErrorIs(t, Validar("12345678-55"), ErrFormato)
}

func TestNormalizar(t *testing.T) {
	assert.Equal(t, "12345678-K", Normalizar(" 12.345.678-k "))
}
