// Package rut validates Chilean RUT identifiers (modulo-11 check digit).
package rut

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrFormato     = errors.New("rut con formato inválido")
	ErrDigitoVerif = errors.New("dígito verificador incorrecto")
)

// Normalizar strips dots and upper-cases the check digit: "12.345.678-k"
// becomes "12345678-K". It does not validate the check digit.
func Normalizar(rut string) string {
	s := strings.ToUpper(strings.TrimSpace(rut))
	return strings.ReplaceAll(s, ".", "")
}

// Validar checks the format NNNNNNN-D and the modulo-11 check digit.
func Validar(rut string) error {
	s := Normalizar(rut)
	parts := strings.Split(s, "-")
	if len(parts) != 2 || parts[0] == "" || len(parts[1]) != 1 {
		return ErrFormato
	}
	num, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return ErrFormato
	}
	dv := parts[1]
	if dv != "K" && (dv < "0" || dv > "9") {
		return ErrFormato
	}
	if DigitoVerificador(num) != dv {
		return ErrDigitoVerif
	}
	return nil
}

// DigitoVerificador computes the modulo-11 check digit for the numeric part.
// Digits are weighted 2,3,4,5,6,7 cyclically from right to left; a remainder
// of 11 maps to "0" and 10 maps to "K".
func DigitoVerificador(num uint64) string {
	suma := 0
	factor := 2
	for num > 0 {
		suma += int(num%10) * factor
		num /= 10
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	resto := 11 - (suma % 11)
	switch resto {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(resto)
	}
}
