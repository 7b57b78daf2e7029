package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHastaProximaEjecucion(t *testing.T) {
	loc := time.UTC

	// before today's slot: wait until 09:00 today
	ahora := time.Date(2026, 3, 10, 7, 30, 0, 0, loc)
	assert.Equal(t, 90*time.Minute, hastaProximaEjecucion(ahora, 9))

	// exactly at the slot: next fire is tomorrow
	ahora = time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	assert.Equal(t, 24*time.Hour, hastaProximaEjecucion(ahora, 9))

	// past the slot: remainder of today plus the early hours of tomorrow
	ahora = time.Date(2026, 3, 10, 23, 0, 0, 0, loc)
	assert.Equal(t, 10*time.Hour, hastaProximaEjecucion(ahora, 9))
}
