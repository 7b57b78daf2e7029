package worker

// Daily birthday greeting job. Fires once per day at the configured local
// hour; each run delegates to the cumpleanos service, which treats every
// send independently.

import (
	"context"
	"time"

	"cataldo/internal/service"

	"github.com/rs/zerolog/log"
)

// CumpleanosCronConfig holds the schedule of the daily run.
type CumpleanosCronConfig struct {
	Hora     int    // local hour 0-23
	Timezone string // IANA name, e.g. America/Santiago
}

// StartCumpleanosCron launches the daily greeting goroutine. It sleeps until
// the next configured fire time, runs, and re-arms for the following day.
func StartCumpleanosCron(ctx context.Context, svc service.CumpleanosService, cfg CumpleanosCronConfig) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Str("tz", cfg.Timezone).Msg("cumpleanos_cron: unknown timezone, falling back to UTC")
		loc = time.UTC
	}

	go func() {
		log.Info().Int("hora", cfg.Hora).Str("tz", loc.String()).Msg("cumpleanos_cron: started")

		for {
			timer := time.NewTimer(hastaProximaEjecucion(time.Now().In(loc), cfg.Hora))
			select {
			case <-ctx.Done():
				timer.Stop()
				log.Info().Msg("cumpleanos_cron: shutting down")
				return
			case <-timer.C:
				ejecutar(ctx, svc)
			}
		}
	}()
}

func ejecutar(ctx context.Context, svc service.CumpleanosService) {
	resultado, err := svc.EnviarSaludos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cumpleanos_cron: run failed")
		return
	}
	log.Info().
		Int("enviados", resultado.Enviados).
		Int("fallidos", resultado.Fallidos).
		Msg("cumpleanos_cron: run completed")
}

// hastaProximaEjecucion computes the wait until the next hh:00 local fire.
// If today's slot already passed, the next one is tomorrow.
func hastaProximaEjecucion(ahora time.Time, hora int) time.Duration {
	proxima := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), hora, 0, 0, 0, ahora.Location())
	if !proxima.After(ahora) {
		proxima = proxima.AddDate(0, 0, 1)
	}
	return proxima.Sub(ahora)
}
