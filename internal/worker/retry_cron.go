package worker

// Background goroutine that periodically re-queues correos stuck in
// estado='fallido' with remaining attempts. Delivery itself stays in the
// email worker; this only feeds the queue.

import (
	"context"
	"time"

	"cataldo/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 2 * time.Minute
	retryBatchSize    = 20
)

// StartRetryCron launches the re-queue loop. It respects the context for
// graceful shutdown.
func StartRetryCron(ctx context.Context, correos repository.CorreoRepository, dispatcher *Dispatcher) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, correos, dispatcher)
			}
		}
	}()
}

func processRetries(ctx context.Context, correos repository.CorreoRepository, dispatcher *Dispatcher) {
	fallidos, err := correos.ListFallidosReintentables(ctx, MaxEmailIntentos, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query fallidos")
		return
	}
	if len(fallidos) == 0 {
		return
	}

	log.Info().Int("count", len(fallidos)).Msg("retry_cron: re-queuing failed emails")

	for i := range fallidos {
		if err := dispatcher.EnqueueEmail(ctx, fallidos[i].ID); err != nil {
			log.Error().Err(err).
				Str("correo_id", fallidos[i].ID.String()).
				Msg("retry_cron: enqueue failed")
		}
	}
}
