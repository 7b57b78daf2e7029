package worker

// Delivers stored emails queued by the postventa service. The database row
// is the source of truth: the job carries only the correo id.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxEmailIntentos caps delivery attempts before the job is parked in the DLQ.
const MaxEmailIntentos = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	CorreoID string `json:"correo_id"`
}

// Mailer matches the SMTP client's send method.
type Mailer interface {
	Enviar(to, asunto, cuerpo string) error
}

type EmailWorker struct {
	correos repository.CorreoRepository
	mailer  Mailer
}

func NewEmailWorker(correos repository.CorreoRepository, mailer Mailer) *EmailWorker {
	return &EmailWorker{correos: correos, mailer: mailer}
}

// Process loads the correo row, attempts delivery and records the outcome.
// A send failure marks the row fallido; the retry cron or a manual retry
// re-queues it until MaxEmailIntentos.
func (w *EmailWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	correoID, err := uuid.Parse(payload.CorreoID)
	if err != nil {
		log.Error().Str("correo_id", payload.CorreoID).Msg("email_worker: invalid correo id")
		return
	}

	correo, err := w.correos.FindByID(ctx, correoID)
	if err != nil {
		log.Error().Err(err).Str("correo_id", payload.CorreoID).Msg("email_worker: correo not found")
		return
	}
	if correo.EstadoEnvio == model.EnvioEnviado {
		return // already delivered, duplicate job
	}

	correo.Intentos++

	if err := w.mailer.Enviar(correo.DestinatarioEmail, correo.Asunto, correo.Cuerpo); err != nil {
		msg := err.Error()
		correo.EstadoEnvio = model.EnvioFallido
		correo.ErrorMensaje = &msg
		if updateErr := w.correos.Update(ctx, correo); updateErr != nil {
			log.Error().Err(updateErr).Str("correo_id", correo.ID.String()).Msg("email_worker: failed to record failure")
		}

		if correo.Intentos >= MaxEmailIntentos {
			SendToDLQ(ctx, rdb, QueueEmail, "email", raw,
				fmt.Sprintf("max intentos (%d) alcanzado: %s", MaxEmailIntentos, msg),
				correo.Intentos)
		}
		log.Error().Err(err).
			Str("to", correo.DestinatarioEmail).
			Int("intentos", correo.Intentos).
			Msg("email_worker: delivery failed")
		return
	}

	now := time.Now()
	correo.EstadoEnvio = model.EnvioEnviado
	correo.ErrorMensaje = nil
	correo.EnviadoAt = &now
	if err := w.correos.Update(ctx, correo); err != nil {
		log.Error().Err(err).Str("correo_id", correo.ID.String()).Msg("email_worker: failed to record delivery")
		return
	}
	log.Info().Str("to", correo.DestinatarioEmail).Str("tipo", correo.TipoCorreo).Msg("email_worker: delivered")
}
