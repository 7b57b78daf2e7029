package service

import (
	"context"
	"errors"
	"testing"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuditRepo captures rows; with falla set every insert errors.
type stubAuditRepo struct {
	falla bool
	rows  []*model.AuditLog
}

func (r *stubAuditRepo) Create(_ context.Context, a *model.AuditLog) error {
	if r.falla {
		return errors.New("db down")
	}
	r.rows = append(r.rows, a)
	return nil
}
func (r *stubAuditRepo) List(_ context.Context, _ dto.AuditFilter) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}
func (r *stubAuditRepo) ListByActor(_ context.Context, _ string, _ dto.AuditFilter) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}
func (r *stubAuditRepo) ListFailedLogins(_ context.Context, _ dto.AuditFilter) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}
func (r *stubAuditRepo) ListByEntity(_ context.Context, _, _ string) ([]model.AuditLog, error) {
	out := make([]model.AuditLog, 0, len(r.rows))
	for _, a := range r.rows {
		out = append(out, *a)
	}
	return out, nil
}

func TestLogEventNuncaPropagaErrores(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{falla: true})

	// a broken audit store must never take the business operation down
	assert.NotPanics(t, func() {
		svc.LogEvent(context.Background(), AuditEvent{
			TipoEvento: model.EventoLogin,
			ActorEmail: "alguien@example.com",
		})
	})
}

func TestLogEventCompletaDefaults(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo)

	svc.LogEvent(context.Background(), AuditEvent{
		TipoEvento: model.EventoCambioEstado,
		ActorEmail: "staff@cataldo.cl",
		Entidad:    "operacion",
		EntidadID:  "abc",
		Before:     map[string]string{"estado": "pendiente"},
		After:      map[string]string{"estado": "en_proceso"},
		Exito:      true,
	})

	require.Len(t, repo.rows, 1)
	row := repo.rows[0]
	assert.Equal(t, model.SeveridadInfo, row.Severidad)
	require.NotNil(t, row.Before)
	assert.JSONEq(t, `{"estado":"pendiente"}`, *row.Before)
	require.NotNil(t, row.After)
	assert.JSONEq(t, `{"estado":"en_proceso"}`, *row.After)
	require.NotNil(t, row.ActorEmail)
	assert.Equal(t, "staff@cataldo.cl", *row.ActorEmail)
}

func TestGetSystemLogsAcotaLimite(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{})

	resp, err := svc.GetSystemLogs(context.Background(), dto.AuditFilter{Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, 500, resp.Limit)
}
