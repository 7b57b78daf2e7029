package service

import (
	"context"
	"encoding/json"
	"time"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/rs/zerolog/log"
)

// AuditEvent is the write-side input of the audit trail.
type AuditEvent struct {
	TipoEvento string
	Severidad  string // defaults to INFO
	ActorEmail string
	IP         string
	Entidad    string
	EntidadID  string
	Before     interface{}
	After      interface{}
	Exito      bool
}

type AuditService interface {
	// LogEvent persists one audit row. It never returns an error: an audit
	// failure is logged and swallowed so it cannot abort the primary
	// business operation.
	LogEvent(ctx context.Context, ev AuditEvent)

	GetSystemLogs(ctx context.Context, filter dto.AuditFilter) (*dto.AuditListResponse, error)
	GetUserActivityLog(ctx context.Context, actorEmail string, filter dto.AuditFilter) (*dto.AuditListResponse, error)
	GetFailedLoginAttempts(ctx context.Context, filter dto.AuditFilter) (*dto.AuditListResponse, error)
	// GetEntityHistory returns oldest-first for timeline reconstruction.
	GetEntityHistory(ctx context.Context, entidad, entidadID string) ([]dto.AuditLogResponse, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) LogEvent(ctx context.Context, ev AuditEvent) {
	if ev.Severidad == "" {
		ev.Severidad = model.SeveridadInfo
	}

	row := &model.AuditLog{
		TipoEvento: ev.TipoEvento,
		Severidad:  ev.Severidad,
		Exito:      ev.Exito,
	}
	if ev.ActorEmail != "" {
		row.ActorEmail = &ev.ActorEmail
	}
	if ev.IP != "" {
		row.IP = &ev.IP
	}
	if ev.Entidad != "" {
		row.Entidad = &ev.Entidad
	}
	if ev.EntidadID != "" {
		row.EntidadID = &ev.EntidadID
	}
	row.Before = marshalSnapshot(ev.Before)
	row.After = marshalSnapshot(ev.After)

	if err := s.repo.Create(ctx, row); err != nil {
		log.Error().Err(err).
			Str("tipo_evento", ev.TipoEvento).
			Str("entidad", ev.Entidad).
			Msg("audit: failed to persist event")
	}
}

// marshalSnapshot serializes a before/after value to JSON, nil on failure.
// Snapshots built by callers never include password hashes.
func marshalSnapshot(v interface{}) *string {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func (s *auditService) GetSystemLogs(ctx context.Context, filter dto.AuditFilter) (*dto.AuditListResponse, error) {
	normalizarFiltroAudit(&filter)
	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return auditListToResponse(logs, total, filter), nil
}

func (s *auditService) GetUserActivityLog(ctx context.Context, actorEmail string, filter dto.AuditFilter) (*dto.AuditListResponse, error) {
	normalizarFiltroAudit(&filter)
	logs, total, err := s.repo.ListByActor(ctx, actorEmail, filter)
	if err != nil {
		return nil, err
	}
	return auditListToResponse(logs, total, filter), nil
}

func (s *auditService) GetFailedLoginAttempts(ctx context.Context, filter dto.AuditFilter) (*dto.AuditListResponse, error) {
	normalizarFiltroAudit(&filter)
	logs, total, err := s.repo.ListFailedLogins(ctx, filter)
	if err != nil {
		return nil, err
	}
	return auditListToResponse(logs, total, filter), nil
}

func (s *auditService) GetEntityHistory(ctx context.Context, entidad, entidadID string) ([]dto.AuditLogResponse, error) {
	logs, err := s.repo.ListByEntity(ctx, entidad, entidadID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		resp = append(resp, auditToResponse(&logs[i]))
	}
	return resp, nil
}

func normalizarFiltroAudit(filter *dto.AuditFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
}

func auditListToResponse(logs []model.AuditLog, total int64, filter dto.AuditFilter) *dto.AuditListResponse {
	data := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		data = append(data, auditToResponse(&logs[i]))
	}
	return &dto.AuditListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}
}

func auditToResponse(a *model.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:         a.ID.String(),
		TipoEvento: a.TipoEvento,
		Severidad:  a.Severidad,
		ActorEmail: a.ActorEmail,
		IP:         a.IP,
		Entidad:    a.Entidad,
		EntidadID:  a.EntidadID,
		Before:     a.Before,
		After:      a.After,
		Exito:      a.Exito,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}
