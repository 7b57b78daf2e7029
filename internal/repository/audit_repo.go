package repository

import (
	"context"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"gorm.io/gorm"
)

// AuditRepository is insert-and-read only: AuditLog rows are never updated
// or deleted after insert.
type AuditRepository interface {
	Create(ctx context.Context, a *model.AuditLog) error
	List(ctx context.Context, filter dto.AuditFilter) ([]model.AuditLog, int64, error)
	ListByActor(ctx context.Context, actorEmail string, filter dto.AuditFilter) ([]model.AuditLog, int64, error)
	ListFailedLogins(ctx context.Context, filter dto.AuditFilter) ([]model.AuditLog, int64, error)
	// ListByEntity returns oldest-first (chronological) for timeline
	// reconstruction — the one deliberate ordering asymmetry.
	ListByEntity(ctx context.Context, entidad, entidadID string) ([]model.AuditLog, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) Create(ctx context.Context, a *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func aplicarFiltro(q *gorm.DB, filter dto.AuditFilter) *gorm.DB {
	if filter.TipoEvento != "" {
		q = q.Where("tipo_evento = ?", filter.TipoEvento)
	}
	if filter.Severidad != "" {
		q = q.Where("severidad = ?", filter.Severidad)
	}
	if filter.Entidad != "" {
		q = q.Where("entidad = ?", filter.Entidad)
	}
	if filter.ActorEmail != "" {
		q = q.Where("LOWER(actor_email) = LOWER(?)", filter.ActorEmail)
	}
	switch filter.Exito {
	case "true":
		q = q.Where("exito = true")
	case "false":
		q = q.Where("exito = false")
	}
	if filter.Desde != "" {
		q = q.Where("DATE(created_at) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(created_at) <= ?", filter.Hasta)
	}
	return q
}

func (r *auditRepo) List(ctx context.Context, filter dto.AuditFilter) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	q := aplicarFiltro(r.db.WithContext(ctx).Model(&model.AuditLog{}), filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&logs).Error
	return logs, total, err
}

func (r *auditRepo) ListByActor(ctx context.Context, actorEmail string, filter dto.AuditFilter) ([]model.AuditLog, int64, error) {
	filter.ActorEmail = actorEmail
	return r.List(ctx, filter)
}

func (r *auditRepo) ListFailedLogins(ctx context.Context, filter dto.AuditFilter) ([]model.AuditLog, int64, error) {
	filter.TipoEvento = model.EventoLoginFallido
	filter.Exito = "false"
	return r.List(ctx, filter)
}

func (r *auditRepo) ListByEntity(ctx context.Context, entidad, entidadID string) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("entidad = ? AND entidad_id = ?", entidad, entidadID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
