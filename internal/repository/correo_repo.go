package repository

import (
	"context"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CorreoRepository interface {
	Create(ctx context.Context, c *model.Correo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Correo, error)
	List(ctx context.Context, filter dto.CorreoFilter) ([]model.Correo, int64, error)
	Update(ctx context.Context, c *model.Correo) error
	Estadisticas(ctx context.Context) (total, enviados, fallidos, pendientes int64, err error)
	ListFallidosReintentables(ctx context.Context, maxIntentos, limit int) ([]model.Correo, error)
}

type correoRepo struct{ db *gorm.DB }

func NewCorreoRepository(db *gorm.DB) CorreoRepository { return &correoRepo{db: db} }

func (r *correoRepo) Create(ctx context.Context, c *model.Correo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *correoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Correo, error) {
	var c model.Correo
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *correoRepo) List(ctx context.Context, filter dto.CorreoFilter) ([]model.Correo, int64, error) {
	var correos []model.Correo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Correo{})
	if filter.Estado != "" {
		q = q.Where("estado_envio = ?", filter.Estado)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo_correo = ?", filter.Tipo)
	}
	if filter.Email != "" {
		q = q.Where("LOWER(destinatario_email) = LOWER(?)", filter.Email)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&correos).Error
	return correos, total, err
}

func (r *correoRepo) Update(ctx context.Context, c *model.Correo) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *correoRepo) Estadisticas(ctx context.Context) (total, enviados, fallidos, pendientes int64, err error) {
	m := r.db.WithContext(ctx).Model(&model.Correo{})
	if err = m.Count(&total).Error; err != nil {
		return
	}
	if err = r.db.WithContext(ctx).Model(&model.Correo{}).Where("estado_envio = ?", model.EnvioEnviado).Count(&enviados).Error; err != nil {
		return
	}
	if err = r.db.WithContext(ctx).Model(&model.Correo{}).Where("estado_envio = ?", model.EnvioFallido).Count(&fallidos).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&model.Correo{}).Where("estado_envio = ?", model.EnvioPendiente).Count(&pendientes).Error
	return
}

func (r *correoRepo) ListFallidosReintentables(ctx context.Context, maxIntentos, limit int) ([]model.Correo, error) {
	var correos []model.Correo
	err := r.db.WithContext(ctx).
		Where("estado_envio = ? AND intentos < ?", model.EnvioFallido, maxIntentos).
		Order("updated_at ASC").
		Limit(limit).
		Find(&correos).Error
	return correos, err
}
