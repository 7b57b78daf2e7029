package repository

import (
	"context"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperacionRepository interface {
	CreateTx(tx *gorm.DB, o *model.Operacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Operacion, error)
	List(ctx context.Context, filter dto.OperacionFilter) ([]model.Operacion, int64, error)
	UpdateTx(tx *gorm.DB, o *model.Operacion) error
	Update(ctx context.Context, o *model.Operacion) error
	AppendHistorialTx(tx *gorm.DB, h *model.HistorialOperacion) error
	CountHistorial(ctx context.Context, operacionID uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type operacionRepo struct{ db *gorm.DB }

func NewOperacionRepository(db *gorm.DB) OperacionRepository { return &operacionRepo{db: db} }

func (r *operacionRepo) DB() *gorm.DB { return r.db }

func (r *operacionRepo) CreateTx(tx *gorm.DB, o *model.Operacion) error {
	return tx.Create(o).Error
}

func (r *operacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Operacion, error) {
	var o model.Operacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Items").
		Preload("Historial", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&o, id).Error
	return &o, err
}

func (r *operacionRepo) List(ctx context.Context, filter dto.OperacionFilter) ([]model.Operacion, int64, error) {
	var operaciones []model.Operacion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Operacion{})

	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Desde != "" {
		q = q.Where("DATE(created_at) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(created_at) <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&operaciones).Error
	return operaciones, total, err
}

func (r *operacionRepo) UpdateTx(tx *gorm.DB, o *model.Operacion) error {
	return tx.Save(o).Error
}

func (r *operacionRepo) Update(ctx context.Context, o *model.Operacion) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *operacionRepo) AppendHistorialTx(tx *gorm.DB, h *model.HistorialOperacion) error {
	return tx.Create(h).Error
}

func (r *operacionRepo) CountHistorial(ctx context.Context, operacionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.HistorialOperacion{}).
		Where("operacion_id = ?", operacionID).Count(&count).Error
	return count, err
}
