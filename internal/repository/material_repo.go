package repository

import (
	"context"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error)
	ListAll(ctx context.Context) ([]model.Material, error)
	Update(ctx context.Context, m *model.Material) error
	UpdateExistencia(ctx context.Context, id uuid.UUID, nueva int) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).Preload("Proveedor").First(&m, id).Error
	return &m, err
}

func (r *materialRepo) List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error) {
	var materiales []model.Material
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Material{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre_material ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Proveedor").
		Order("nombre_material ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&materiales).Error
	return materiales, total, err
}

func (r *materialRepo) ListAll(ctx context.Context) ([]model.Material, error) {
	var materiales []model.Material
	err := r.db.WithContext(ctx).Where("activo = true").Find(&materiales).Error
	return materiales, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) UpdateExistencia(ctx context.Context, id uuid.UUID, nueva int) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).Where("id = ?", id).
		Update("existencia_material", nueva).Error
}

func (r *materialRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Material{}, id).Error
}
