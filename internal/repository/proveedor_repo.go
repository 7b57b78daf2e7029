package repository

import (
	"context"

	"cataldo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	FindByRut(ctx context.Context, rut string) (*model.Proveedor, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ReplaceRepresentantes(ctx context.Context, proveedorID uuid.UUID, reps []model.Representante) error
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).Preload("Representantes").First(&p, id).Error
	return &p, err
}

func (r *proveedorRepo) FindByRut(ctx context.Context, rut string) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).Where("rut = ?", rut).First(&p).Error
	return &p, err
}

func (r *proveedorRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	q := r.db.WithContext(ctx).Preload("Representantes").Order("razon_social ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *proveedorRepo) ReplaceRepresentantes(ctx context.Context, proveedorID uuid.UUID, reps []model.Representante) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proveedor_id = ?", proveedorID).Delete(&model.Representante{}).Error; err != nil {
			return err
		}
		for i := range reps {
			reps[i].ProveedorID = proveedorID
			if err := tx.Create(&reps[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
