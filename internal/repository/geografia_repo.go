package repository

import (
	"context"

	"cataldo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeografiaRepository is read-only at runtime; the tree is seeded at startup.
type GeografiaRepository interface {
	ListPaises(ctx context.Context) ([]model.Pais, error)
	ListRegiones(ctx context.Context, paisID uuid.UUID) ([]model.Region, error)
	ListProvincias(ctx context.Context, regionID uuid.UUID) ([]model.Provincia, error)
	ListComunas(ctx context.Context, provinciaID uuid.UUID) ([]model.Comuna, error)
	FindComunaByID(ctx context.Context, id uuid.UUID) (*model.Comuna, error)
}

type geografiaRepo struct{ db *gorm.DB }

func NewGeografiaRepository(db *gorm.DB) GeografiaRepository { return &geografiaRepo{db: db} }

func (r *geografiaRepo) ListPaises(ctx context.Context) ([]model.Pais, error) {
	var paises []model.Pais
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&paises).Error
	return paises, err
}

func (r *geografiaRepo) ListRegiones(ctx context.Context, paisID uuid.UUID) ([]model.Region, error) {
	var regiones []model.Region
	err := r.db.WithContext(ctx).Where("pais_id = ?", paisID).Order("nombre ASC").Find(&regiones).Error
	return regiones, err
}

func (r *geografiaRepo) ListProvincias(ctx context.Context, regionID uuid.UUID) ([]model.Provincia, error) {
	var provincias []model.Provincia
	err := r.db.WithContext(ctx).Where("region_id = ?", regionID).Order("nombre ASC").Find(&provincias).Error
	return provincias, err
}

func (r *geografiaRepo) ListComunas(ctx context.Context, provinciaID uuid.UUID) ([]model.Comuna, error) {
	var comunas []model.Comuna
	err := r.db.WithContext(ctx).Where("provincia_id = ?", provinciaID).Order("nombre ASC").Find(&comunas).Error
	return comunas, err
}

func (r *geografiaRepo) FindComunaByID(ctx context.Context, id uuid.UUID) (*model.Comuna, error) {
	var c model.Comuna
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}
