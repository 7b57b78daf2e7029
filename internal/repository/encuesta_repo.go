package repository

import (
	"context"

	"cataldo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EncuestaRepository interface {
	Create(ctx context.Context, e *model.Encuesta) error
	FindByOperacionID(ctx context.Context, operacionID uuid.UUID) (*model.Encuesta, error)
	List(ctx context.Context) ([]model.Encuesta, error)
	Promedios(ctx context.Context) (total int64, promServicio, promProducto float64, err error)
}

type encuestaRepo struct{ db *gorm.DB }

func NewEncuestaRepository(db *gorm.DB) EncuestaRepository { return &encuestaRepo{db: db} }

func (r *encuestaRepo) Create(ctx context.Context, e *model.Encuesta) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *encuestaRepo) FindByOperacionID(ctx context.Context, operacionID uuid.UUID) (*model.Encuesta, error) {
	var e model.Encuesta
	err := r.db.WithContext(ctx).Where("operacion_id = ?", operacionID).First(&e).Error
	return &e, err
}

func (r *encuestaRepo) List(ctx context.Context) ([]model.Encuesta, error) {
	var encuestas []model.Encuesta
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&encuestas).Error
	return encuestas, err
}

func (r *encuestaRepo) Promedios(ctx context.Context) (total int64, promServicio, promProducto float64, err error) {
	type fila struct {
		Total        int64
		PromServicio float64
		PromProducto float64
	}
	var f fila
	err = r.db.WithContext(ctx).Model(&model.Encuesta{}).
		Select("COUNT(*) AS total, COALESCE(AVG(nota_servicio), 0) AS prom_servicio, COALESCE(AVG(nota_producto), 0) AS prom_producto").
		Scan(&f).Error
	return f.Total, f.PromServicio, f.PromProducto, err
}
