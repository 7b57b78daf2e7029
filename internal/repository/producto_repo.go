package repository

import (
	"context"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	CreateTx(tx *gorm.DB, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Material links
	CreateMaterialLinkTx(tx *gorm.DB, l *model.ProductoMaterial) error
	CountLinksByMaterial(ctx context.Context, materialID uuid.UUID) (int64, error)

	// Costos de terceros
	CreateCostoTerceros(ctx context.Context, c *model.CostoTerceros) error
	FindCostoTercerosByID(ctx context.Context, id uuid.UUID) (*model.CostoTerceros, error)
	ListCostosTerceros(ctx context.Context) ([]model.CostoTerceros, error)

	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("CostoTerceros").
		Preload("Materiales.Material").
		First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	switch filter.EsServicio {
	case "true":
		q = q.Where("es_servicio = true")
	case "false":
		q = q.Where("es_servicio = false")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) CreateMaterialLinkTx(tx *gorm.DB, l *model.ProductoMaterial) error {
	return tx.Create(l).Error
}

func (r *productoRepo) CountLinksByMaterial(ctx context.Context, materialID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProductoMaterial{}).
		Where("material_id = ?", materialID).Count(&count).Error
	return count, err
}

func (r *productoRepo) CreateCostoTerceros(ctx context.Context, c *model.CostoTerceros) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *productoRepo) FindCostoTercerosByID(ctx context.Context, id uuid.UUID) (*model.CostoTerceros, error) {
	var c model.CostoTerceros
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *productoRepo) ListCostosTerceros(ctx context.Context) ([]model.CostoTerceros, error) {
	var costos []model.CostoTerceros
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&costos).Error
	return costos, err
}
