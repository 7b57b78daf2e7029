package repository

import (
	"context"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository holds the aggregate queries behind the manager reports.
type DashboardRepository interface {
	ContarOperaciones(ctx context.Context) (totales, activas int64, err error)
	VentasDelMes(ctx context.Context) (decimal.Decimal, error)
	VentasPorMes(ctx context.Context, meses int) ([]dto.VentaMensual, error)
	ContarClientesActivos(ctx context.Context) (int64, error)
	ClientesNuevosMes(ctx context.Context) (int64, error)
	TopClientes(ctx context.Context, limit int) ([]dto.ClienteTop, error)
	OperacionesPorEstado(ctx context.Context) ([]dto.OperacionesPorEstado, error)
	ValorInventario(ctx context.Context) (int64, decimal.Decimal, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepository(db *gorm.DB) DashboardRepository { return &dashboardRepo{db: db} }

func (r *dashboardRepo) ContarOperaciones(ctx context.Context) (totales, activas int64, err error) {
	if err = r.db.WithContext(ctx).Model(&model.Operacion{}).Count(&totales).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&model.Operacion{}).
		Where("estado NOT IN ?", []string{model.EstadoPagada, model.EstadoAnulada}).
		Count(&activas).Error
	return
}

func (r *dashboardRepo) VentasDelMes(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Operacion{}).
		Select("COALESCE(SUM(costo_operacion), 0)").
		Where("estado = ? AND DATE_TRUNC('month', updated_at) = DATE_TRUNC('month', CURRENT_DATE)", model.EstadoPagada).
		Scan(&total).Error
	return total, err
}

func (r *dashboardRepo) VentasPorMes(ctx context.Context, meses int) ([]dto.VentaMensual, error) {
	var filas []dto.VentaMensual
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(DATE_TRUNC('month', updated_at), 'YYYY-MM') AS mes,
		       COALESCE(SUM(costo_operacion), 0)                   AS total,
		       COUNT(*)                                            AS count
		FROM operaciones
		WHERE estado = ?
		  AND updated_at >= DATE_TRUNC('month', CURRENT_DATE) - (? || ' months')::interval
		GROUP BY 1
		ORDER BY 1 ASC`, model.EstadoPagada, meses).Scan(&filas).Error
	return filas, err
}

func (r *dashboardRepo) ContarClientesActivos(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("rol = ? AND activo = true", model.RolCliente).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) ClientesNuevosMes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("rol = ? AND DATE_TRUNC('month', created_at) = DATE_TRUNC('month', CURRENT_DATE)", model.RolCliente).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) TopClientes(ctx context.Context, limit int) ([]dto.ClienteTop, error) {
	var filas []dto.ClienteTop
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id::text                         AS usuario_id,
		       u.nombre_completo                  AS nombre,
		       COUNT(o.id)                        AS operaciones,
		       COALESCE(SUM(o.costo_operacion),0) AS total_gasto
		FROM usuarios u
		JOIN operaciones o ON o.cliente_id = u.id AND o.estado <> ?
		GROUP BY u.id, u.nombre_completo
		ORDER BY total_gasto DESC
		LIMIT ?`, model.EstadoAnulada, limit).Scan(&filas).Error
	return filas, err
}

func (r *dashboardRepo) OperacionesPorEstado(ctx context.Context) ([]dto.OperacionesPorEstado, error) {
	var filas []dto.OperacionesPorEstado
	err := r.db.WithContext(ctx).Model(&model.Operacion{}).
		Select("estado, COUNT(*) AS count").
		Group("estado").
		Order("count DESC").
		Scan(&filas).Error
	return filas, err
}

func (r *dashboardRepo) ValorInventario(ctx context.Context) (int64, decimal.Decimal, error) {
	type fila struct {
		Total int64
		Valor decimal.Decimal
	}
	var f fila
	err := r.db.WithContext(ctx).Model(&model.Material{}).
		Select("COUNT(*) AS total, COALESCE(SUM(existencia_material * costo_unitario), 0) AS valor").
		Where("activo = true").
		Scan(&f).Error
	return f.Total, f.Valor, err
}
