package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// cacheTTL keeps dashboard aggregates fresh enough for a manager screen
// without hammering Postgres on every refresh.
const cacheTTL = 60 * time.Second

type DashboardService interface {
	Resumen(ctx context.Context) (*dto.ResumenResponse, error)
	Ventas(ctx context.Context, meses int) (*dto.VentasResponse, error)
	Inventario(ctx context.Context) (*dto.InventarioDashboardResponse, error)
	Clientes(ctx context.Context) (*dto.ClientesDashboardResponse, error)
	Operaciones(ctx context.Context) (*dto.OperacionesDashboardResponse, error)
}

type dashboardService struct {
	repo       repository.DashboardRepository
	materiales repository.MaterialRepository
	correos    repository.CorreoRepository
	rdb        *redis.Client
}

func NewDashboardService(
	repo repository.DashboardRepository,
	materiales repository.MaterialRepository,
	correos repository.CorreoRepository,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{repo: repo, materiales: materiales, correos: correos, rdb: rdb}
}

// conCache is the cache-aside wrapper: serve from Redis when present, else
// compute, store and serve. Redis being down degrades to direct queries.
func conCache[T any](ctx context.Context, rdb *redis.Client, key string, compute func() (*T, error)) (*T, error) {
	if rdb != nil {
		if raw, err := rdb.Get(ctx, key).Result(); err == nil {
			var cached T
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	result, err := compute()
	if err != nil {
		return nil, err
	}

	if rdb != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				log.Debug().Err(err).Str("key", key).Msg("dashboard: cache write failed")
			}
		}
	}
	return result, nil
}

func (s *dashboardService) Resumen(ctx context.Context) (*dto.ResumenResponse, error) {
	return conCache(ctx, s.rdb, "dashboard:resumen", func() (*dto.ResumenResponse, error) {
		totales, activas, err := s.repo.ContarOperaciones(ctx)
		if err != nil {
			return nil, err
		}
		ventasMes, err := s.repo.VentasDelMes(ctx)
		if err != nil {
			return nil, err
		}
		clientes, err := s.repo.ContarClientesActivos(ctx)
		if err != nil {
			return nil, err
		}
		enAlerta, err := s.contarAlertas(ctx)
		if err != nil {
			return nil, err
		}
		_, _, fallidos, _, err := s.correos.Estadisticas(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.ResumenResponse{
			OperacionesTotales: totales,
			OperacionesActivas: activas,
			VentasMes:          ventasMes,
			ClientesActivos:    clientes,
			MaterialesEnAlerta: enAlerta,
			CorreosFallidos:    fallidos,
		}, nil
	})
}

func (s *dashboardService) Ventas(ctx context.Context, meses int) (*dto.VentasResponse, error) {
	if meses < 1 || meses > 36 {
		meses = 12
	}
	key := "dashboard:ventas:" + strconv.Itoa(meses)
	return conCache(ctx, s.rdb, key, func() (*dto.VentasResponse, error) {
		filas, err := s.repo.VentasPorMes(ctx, meses)
		if err != nil {
			return nil, err
		}
		return &dto.VentasResponse{Meses: filas}, nil
	})
}

func (s *dashboardService) Inventario(ctx context.Context) (*dto.InventarioDashboardResponse, error) {
	return conCache(ctx, s.rdb, "dashboard:inventario", func() (*dto.InventarioDashboardResponse, error) {
		total, valor, err := s.repo.ValorInventario(ctx)
		if err != nil {
			return nil, err
		}
		materiales, err := s.materiales.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		resp := &dto.InventarioDashboardResponse{TotalMateriales: total, ValorInventario: valor}
		for i := range materiales {
			switch ClasificarAlerta(materiales[i].ExistenciaMaterial, materiales[i].StockMinimo) {
			case model.AlertaCritico:
				resp.Criticos++
			case model.AlertaBajo:
				resp.Bajos++
			case model.AlertaMedio:
				resp.Medios++
			}
		}
		return resp, nil
	})
}

func (s *dashboardService) Clientes(ctx context.Context) (*dto.ClientesDashboardResponse, error) {
	return conCache(ctx, s.rdb, "dashboard:clientes", func() (*dto.ClientesDashboardResponse, error) {
		total, err := s.repo.ContarClientesActivos(ctx)
		if err != nil {
			return nil, err
		}
		nuevos, err := s.repo.ClientesNuevosMes(ctx)
		if err != nil {
			return nil, err
		}
		top, err := s.repo.TopClientes(ctx, 10)
		if err != nil {
			return nil, err
		}
		return &dto.ClientesDashboardResponse{TotalClientes: total, NuevosMes: nuevos, Top: top}, nil
	})
}

func (s *dashboardService) Operaciones(ctx context.Context) (*dto.OperacionesDashboardResponse, error) {
	return conCache(ctx, s.rdb, "dashboard:operaciones", func() (*dto.OperacionesDashboardResponse, error) {
		filas, err := s.repo.OperacionesPorEstado(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.OperacionesDashboardResponse{PorEstado: filas}, nil
	})
}

func (s *dashboardService) contarAlertas(ctx context.Context) (int64, error) {
	materiales, err := s.materiales.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	for i := range materiales {
		if ClasificarAlerta(materiales[i].ExistenciaMaterial, materiales[i].StockMinimo) != model.AlertaNormal {
			count++
		}
	}
	return count, nil
}
