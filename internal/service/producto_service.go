package service

import (
	"context"
	"errors"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrCostoTercerosInvalido = errors.New("costo de terceros no encontrado")
)

var cien = decimal.NewFromInt(100)

// calcularPrecioVenta derives the sale price: (materiales + mano de obra)
// recargado por el margen porcentual, redondeado a 2 decimales.
func calcularPrecioVenta(costoMateriales, costoManoObra, margenPct decimal.Decimal) decimal.Decimal {
	base := costoMateriales.Add(costoManoObra)
	factor := decimal.NewFromInt(1).Add(margenPct.Div(cien))
	return base.Mul(factor).Round(2)
}

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest, actor Actor) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarProductoRequest, actor Actor) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id string, actor Actor) error
	Reactivar(ctx context.Context, id string, actor Actor) error

	CrearCostoTerceros(ctx context.Context, req dto.CrearCostoTercerosRequest, actor Actor) (*dto.CostoTercerosResponse, error)
	ListarCostosTerceros(ctx context.Context) ([]dto.CostoTercerosResponse, error)
}

type productoService struct {
	repo       repository.ProductoRepository
	materiales repository.MaterialRepository
	audit      AuditService
}

func NewProductoService(repo repository.ProductoRepository, materiales repository.MaterialRepository, audit AuditService) ProductoService {
	return &productoService{repo: repo, materiales: materiales, audit: audit}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest, actor Actor) (*dto.ProductoResponse, error) {
	producto := &model.Producto{
		Nombre:          req.Nombre,
		Descripcion:     req.Descripcion,
		EsServicio:      req.EsServicio,
		CostoMateriales: req.CostoMateriales,
		CostoManoObra:   req.CostoManoObra,
		MargenPct:       req.MargenPct,
		PrecioVenta:     calcularPrecioVenta(req.CostoMateriales, req.CostoManoObra, req.MargenPct),
		Activo:          true,
	}
	if req.CostoTercerosID != nil && *req.CostoTercerosID != "" {
		costoID, err := uuid.Parse(*req.CostoTercerosID)
		if err != nil {
			return nil, ErrCostoTercerosInvalido
		}
		if _, err := s.repo.FindCostoTercerosByID(ctx, costoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCostoTercerosInvalido
			}
			return nil, err
		}
		producto.CostoTercerosID = &costoID
	}

	// Services consume no raw materials.
	var links []model.ProductoMaterial
	if !req.EsServicio {
		for _, mp := range req.Materiales {
			materialID, err := uuid.Parse(mp.MaterialID)
			if err != nil {
				return nil, ErrMaterialNoEncontrado
			}
			if _, err := s.materiales.FindByID(ctx, materialID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrMaterialNoEncontrado
				}
				return nil, err
			}
			links = append(links, model.ProductoMaterial{MaterialID: materialID, Cantidad: mp.Cantidad})
		}
	}

	err := runTx(s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, producto); err != nil {
			return err
		}
		for i := range links {
			links[i].ProductoID = producto.ID
			if err := s.repo.CreateMaterialLinkTx(tx, &links[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	producto.Materiales = links

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoCreacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "producto",
		EntidadID:  producto.ID.String(),
		After: map[string]string{
			"nombre":       producto.Nombre,
			"precio_venta": producto.PrecioVenta.StringFixed(2),
		},
		Exito: true,
	})

	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Obtener(ctx context.Context, id string) (*dto.ProductoResponse, error) {
	producto, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id string, req dto.ActualizarProductoRequest, actor Actor) (*dto.ProductoResponse, error) {
	producto, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}

	precioAnterior := producto.PrecioVenta

	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.CostoMateriales != nil {
		producto.CostoMateriales = *req.CostoMateriales
	}
	if req.CostoManoObra != nil {
		producto.CostoManoObra = *req.CostoManoObra
	}
	if req.MargenPct != nil {
		producto.MargenPct = *req.MargenPct
	}
	if req.CostoTercerosID != nil {
		if *req.CostoTercerosID == "" {
			producto.CostoTercerosID = nil
		} else {
			costoID, err := uuid.Parse(*req.CostoTercerosID)
			if err != nil {
				return nil, ErrCostoTercerosInvalido
			}
			if _, err := s.repo.FindCostoTercerosByID(ctx, costoID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrCostoTercerosInvalido
				}
				return nil, err
			}
			producto.CostoTercerosID = &costoID
		}
	}

	// Any cost or margin change recomputes the sale price.
	producto.PrecioVenta = calcularPrecioVenta(producto.CostoMateriales, producto.CostoManoObra, producto.MargenPct)

	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoActualizacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "producto",
		EntidadID:  producto.ID.String(),
		Before:     map[string]string{"precio_venta": precioAnterior.StringFixed(2)},
		After:      map[string]string{"precio_venta": producto.PrecioVenta.StringFixed(2)},
		Exito:      true,
	})

	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Desactivar(ctx context.Context, id string, actor Actor) error {
	producto, err := s.cargar(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, producto.ID); err != nil {
		return err
	}
	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoEliminacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "producto",
		EntidadID:  producto.ID.String(),
		Before:     map[string]string{"activo": "true"},
		After:      map[string]string{"activo": "false"},
		Exito:      true,
	})
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id string, actor Actor) error {
	producto, err := s.cargar(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Reactivar(ctx, producto.ID); err != nil {
		return err
	}
	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoActualizacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "producto",
		EntidadID:  producto.ID.String(),
		Before:     map[string]string{"activo": "false"},
		After:      map[string]string{"activo": "true"},
		Exito:      true,
	})
	return nil
}

func (s *productoService) CrearCostoTerceros(ctx context.Context, req dto.CrearCostoTercerosRequest, actor Actor) (*dto.CostoTercerosResponse, error) {
	inicio, err := parseFechaPtr(req.FechaInicio)
	if err != nil {
		return nil, errDatos("fecha_inicio inválida")
	}
	fin, err := parseFechaPtr(req.FechaFin)
	if err != nil {
		return nil, errDatos("fecha_fin inválida")
	}
	costo := &model.CostoTerceros{
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
		FechaInicio: inicio,
		FechaFin:    fin,
	}
	if err := s.repo.CreateCostoTerceros(ctx, costo); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoCreacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "costo_terceros",
		EntidadID:  costo.ID.String(),
		After:      map[string]string{"descripcion": costo.Descripcion, "monto": costo.Monto.StringFixed(2)},
		Exito:      true,
	})

	resp := costoTercerosToResponse(costo)
	return &resp, nil
}

func (s *productoService) ListarCostosTerceros(ctx context.Context) ([]dto.CostoTercerosResponse, error) {
	costos, err := s.repo.ListCostosTerceros(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CostoTercerosResponse, 0, len(costos))
	for i := range costos {
		resp = append(resp, costoTercerosToResponse(&costos[i]))
	}
	return resp, nil
}

func (s *productoService) cargar(ctx context.Context, id string) (*model.Producto, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	producto, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	return producto, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:              p.ID.String(),
		Nombre:          p.Nombre,
		Descripcion:     p.Descripcion,
		EsServicio:      p.EsServicio,
		CostoMateriales: p.CostoMateriales,
		CostoManoObra:   p.CostoManoObra,
		MargenPct:       p.MargenPct,
		PrecioVenta:     p.PrecioVenta,
		Activo:          p.Activo,
	}
	if p.CostoTercerosID != nil {
		s := p.CostoTercerosID.String()
		resp.CostoTercerosID = &s
	}
	for _, link := range p.Materiales {
		mr := dto.MaterialProductoResponse{
			MaterialID: link.MaterialID.String(),
			Cantidad:   link.Cantidad,
		}
		if link.Material != nil {
			mr.NombreMaterial = link.Material.NombreMaterial
		}
		resp.Materiales = append(resp.Materiales, mr)
	}
	return resp
}

func costoTercerosToResponse(c *model.CostoTerceros) dto.CostoTercerosResponse {
	return dto.CostoTercerosResponse{
		ID:          c.ID.String(),
		Descripcion: c.Descripcion,
		Monto:       c.Monto,
		FechaInicio: fechaPtr(c.FechaInicio),
		FechaFin:    fechaPtr(c.FechaFin),
	}
}
