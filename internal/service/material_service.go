package service

import (
	"context"
	"errors"
	"strconv"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMaterialNoEncontrado = errors.New("material no encontrado")
	ErrStockNegativo        = errors.New("la operación dejaría el stock en negativo")
	ErrMaterialReferenciado = errors.New("el material está referenciado por productos y no puede eliminarse")
)

// ClasificarAlerta derives the stock alert tier. Boundaries are inclusive:
// zero is critico, at or below the minimum is bajo, at or below 1.5x the
// minimum is medio, anything above is normal.
func ClasificarAlerta(existencia, stockMinimo int) string {
	switch {
	case existencia == 0:
		return model.AlertaCritico
	case existencia <= stockMinimo:
		return model.AlertaBajo
	case existencia*2 <= stockMinimo*3:
		return model.AlertaMedio
	default:
		return model.AlertaNormal
	}
}

type MaterialService interface {
	Crear(ctx context.Context, req dto.CrearMaterialRequest, actor Actor) (*dto.MaterialResponse, error)
	Obtener(ctx context.Context, id string) (*dto.MaterialResponse, error)
	Listar(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarMaterialRequest, actor Actor) (*dto.MaterialResponse, error)
	ActualizarStock(ctx context.Context, id string, req dto.ActualizarStockRequest, actor Actor) (*dto.MaterialResponse, error)
	ObtenerAlertas(ctx context.Context) (*dto.AlertaStockResponse, error)
	// Eliminar removes the row physically. It fails while any product
	// references the material.
	Eliminar(ctx context.Context, id string, actor Actor) error
}

type materialService struct {
	repo      repository.MaterialRepository
	productos repository.ProductoRepository
	audit     AuditService
}

func NewMaterialService(repo repository.MaterialRepository, productos repository.ProductoRepository, audit AuditService) MaterialService {
	return &materialService{repo: repo, productos: productos, audit: audit}
}

func (s *materialService) Crear(ctx context.Context, req dto.CrearMaterialRequest, actor Actor) (*dto.MaterialResponse, error) {
	material := &model.Material{
		NombreMaterial:     req.NombreMaterial,
		Descripcion:        req.Descripcion,
		ExistenciaMaterial: req.Existencia,
		StockMinimo:        req.StockMinimo,
		CostoUnitario:      req.CostoUnitario,
		Activo:             true,
	}
	if req.UnidadMedida != "" {
		material.UnidadMedida = req.UnidadMedida
	} else {
		material.UnidadMedida = "unidad"
	}
	if req.ProveedorID != nil && *req.ProveedorID != "" {
		proveedorID, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, errDatos("proveedor_id inválido")
		}
		material.ProveedorID = &proveedorID
	}

	if err := s.repo.Create(ctx, material); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoCreacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "material",
		EntidadID:  material.ID.String(),
		After:      map[string]string{"nombre": material.NombreMaterial, "existencia": strconv.Itoa(material.ExistenciaMaterial)},
		Exito:      true,
	})

	resp := materialToResponse(material)
	return &resp, nil
}

func (s *materialService) Obtener(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := materialToResponse(material)
	return &resp, nil
}

func (s *materialService) Listar(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	materiales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MaterialResponse, 0, len(materiales))
	for i := range materiales {
		data = append(data, materialToResponse(&materiales[i]))
	}
	return &dto.MaterialListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *materialService) Actualizar(ctx context.Context, id string, req dto.ActualizarMaterialRequest, actor Actor) (*dto.MaterialResponse, error) {
	material, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NombreMaterial != nil {
		material.NombreMaterial = *req.NombreMaterial
	}
	if req.Descripcion != nil {
		material.Descripcion = req.Descripcion
	}
	if req.StockMinimo != nil {
		material.StockMinimo = *req.StockMinimo
	}
	if req.UnidadMedida != nil && *req.UnidadMedida != "" {
		material.UnidadMedida = *req.UnidadMedida
	}
	if req.CostoUnitario != nil {
		material.CostoUnitario = *req.CostoUnitario
	}
	if req.ProveedorID != nil {
		if *req.ProveedorID == "" {
			material.ProveedorID = nil
		} else {
			proveedorID, err := uuid.Parse(*req.ProveedorID)
			if err != nil {
				return nil, errDatos("proveedor_id inválido")
			}
			material.ProveedorID = &proveedorID
		}
	}

	if err := s.repo.Update(ctx, material); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoActualizacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "material",
		EntidadID:  material.ID.String(),
		After:      map[string]string{"nombre": material.NombreMaterial},
		Exito:      true,
	})

	resp := materialToResponse(material)
	return &resp, nil
}

func (s *materialService) ActualizarStock(ctx context.Context, id string, req dto.ActualizarStockRequest, actor Actor) (*dto.MaterialResponse, error) {
	material, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}

	anterior := material.ExistenciaMaterial
	var nueva int
	switch req.Operacion {
	case "add":
		nueva = anterior + req.Cantidad
	case "subtract":
		nueva = anterior - req.Cantidad
		if nueva < 0 {
			return nil, ErrStockNegativo
		}
	case "set":
		nueva = req.Cantidad
	default:
		return nil, errDatos("operación de stock no reconocida")
	}

	if err := s.repo.UpdateExistencia(ctx, material.ID, nueva); err != nil {
		return nil, err
	}
	material.ExistenciaMaterial = nueva

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoAjusteStock,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "material",
		EntidadID:  material.ID.String(),
		Before:     map[string]string{"existencia": strconv.Itoa(anterior)},
		After: map[string]string{
			"existencia": strconv.Itoa(nueva),
			"operacion":  req.Operacion,
			"motivo":     req.Motivo,
		},
		Exito: true,
	})

	resp := materialToResponse(material)
	return &resp, nil
}

func (s *materialService) ObtenerAlertas(ctx context.Context) (*dto.AlertaStockResponse, error) {
	materiales, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.AlertaStockResponse{
		Criticos: []dto.MaterialResponse{},
		Bajos:    []dto.MaterialResponse{},
		Medios:   []dto.MaterialResponse{},
	}
	for i := range materiales {
		m := materialToResponse(&materiales[i])
		switch m.NivelAlerta {
		case model.AlertaCritico:
			resp.Criticos = append(resp.Criticos, m)
		case model.AlertaBajo:
			resp.Bajos = append(resp.Bajos, m)
		case model.AlertaMedio:
			resp.Medios = append(resp.Medios, m)
		}
	}
	resp.Total = len(resp.Criticos) + len(resp.Bajos) + len(resp.Medios)
	return resp, nil
}

func (s *materialService) Eliminar(ctx context.Context, id string, actor Actor) error {
	material, err := s.cargar(ctx, id)
	if err != nil {
		return err
	}

	links, err := s.productos.CountLinksByMaterial(ctx, material.ID)
	if err != nil {
		return err
	}
	if links > 0 {
		return ErrMaterialReferenciado
	}

	if err := s.repo.HardDelete(ctx, material.ID); err != nil {
		return err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoEliminacion,
		Severidad:  model.SeveridadWarning,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "material",
		EntidadID:  material.ID.String(),
		Before:     map[string]string{"nombre": material.NombreMaterial, "existencia": strconv.Itoa(material.ExistenciaMaterial)},
		Exito:      true,
	})
	return nil
}

func (s *materialService) cargar(ctx context.Context, id string) (*model.Material, error) {
	mid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrMaterialNoEncontrado
	}
	material, err := s.repo.FindByID(ctx, mid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNoEncontrado
		}
		return nil, err
	}
	return material, nil
}

func materialToResponse(m *model.Material) dto.MaterialResponse {
	resp := dto.MaterialResponse{
		ID:             m.ID.String(),
		NombreMaterial: m.NombreMaterial,
		Descripcion:    m.Descripcion,
		Existencia:     m.ExistenciaMaterial,
		StockMinimo:    m.StockMinimo,
		UnidadMedida:   m.UnidadMedida,
		CostoUnitario:  m.CostoUnitario,
		NivelAlerta:    ClasificarAlerta(m.ExistenciaMaterial, m.StockMinimo),
		Activo:         m.Activo,
	}
	if m.ProveedorID != nil {
		s := m.ProveedorID.String()
		resp.ProveedorID = &s
	}
	if m.Proveedor != nil {
		resp.ProveedorNombre = m.Proveedor.RazonSocial
	}
	return resp
}
