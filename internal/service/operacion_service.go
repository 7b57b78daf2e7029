package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOperacionNoEncontrada = errors.New("operación no encontrada")
	ErrClienteInvalido       = errors.New("el cliente indicado no existe o no tiene rol cliente")
	ErrProductoInactivo      = errors.New("la operación incluye un producto inactivo o inexistente")
	ErrEstadoInvalido        = errors.New("estado no reconocido")
	ErrMismoEstado           = errors.New("la operación ya está en ese estado")
	ErrOperacionAnulada      = errors.New("una operación anulada no admite cambios")
	ErrAbonoInvalido         = errors.New("el monto del abono debe ser mayor que cero")
	ErrAbonoExcedeCosto      = errors.New("el abono excede el saldo pendiente de la operación")
	ErrSinAccesoOperacion    = errors.New("sin acceso a esta operación")
)

// Actor identifies the authenticated caller for audit and ownership checks.
type Actor struct {
	UserID string
	Email  string
	Rol    model.Rol
	IP     string
}

type OperacionService interface {
	Crear(ctx context.Context, req dto.CrearOperacionRequest, actor Actor) (*dto.OperacionResponse, error)
	Obtener(ctx context.Context, id string, actor Actor) (*dto.OperacionResponse, error)
	Listar(ctx context.Context, filter dto.OperacionFilter) (*dto.OperacionListResponse, error)
	// MisOperaciones lists the orders belonging to the calling customer.
	MisOperaciones(ctx context.Context, actor Actor, filter dto.OperacionFilter) (*dto.OperacionListResponse, error)
	CambiarEstado(ctx context.Context, id string, req dto.CambiarEstadoRequest, actor Actor) (*dto.OperacionResponse, error)
	RegistrarAbono(ctx context.Context, id string, req dto.RegistrarAbonoRequest, actor Actor) (*dto.OperacionResponse, error)
	Anular(ctx context.Context, id string, req dto.AnularOperacionRequest, actor Actor) (*dto.OperacionResponse, error)
}

type operacionService struct {
	repo      repository.OperacionRepository
	usuarios  repository.UsuarioRepository
	productos repository.ProductoRepository
	audit     AuditService
}

func NewOperacionService(
	repo repository.OperacionRepository,
	usuarios repository.UsuarioRepository,
	productos repository.ProductoRepository,
	audit AuditService,
) OperacionService {
	return &operacionService{repo: repo, usuarios: usuarios, productos: productos, audit: audit}
}

func (s *operacionService) Crear(ctx context.Context, req dto.CrearOperacionRequest, actor Actor) (*dto.OperacionResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, ErrClienteInvalido
	}
	cliente, err := s.usuarios.FindByID(ctx, clienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteInvalido
		}
		return nil, err
	}
	if cliente.Rol != model.RolCliente || !cliente.Activo {
		return nil, ErrClienteInvalido
	}
	if len(req.Items) == 0 {
		return nil, errDatos("la operación requiere al menos un producto")
	}

	// Snapshot product name and price at creation time so later catalog
	// edits do not rewrite this order.
	items := make([]model.ProductoOperacion, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		productoID, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, ErrProductoInactivo
		}
		producto, err := s.productos.FindByID(ctx, productoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductoInactivo
			}
			return nil, err
		}
		if !producto.Activo {
			return nil, ErrProductoInactivo
		}
		linea := producto.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		items = append(items, model.ProductoOperacion{
			ProductoID:     producto.ID,
			NombreProducto: producto.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: producto.PrecioVenta,
			TotalLinea:     linea,
		})
		total = total.Add(linea)
	}

	operacion := &model.Operacion{
		ClienteID:      clienteID,
		Estado:         model.EstadoCotizacion,
		Descripcion:    req.Descripcion,
		CostoOperacion: total,
		CantidadAbono:  decimal.Zero,
		Items:          items,
	}

	err = runTx(s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, operacion); err != nil {
			return err
		}
		return s.repo.AppendHistorialTx(tx, &model.HistorialOperacion{
			OperacionID: operacion.ID,
			Estado:      model.EstadoCotizacion,
			ActorEmail:  &actor.Email,
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoCreacion,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "operacion",
		EntidadID:  operacion.ID.String(),
		After: map[string]string{
			"cliente_id":      clienteID.String(),
			"estado":          model.EstadoCotizacion,
			"costo_operacion": total.StringFixed(2),
		},
		Exito: true,
	})

	resp := operacionToResponse(operacion)
	resp.ClienteNombre = cliente.NombreCompleto
	return resp, nil
}

func (s *operacionService) Obtener(ctx context.Context, id string, actor Actor) (*dto.OperacionResponse, error) {
	operacion, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	// Staff sees every order; anyone below trabajador_tienda must own it.
	if !actor.Rol.AtLeast(model.RolTrabajadorTienda) && operacion.ClienteID.String() != actor.UserID {
		return nil, ErrSinAccesoOperacion
	}
	return operacionToResponse(operacion), nil
}

func (s *operacionService) Listar(ctx context.Context, filter dto.OperacionFilter) (*dto.OperacionListResponse, error) {
	normalizarFiltroOperacion(&filter)
	operaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return listaOperaciones(operaciones, total, filter), nil
}

func (s *operacionService) MisOperaciones(ctx context.Context, actor Actor, filter dto.OperacionFilter) (*dto.OperacionListResponse, error) {
	normalizarFiltroOperacion(&filter)
	filter.ClienteID = actor.UserID
	operaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return listaOperaciones(operaciones, total, filter), nil
}

func (s *operacionService) CambiarEstado(ctx context.Context, id string, req dto.CambiarEstadoRequest, actor Actor) (*dto.OperacionResponse, error) {
	if !model.EstadoValido(req.Estado) {
		return nil, ErrEstadoInvalido
	}
	if req.Estado == model.EstadoAnulada {
		// Voiding has its own endpoint with a mandatory reason and a
		// stricter role requirement.
		return nil, errDatos("para anular use el endpoint de anulación")
	}

	operacion, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if operacion.Estado == model.EstadoAnulada {
		return nil, ErrOperacionAnulada
	}
	if operacion.Estado == req.Estado {
		return nil, ErrMismoEstado
	}

	anterior := operacion.Estado
	operacion.Estado = req.Estado

	// La primera entrada a orden_trabajo marca el inicio del compromiso
	// de pago; la fecha no se mueve en transiciones posteriores.
	if req.Estado == model.EstadoOrdenTrabajo && operacion.FechaPrimerAbono == nil {
		now := time.Now()
		operacion.FechaPrimerAbono = &now
	}

	if err := s.transicionar(ctx, operacion, anterior, actor); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoCambioEstado,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "operacion",
		EntidadID:  operacion.ID.String(),
		Before:     map[string]string{"estado": anterior},
		After:      map[string]string{"estado": operacion.Estado},
		Exito:      true,
	})

	return operacionToResponse(operacion), nil
}

func (s *operacionService) RegistrarAbono(ctx context.Context, id string, req dto.RegistrarAbonoRequest, actor Actor) (*dto.OperacionResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, ErrAbonoInvalido
	}

	operacion, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if operacion.Estado == model.EstadoAnulada {
		return nil, ErrOperacionAnulada
	}
	if req.Monto.GreaterThan(operacion.SaldoPendiente()) {
		return nil, ErrAbonoExcedeCosto
	}

	abonoAnterior := operacion.CantidadAbono
	operacion.CantidadAbono = operacion.CantidadAbono.Add(req.Monto)
	if operacion.FechaPrimerAbono == nil {
		now := time.Now()
		operacion.FechaPrimerAbono = &now
	}

	if err := s.repo.Update(ctx, operacion); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoAbono,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "operacion",
		EntidadID:  operacion.ID.String(),
		Before:     map[string]string{"cantidad_abono": abonoAnterior.StringFixed(2)},
		After: map[string]string{
			"cantidad_abono":  operacion.CantidadAbono.StringFixed(2),
			"saldo_pendiente": operacion.SaldoPendiente().StringFixed(2),
		},
		Exito: true,
	})

	return operacionToResponse(operacion), nil
}

func (s *operacionService) Anular(ctx context.Context, id string, req dto.AnularOperacionRequest, actor Actor) (*dto.OperacionResponse, error) {
	if !actor.Rol.AtLeast(model.RolGerente) {
		return nil, fmt.Errorf("anular requiere rol gerente o superior: %w", ErrSinAccesoOperacion)
	}

	operacion, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if operacion.Estado == model.EstadoAnulada {
		return nil, ErrOperacionAnulada
	}

	anterior := operacion.Estado
	operacion.Estado = model.EstadoAnulada

	if err := s.transicionar(ctx, operacion, anterior, actor); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, AuditEvent{
		TipoEvento: model.EventoAnulacion,
		Severidad:  model.SeveridadWarning,
		ActorEmail: actor.Email,
		IP:         actor.IP,
		Entidad:    "operacion",
		EntidadID:  operacion.ID.String(),
		Before:     map[string]string{"estado": anterior},
		After:      map[string]string{"estado": model.EstadoAnulada, "motivo": req.Motivo},
		Exito:      true,
	})

	return operacionToResponse(operacion), nil
}

// transicionar persists the state change and its history row atomically.
func (s *operacionService) transicionar(ctx context.Context, o *model.Operacion, anterior string, actor Actor) error {
	return runTx(s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, o); err != nil {
			return err
		}
		h := &model.HistorialOperacion{
			OperacionID:    o.ID,
			Estado:         o.Estado,
			EstadoAnterior: &anterior,
			ActorEmail:     &actor.Email,
		}
		if err := s.repo.AppendHistorialTx(tx, h); err != nil {
			return err
		}
		o.Historial = append(o.Historial, *h)
		return nil
	})
}

func (s *operacionService) cargar(ctx context.Context, id string) (*model.Operacion, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOperacionNoEncontrada
	}
	operacion, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperacionNoEncontrada
		}
		return nil, err
	}
	return operacion, nil
}

func normalizarFiltroOperacion(filter *dto.OperacionFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
}

func listaOperaciones(operaciones []model.Operacion, total int64, filter dto.OperacionFilter) *dto.OperacionListResponse {
	data := make([]dto.OperacionResponse, 0, len(operaciones))
	for i := range operaciones {
		data = append(data, *operacionToResponse(&operaciones[i]))
	}
	return &dto.OperacionListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}
}

func operacionToResponse(o *model.Operacion) *dto.OperacionResponse {
	resp := &dto.OperacionResponse{
		ID:               o.ID.String(),
		ClienteID:        o.ClienteID.String(),
		Estado:           o.Estado,
		Descripcion:      o.Descripcion,
		CostoOperacion:   o.CostoOperacion,
		CantidadAbono:    o.CantidadAbono,
		SaldoPendiente:   o.SaldoPendiente(),
		FechaPrimerAbono: fechaPtr(o.FechaPrimerAbono),
		Items:            make([]dto.ItemOperacionResponse, 0, len(o.Items)),
		CreatedAt:        o.CreatedAt.Format(time.RFC3339),
	}
	if o.Cliente != nil {
		resp.ClienteNombre = o.Cliente.NombreCompleto
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, dto.ItemOperacionResponse{
			ProductoID:     item.ProductoID.String(),
			NombreProducto: item.NombreProducto,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			TotalLinea:     item.TotalLinea,
		})
	}
	for _, h := range o.Historial {
		resp.Historial = append(resp.Historial, dto.HistorialResponse{
			Estado:         h.Estado,
			EstadoAnterior: h.EstadoAnterior,
			ActorEmail:     h.ActorEmail,
			CreatedAt:      h.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
