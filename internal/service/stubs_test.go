package service

import (
	"context"
	"errors"

	"cataldo/internal/dto"
	"cataldo/internal/model"
	"cataldo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubAudit captures audit events for assertion.
type stubAudit struct {
	events []AuditEvent
}

func (a *stubAudit) LogEvent(_ context.Context, ev AuditEvent) { a.events = append(a.events, ev) }
func (a *stubAudit) GetSystemLogs(_ context.Context, _ dto.AuditFilter) (*dto.AuditListResponse, error) {
	return &dto.AuditListResponse{}, nil
}
func (a *stubAudit) GetUserActivityLog(_ context.Context, _ string, _ dto.AuditFilter) (*dto.AuditListResponse, error) {
	return &dto.AuditListResponse{}, nil
}
func (a *stubAudit) GetFailedLoginAttempts(_ context.Context, _ dto.AuditFilter) (*dto.AuditListResponse, error) {
	return &dto.AuditListResponse{}, nil
}
func (a *stubAudit) GetEntityHistory(_ context.Context, _, _ string) ([]dto.AuditLogResponse, error) {
	return nil, nil
}

func (a *stubAudit) ultimo() *AuditEvent {
	if len(a.events) == 0 {
		return nil
	}
	return &a.events[len(a.events)-1]
}

var _ AuditService = (*stubAudit)(nil)

// stubUsuarioRepo is an in-memory UsuarioRepository.
type stubUsuarioRepo struct {
	usuarios   map[uuid.UUID]*model.Usuario
	cumpleanos []model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) agregar(u *model.Usuario) *model.Usuario {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.agregar(u)
	return nil
}
func (r *stubUsuarioRepo) CreateTx(_ *gorm.DB, u *model.Usuario) error {
	r.agregar(u)
	return nil
}
func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubUsuarioRepo) FindByRut(_ context.Context, rut string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Rut == rut {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}
func (r *stubUsuarioRepo) List(_ context.Context, _ dto.UsuarioFilter) ([]model.Usuario, int64, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}
func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}
func (r *stubUsuarioRepo) UpdateTx(_ *gorm.DB, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}
func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}
func (r *stubUsuarioRepo) CreateClienteTx(_ *gorm.DB, _ *model.Cliente) error        { return nil }
func (r *stubUsuarioRepo) UpsertClienteTx(_ *gorm.DB, _ *model.Cliente) error        { return nil }
func (r *stubUsuarioRepo) CreatePersonaTiendaTx(_ *gorm.DB, _ *model.PersonaTienda) error { return nil }
func (r *stubUsuarioRepo) UpsertPersonaTiendaTx(_ *gorm.DB, _ *model.PersonaTienda) error { return nil }
func (r *stubUsuarioRepo) FindClienteByUsuarioID(_ context.Context, _ uuid.UUID) (*model.Cliente, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubUsuarioRepo) ListClientesCumpleanos(_ context.Context, _, _ int) ([]model.Usuario, error) {
	return r.cumpleanos, nil
}
func (r *stubUsuarioRepo) ListClientesCumpleanosRango(_ context.Context, _ int) ([]model.Usuario, error) {
	return r.cumpleanos, nil
}
func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// stubProductoRepo is an in-memory ProductoRepository.
type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	links     int64
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) agregar(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.agregar(p)
	return nil
}
func (r *stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	r.agregar(p)
	return nil
}
func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	return nil, 0, nil
}
func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}
func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}
func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}
func (r *stubProductoRepo) CreateMaterialLinkTx(_ *gorm.DB, _ *model.ProductoMaterial) error {
	return nil
}
func (r *stubProductoRepo) CountLinksByMaterial(_ context.Context, _ uuid.UUID) (int64, error) {
	return r.links, nil
}
func (r *stubProductoRepo) CreateCostoTerceros(_ context.Context, _ *model.CostoTerceros) error {
	return nil
}
func (r *stubProductoRepo) FindCostoTercerosByID(_ context.Context, _ uuid.UUID) (*model.CostoTerceros, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubProductoRepo) ListCostosTerceros(_ context.Context) ([]model.CostoTerceros, error) {
	return nil, nil
}
func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// stubOperacionRepo is an in-memory OperacionRepository that also captures
// the historial rows appended by transitions.
type stubOperacionRepo struct {
	operaciones map[uuid.UUID]*model.Operacion
	historial   []model.HistorialOperacion
}

func newStubOperacionRepo() *stubOperacionRepo {
	return &stubOperacionRepo{operaciones: make(map[uuid.UUID]*model.Operacion)}
}

func (r *stubOperacionRepo) CreateTx(_ *gorm.DB, o *model.Operacion) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.operaciones[o.ID] = o
	return nil
}
func (r *stubOperacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Operacion, error) {
	o, ok := r.operaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}
func (r *stubOperacionRepo) List(_ context.Context, filter dto.OperacionFilter) ([]model.Operacion, int64, error) {
	out := []model.Operacion{}
	for _, o := range r.operaciones {
		if filter.ClienteID != "" && o.ClienteID.String() != filter.ClienteID {
			continue
		}
		if filter.Estado != "" && o.Estado != filter.Estado {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}
func (r *stubOperacionRepo) UpdateTx(_ *gorm.DB, o *model.Operacion) error {
	r.operaciones[o.ID] = o
	return nil
}
func (r *stubOperacionRepo) Update(_ context.Context, o *model.Operacion) error {
	r.operaciones[o.ID] = o
	return nil
}
func (r *stubOperacionRepo) AppendHistorialTx(_ *gorm.DB, h *model.HistorialOperacion) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.historial = append(r.historial, *h)
	return nil
}
func (r *stubOperacionRepo) CountHistorial(_ context.Context, operacionID uuid.UUID) (int64, error) {
	var n int64
	for _, h := range r.historial {
		if h.OperacionID == operacionID {
			n++
		}
	}
	return n, nil
}
func (r *stubOperacionRepo) DB() *gorm.DB { return nil }

var _ repository.OperacionRepository = (*stubOperacionRepo)(nil)

// stubMaterialRepo is an in-memory MaterialRepository.
type stubMaterialRepo struct {
	materiales map[uuid.UUID]*model.Material
}

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{materiales: make(map[uuid.UUID]*model.Material)}
}

func (r *stubMaterialRepo) agregar(m *model.Material) *model.Material {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.materiales[m.ID] = m
	return m
}

func (r *stubMaterialRepo) Create(_ context.Context, m *model.Material) error {
	r.agregar(m)
	return nil
}
func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Material, error) {
	m, ok := r.materiales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}
func (r *stubMaterialRepo) List(_ context.Context, _ dto.MaterialFilter) ([]model.Material, int64, error) {
	out, err := r.ListAll(context.Background())
	return out, int64(len(out)), err
}
func (r *stubMaterialRepo) ListAll(_ context.Context) ([]model.Material, error) {
	out := make([]model.Material, 0, len(r.materiales))
	for _, m := range r.materiales {
		out = append(out, *m)
	}
	return out, nil
}
func (r *stubMaterialRepo) Update(_ context.Context, m *model.Material) error {
	r.materiales[m.ID] = m
	return nil
}
func (r *stubMaterialRepo) UpdateExistencia(_ context.Context, id uuid.UUID, nueva int) error {
	m, ok := r.materiales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.ExistenciaMaterial = nueva
	return nil
}
func (r *stubMaterialRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	delete(r.materiales, id)
	return nil
}

var _ repository.MaterialRepository = (*stubMaterialRepo)(nil)

// stubCorreoRepo records outbound email rows.
type stubCorreoRepo struct {
	correos []*model.Correo
}

func (r *stubCorreoRepo) Create(_ context.Context, c *model.Correo) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.correos = append(r.correos, c)
	return nil
}
func (r *stubCorreoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Correo, error) {
	for _, c := range r.correos {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubCorreoRepo) List(_ context.Context, _ dto.CorreoFilter) ([]model.Correo, int64, error) {
	out := make([]model.Correo, 0, len(r.correos))
	for _, c := range r.correos {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}
func (r *stubCorreoRepo) Update(_ context.Context, c *model.Correo) error { return nil }
func (r *stubCorreoRepo) Estadisticas(_ context.Context) (int64, int64, int64, int64, error) {
	return int64(len(r.correos)), 0, 0, 0, nil
}
func (r *stubCorreoRepo) ListFallidosReintentables(_ context.Context, _, _ int) ([]model.Correo, error) {
	return nil, nil
}

var _ repository.CorreoRepository = (*stubCorreoRepo)(nil)

// stubEncuestaRepo is an in-memory EncuestaRepository.
type stubEncuestaRepo struct {
	porOperacion map[uuid.UUID]*model.Encuesta
}

func newStubEncuestaRepo() *stubEncuestaRepo {
	return &stubEncuestaRepo{porOperacion: make(map[uuid.UUID]*model.Encuesta)}
}

func (r *stubEncuestaRepo) Create(_ context.Context, e *model.Encuesta) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.porOperacion[e.OperacionID] = e
	return nil
}
func (r *stubEncuestaRepo) FindByOperacionID(_ context.Context, operacionID uuid.UUID) (*model.Encuesta, error) {
	e, ok := r.porOperacion[operacionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}
func (r *stubEncuestaRepo) List(_ context.Context) ([]model.Encuesta, error) {
	out := make([]model.Encuesta, 0, len(r.porOperacion))
	for _, e := range r.porOperacion {
		out = append(out, *e)
	}
	return out, nil
}
func (r *stubEncuestaRepo) Promedios(_ context.Context) (int64, float64, float64, error) {
	return int64(len(r.porOperacion)), 0, 0, nil
}

var _ repository.EncuestaRepository = (*stubEncuestaRepo)(nil)

// stubMailer records sends and optionally fails every one of them.
type stubMailer struct {
	falla    bool
	enviados []string
}

func (m *stubMailer) Enviar(to, _, _ string) error {
	if m.falla {
		return errors.New("smtp: connection refused")
	}
	m.enviados = append(m.enviados, to)
	return nil
}

var _ Mailer = (*stubMailer)(nil)
