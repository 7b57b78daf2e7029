package repository

import (
	"context"

	"cataldo/internal/dto"
	"cataldo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioRepository defines the data access contract for users and their
// profile extensions. Services depend on this interface, not on the concrete
// GORM implementation, enabling clean unit testing via stubs.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	CreateTx(tx *gorm.DB, u *model.Usuario) error
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByRut(ctx context.Context, rut string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	List(ctx context.Context, filter dto.UsuarioFilter) ([]model.Usuario, int64, error)
	Update(ctx context.Context, u *model.Usuario) error
	UpdateTx(tx *gorm.DB, u *model.Usuario) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Profile extensions — created/updated inside the same transaction as
	// the user row.
	CreateClienteTx(tx *gorm.DB, c *model.Cliente) error
	UpsertClienteTx(tx *gorm.DB, c *model.Cliente) error
	CreatePersonaTiendaTx(tx *gorm.DB, p *model.PersonaTienda) error
	UpsertPersonaTiendaTx(tx *gorm.DB, p *model.PersonaTienda) error
	FindClienteByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Cliente, error)

	// Birthday queries. mes/dia are in the business timezone.
	ListClientesCumpleanos(ctx context.Context, mes, dia int) ([]model.Usuario, error)
	ListClientesCumpleanosRango(ctx context.Context, dias int) ([]model.Usuario, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) DB() *gorm.DB { return r.db }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) CreateTx(tx *gorm.DB, u *model.Usuario) error {
	return tx.Create(u).Error
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("PersonaTienda").
		Where("LOWER(email) = LOWER(?)", email).
		First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByRut(ctx context.Context, rut string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("rut = ?", rut).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("PersonaTienda").
		First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context, filter dto.UsuarioFilter) ([]model.Usuario, int64, error) {
	var usuarios []model.Usuario
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Usuario{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Rol != "" {
		q = q.Where("rol = ?", filter.Rol)
	}
	if filter.Email != "" {
		q = q.Where("LOWER(email) = LOWER(?)", filter.Email)
	}
	if filter.Rut != "" {
		q = q.Where("rut = ?", filter.Rut)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("PersonaTienda").
		Order("nombre_completo ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&usuarios).Error
	return usuarios, total, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) UpdateTx(tx *gorm.DB, u *model.Usuario) error {
	return tx.Save(u).Error
}

func (r *usuarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).
		Updates(map[string]interface{}{"activo": false, "rol": model.RolBloqueado}).Error
}

func (r *usuarioRepo) CreateClienteTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Create(c).Error
}

func (r *usuarioRepo) UpsertClienteTx(tx *gorm.DB, c *model.Cliente) error {
	var existente model.Cliente
	err := tx.Where("usuario_id = ?", c.UsuarioID).First(&existente).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(c).Error
	}
	if err != nil {
		return err
	}
	c.ID = existente.ID
	c.CreatedAt = existente.CreatedAt
	return tx.Save(c).Error
}

func (r *usuarioRepo) CreatePersonaTiendaTx(tx *gorm.DB, p *model.PersonaTienda) error {
	return tx.Create(p).Error
}

func (r *usuarioRepo) UpsertPersonaTiendaTx(tx *gorm.DB, p *model.PersonaTienda) error {
	var existente model.PersonaTienda
	err := tx.Where("usuario_id = ?", p.UsuarioID).First(&existente).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(p).Error
	}
	if err != nil {
		return err
	}
	p.ID = existente.ID
	p.CreatedAt = existente.CreatedAt
	return tx.Save(p).Error
}

func (r *usuarioRepo) FindClienteByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).First(&c).Error
	return &c, err
}

func (r *usuarioRepo) ListClientesCumpleanos(ctx context.Context, mes, dia int) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).
		Joins("JOIN clientes ON clientes.usuario_id = usuarios.id").
		Where("usuarios.activo = true AND usuarios.rol = ?", model.RolCliente).
		Where("clientes.fecha_nacimiento IS NOT NULL").
		Where("EXTRACT(MONTH FROM clientes.fecha_nacimiento) = ? AND EXTRACT(DAY FROM clientes.fecha_nacimiento) = ?", mes, dia).
		Preload("Cliente").
		Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) ListClientesCumpleanosRango(ctx context.Context, dias int) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	// Next-N-days window on (month, day), wrapping year boundaries via the
	// day-of-year distance modulo 365.
	err := r.db.WithContext(ctx).
		Joins("JOIN clientes ON clientes.usuario_id = usuarios.id").
		Where("usuarios.activo = true AND usuarios.rol = ?", model.RolCliente).
		Where("clientes.fecha_nacimiento IS NOT NULL").
		Where(`MOD(CAST(EXTRACT(DOY FROM clientes.fecha_nacimiento) - EXTRACT(DOY FROM CURRENT_DATE) + 365 AS INT), 365) BETWEEN 0 AND ?`, dias).
		Preload("Cliente").
		Find(&usuarios).Error
	return usuarios, err
}
