// Package repotest provides in-memory repositories for unit tests of the
// service and HTTP layers. They mirror the error contract of the GORM
// implementations: misses return gorm.ErrRecordNotFound and duplicate
// emails gorm.ErrDuplicatedKey.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Usuarios ─────────────────────────────────────────────────────────────────

type Usuarios struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*Usuarios)(nil)

func NewUsuarios() *Usuarios {
	return &Usuarios{users: make(map[uuid.UUID]*model.Usuario)}
}

func (r *Usuarios) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Rol == "" {
		u.Rol = model.RolUsuario
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *Usuarios) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Usuarios) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Usuarios) UpdateImagenPerfil(_ context.Context, id uuid.UUID, path string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.ImagenPerfil = &path
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (r *Usuarios) Upsert(ctx context.Context, u *model.Usuario) error {
	r.mu.Lock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			existing.Nombre = u.Nombre
			existing.PasswordHash = u.PasswordHash
			existing.Rol = u.Rol
			existing.UpdatedAt = time.Now()
			r.mu.Unlock()
			return nil
		}
	}
	r.mu.Unlock()
	return r.Create(ctx, u)
}

// Len returns the number of stored users.
func (r *Usuarios) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// ── Productos ────────────────────────────────────────────────────────────────

type Productos struct {
	mu        sync.Mutex
	productos map[uuid.UUID]model.Producto
	seq       time.Time
}

var _ repository.ProductoRepository = (*Productos)(nil)

func NewProductos() *Productos {
	return &Productos{
		productos: make(map[uuid.UUID]model.Producto),
		seq:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Create stamps CreatedAt one second after the previous insert so ordering
// by createdAt is deterministic.
func (r *Productos) Create(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.seq = r.seq.Add(time.Second)
	p.CreatedAt, p.UpdatedAt = r.seq, r.seq
	r.productos[p.ID] = *p
	return nil
}

func (r *Productos) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func contiene(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *Productos) filter(c repository.ProductoCriteria) []model.Producto {
	out := []model.Producto{}
	for _, p := range r.productos {
		switch {
		case c.Categoria != "" && p.Categoria != c.Categoria,
			c.Marca != "" && p.Marca != c.Marca,
			c.MarcaContiene != "" && !contiene(p.Marca, c.MarcaContiene),
			c.ModeloContiene != "" && !contiene(p.Modelo, c.ModeloContiene),
			c.PrecioMin != nil && p.Precio.LessThan(*c.PrecioMin),
			c.PrecioMax != nil && p.Precio.GreaterThan(*c.PrecioMax):
			continue
		}
		out = append(out, p)
	}
	return out
}

func compare(a, b model.Producto, col string) int {
	switch col {
	case "marca":
		return strings.Compare(a.Marca, b.Marca)
	case "modelo":
		return strings.Compare(a.Modelo, b.Modelo)
	case "categoria":
		return strings.Compare(a.Categoria, b.Categoria)
	case "stock":
		return a.Stock - b.Stock
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return a.Precio.Cmp(b.Precio)
	}
}

func (r *Productos) Find(_ context.Context, c repository.ProductoCriteria) ([]model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	col, ok := repository.ColumnasOrdenables[c.OrdenarPor]
	if !ok {
		col = "precio"
	}
	out := r.filter(c)
	sort.Slice(out, func(i, j int) bool {
		cmp := compare(out[i], out[j], col)
		if c.Descendente {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	if c.Limit > 0 {
		if c.Offset >= len(out) {
			return []model.Producto{}, nil
		}
		end := c.Offset + c.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[c.Offset:end]
	}
	return out, nil
}

func (r *Productos) Count(_ context.Context, c repository.ProductoCriteria) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filter(c))), nil
}

func (r *Productos) Update(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.productos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.UpdatedAt = time.Now()
	r.productos[p.ID] = *p
	return nil
}

func (r *Productos) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.productos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.productos, id)
	return nil
}

func (r *Productos) ReplaceAll(ctx context.Context, ps []model.Producto) error {
	r.mu.Lock()
	r.productos = make(map[uuid.UUID]model.Producto)
	r.mu.Unlock()
	for i := range ps {
		if err := r.Create(ctx, &ps[i]); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of stored products.
func (r *Productos) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.productos)
}

// ── Ordenes ──────────────────────────────────────────────────────────────────

type Ordenes struct {
	mu      sync.Mutex
	ordenes []model.Orden
	seq     time.Time
}

var _ repository.OrdenRepository = (*Ordenes)(nil)

func NewOrdenes() *Ordenes {
	return &Ordenes{seq: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *Ordenes) Create(_ context.Context, o *model.Orden) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.seq = r.seq.Add(time.Second)
	o.CreatedAt = r.seq
	r.ordenes = append(r.ordenes, *o)
	return nil
}

func (r *Ordenes) FindByID(_ context.Context, id uuid.UUID) (*model.Orden, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.ordenes {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Ordenes) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.Orden, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Orden{}
	for _, o := range r.ordenes {
		if o.UsuarioID == usuarioID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
