package repository

import (
	"context"
	"strings"

	"github.com/Bastianbone18/trasera/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoCriteria is the store-level form of every catalog query.
// Exact and substring matches are separate fields so callers choose the
// semantics; zero values mean "no filter". Limit 0 returns every row.
type ProductoCriteria struct {
	Categoria      string
	Marca          string
	MarcaContiene  string
	ModeloContiene string
	PrecioMin      *decimal.Decimal
	PrecioMax      *decimal.Decimal

	OrdenarPor  string // column name, see ColumnasOrdenables
	Descendente bool
	Offset      int
	Limit       int
}

// ColumnasOrdenables maps the public sort keys to their columns.
var ColumnasOrdenables = map[string]string{
	"precio":    "precio",
	"marca":     "marca",
	"modelo":    "modelo",
	"categoria": "categoria",
	"stock":     "stock",
	"createdAt": "created_at",
}

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// so they can be unit tested with in-memory stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	Find(ctx context.Context, c ProductoCriteria) ([]model.Producto, error)
	Count(ctx context.Context, c ProductoCriteria) (int64, error)
	Update(ctx context.Context, p *model.Producto) error
	// Delete removes the row and returns gorm.ErrRecordNotFound when nothing matched.
	Delete(ctx context.Context, id uuid.UUID) error
	// ReplaceAll empties the catalog and inserts ps in one transaction.
	ReplaceAll(ctx context.Context, ps []model.Producto) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) where(ctx context.Context, c ProductoCriteria) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if c.Categoria != "" {
		q = q.Where("categoria = ?", c.Categoria)
	}
	if c.Marca != "" {
		q = q.Where("marca = ?", c.Marca)
	}
	if c.MarcaContiene != "" {
		q = q.Where("marca ILIKE ?", likePattern(c.MarcaContiene))
	}
	if c.ModeloContiene != "" {
		q = q.Where("modelo ILIKE ?", likePattern(c.ModeloContiene))
	}
	if c.PrecioMin != nil {
		q = q.Where("precio >= ?", *c.PrecioMin)
	}
	if c.PrecioMax != nil {
		q = q.Where("precio <= ?", *c.PrecioMax)
	}
	return q
}

func (r *productoRepo) Find(ctx context.Context, c ProductoCriteria) ([]model.Producto, error) {
	col, ok := ColumnasOrdenables[c.OrdenarPor]
	if !ok {
		col = "precio"
	}
	q := r.where(ctx, c).
		Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: c.Descendente}).
		Order("id")
	if c.Limit > 0 {
		q = q.Limit(c.Limit).Offset(c.Offset)
	}

	productos := []model.Producto{}
	err := q.Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Count(ctx context.Context, c ProductoCriteria) (int64, error) {
	var total int64
	err := r.where(ctx, c).Count(&total).Error
	return total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productoRepo) ReplaceAll(ctx context.Context, ps []model.Producto) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Producto{}).Error; err != nil {
			return err
		}
		if len(ps) == 0 {
			return nil
		}
		return tx.CreateInBatches(ps, 100).Error
	})
}

// likePattern escapes LIKE wildcards so user input only matches literally.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
