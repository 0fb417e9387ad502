package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Bastianbone18/trasera/internal/apierror"
	"github.com/Bastianbone18/trasera/internal/dto"
	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const productoCacheTTL = 10 * time.Minute

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	BusquedaAvanzada(ctx context.Context, filter dto.BusquedaAvanzadaFilter) (*dto.BusquedaAvanzadaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	// Exportar returns the whole catalog ordered by categoria.
	Exportar(ctx context.Context) ([]model.Producto, error)
}

type productoService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client // nil disables the read-through cache
}

func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, rdb: rdb}
}

func mapProducto(p *model.Producto) dto.ProductoResponse {
	caracteristicas := p.Caracteristicas
	if caracteristicas == nil {
		caracteristicas = []string{}
	}
	return dto.ProductoResponse{
		ID:              p.ID.String(),
		Categoria:       p.Categoria,
		Marca:           p.Marca,
		Modelo:          p.Modelo,
		NombreCompleto:  p.NombreCompleto(),
		Precio:          p.Precio,
		Descripcion:     p.Descripcion,
		Imagenes:        p.Imagenes,
		Stock:           p.Stock,
		Disponible:      p.Disponible,
		Destacado:       p.Destacado,
		Caracteristicas: caracteristicas,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func mapProductos(ps []model.Producto) []dto.ProductoResponse {
	out := make([]dto.ProductoResponse, len(ps))
	for i := range ps {
		out[i] = mapProducto(&ps[i])
	}
	return out
}

func precioPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.Find(ctx, repository.ProductoCriteria{
		Categoria:  filter.Categoria,
		Marca:      filter.Marca,
		PrecioMin:  precioPtr(filter.MinPrice),
		PrecioMax:  precioPtr(filter.MaxPrice),
		OrdenarPor: "precio",
	})
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return mapProductos(productos), nil
}

// BusquedaAvanzada counts the whole filtered set before applying the page
// window, so an out-of-range page yields an empty list with the real totals.
func (s *productoService) BusquedaAvanzada(ctx context.Context, filter dto.BusquedaAvanzadaFilter) (*dto.BusquedaAvanzadaResponse, error) {
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	sortBy := filter.SortBy
	if _, ok := repository.ColumnasOrdenables[sortBy]; !ok {
		sortBy = "precio"
	}

	criteria := repository.ProductoCriteria{
		Categoria:      filter.Categoria,
		MarcaContiene:  filter.Marca,
		ModeloContiene: filter.Modelo,
		PrecioMin:      precioPtr(filter.MinPrice),
		PrecioMax:      precioPtr(filter.MaxPrice),
		OrdenarPor:     sortBy,
		Descendente:    filter.SortOrder == "desc",
		Limit:          limit,
	}

	total, err := s.repo.Count(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("contar productos: %w", err)
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	// The offset is only computed for pages that exist; (page-1)*limit on an
	// arbitrary page would overflow.
	productos := []model.Producto{}
	if page <= totalPages {
		criteria.Offset = (page - 1) * limit
		productos, err = s.repo.Find(ctx, criteria)
		if err != nil {
			return nil, fmt.Errorf("buscar productos: %w", err)
		}
	}

	return &dto.BusquedaAvanzadaResponse{
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Products:   mapProductos(productos),
	}, nil
}

const cachePrefix = "producto:"

func cacheKey(id uuid.UUID) string { return cachePrefix + id.String() }

// VaciarCacheProductos deletes every cached product. Needed after the catalog
// is replaced outside the service.
func VaciarCacheProductos(ctx context.Context, rdb *redis.Client) (int, error) {
	var borradas int
	iter := rdb.Scan(ctx, 0, cachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return borradas, err
		}
		borradas++
	}
	return borradas, iter.Err()
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey(id)).Bytes(); err == nil {
			var resp dto.ProductoResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado", ErrProductoNoEncontrado)
		}
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	resp := mapProducto(p)

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			if err := s.rdb.Set(ctx, cacheKey(id), b, productoCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("producto_id", id.String()).Msg("producto cache set failed")
			}
		}
	}
	return &resp, nil
}

func (s *productoService) invalidar(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.Warn().Err(err).Str("producto_id", id.String()).Msg("producto cache invalidation failed")
	}
}

// validarProducto enforces the catalog invariants before any write.
func validarProducto(p *model.Producto) error {
	switch {
	case p.Categoria == "" || p.Marca == "" || p.Modelo == "" || p.Descripcion == "":
		return apierror.BadRequest("Faltan campos obligatorios", ErrDatosInvalidos)
	case len(p.Imagenes) == 0:
		return apierror.BadRequest("Debe proporcionar al menos una imagen", ErrDatosInvalidos)
	case len(p.Imagenes) > model.MaxImagenesProducto:
		return apierror.BadRequest(fmt.Sprintf("Máximo %d imágenes por producto", model.MaxImagenesProducto), ErrDatosInvalidos)
	case p.Precio.IsNegative():
		return apierror.BadRequest("El precio no puede ser negativo", ErrDatosInvalidos)
	case p.Stock < 0:
		return apierror.BadRequest("El stock no puede ser negativo", ErrDatosInvalidos)
	}
	return nil
}

// NuevoProducto builds a product from a create request, filling the defaults
// and checking the catalog rules. The seeder uses it too.
func NuevoProducto(req dto.CrearProductoRequest) (*model.Producto, error) {
	if req.Precio.IsZero() {
		return nil, apierror.BadRequest("Faltan campos obligatorios", ErrDatosInvalidos)
	}
	p := &model.Producto{
		Categoria:       req.Categoria,
		Marca:           req.Marca,
		Modelo:          req.Modelo,
		Precio:          req.Precio,
		Descripcion:     req.Descripcion,
		Imagenes:        req.Imagenes,
		Stock:           model.StockPorDefecto,
		Disponible:      true,
		Caracteristicas: req.Caracteristicas,
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Disponible != nil {
		p.Disponible = *req.Disponible
	}
	if req.Destacado != nil {
		p.Destacado = *req.Destacado
	}
	if p.Caracteristicas == nil {
		p.Caracteristicas = []string{}
	}
	if err := validarProducto(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p, err := NuevoProducto(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	resp := mapProducto(p)
	return &resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado", ErrProductoNoEncontrado)
		}
		return nil, fmt.Errorf("buscar producto: %w", err)
	}

	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.Marca != nil {
		p.Marca = *req.Marca
	}
	if req.Modelo != nil {
		p.Modelo = *req.Modelo
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Descripcion != nil {
		p.Descripcion = *req.Descripcion
	}
	if req.Imagenes != nil {
		p.Imagenes = *req.Imagenes
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Disponible != nil {
		p.Disponible = *req.Disponible
	}
	if req.Destacado != nil {
		p.Destacado = *req.Destacado
	}
	if req.Caracteristicas != nil {
		p.Caracteristicas = *req.Caracteristicas
	}
	if err := validarProducto(p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	s.invalidar(ctx, id)
	resp := mapProducto(p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Producto no encontrado", ErrProductoNoEncontrado)
		}
		return fmt.Errorf("eliminar producto: %w", err)
	}
	s.invalidar(ctx, id)
	return nil
}

func (s *productoService) Exportar(ctx context.Context) ([]model.Producto, error) {
	productos, err := s.repo.Find(ctx, repository.ProductoCriteria{OrdenarPor: "categoria"})
	if err != nil {
		return nil, fmt.Errorf("exportar productos: %w", err)
	}
	return productos, nil
}
