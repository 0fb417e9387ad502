package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bastianbone18/trasera/internal/apierror"
	"github.com/Bastianbone18/trasera/internal/dto"
	"github.com/Bastianbone18/trasera/internal/infra"
	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OrdenNotifier is told about every stored order. Failures are logged and
// never undo the order.
type OrdenNotifier interface {
	NotificarOrden(ctx context.Context, o *model.Orden) error
}

type OrdenService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]dto.OrdenResponse, error)
	// Recibo renders the PDF receipt of one of the user's orders and returns its path.
	Recibo(ctx context.Context, usuarioID, ordenID uuid.UUID) (string, error)
}

type ordenService struct {
	repo      repository.OrdenRepository
	usuarios  repository.UsuarioRepository
	pdfPath   string
	notifiers []OrdenNotifier
}

func NewOrdenService(repo repository.OrdenRepository, usuarios repository.UsuarioRepository, pdfPath string, notifiers ...OrdenNotifier) OrdenService {
	return &ordenService{repo: repo, usuarios: usuarios, pdfPath: pdfPath, notifiers: notifiers}
}

// ToOrdenResponse maps a stored order to its wire form.
func ToOrdenResponse(o *model.Orden) dto.OrdenResponse {
	items := make([]dto.OrdenItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = dto.OrdenItemResponse{
			ProductID: it.ProductoID.String(),
			Name:      it.Nombre,
			Price:     it.Precio,
			Quantity:  it.Cantidad,
		}
	}
	return dto.OrdenResponse{
		ID:            o.ID.String(),
		User:          o.UsuarioID.String(),
		Items:         items,
		Total:         o.Total,
		PaymentMethod: o.MetodoPago,
		IsPaid:        o.Pagado,
		PaidAt:        o.PagadoEn,
		CreatedAt:     o.CreatedAt,
	}
}

// validarOrden checks what the store would otherwise accept blindly.
// The total is deliberately not compared with the items.
func validarOrden(req dto.CrearOrdenRequest) ([]model.OrdenItem, error) {
	if !model.MetodoPagoValido(req.PaymentMethod) {
		return nil, apierror.BadRequest("Método de pago inválido (paypal, mercadopago o wompi)", ErrDatosInvalidos)
	}
	if req.Total == nil {
		return nil, apierror.BadRequest("El total es obligatorio", ErrDatosInvalidos)
	}
	if len(req.Items) == 0 {
		return nil, apierror.BadRequest("La orden debe tener al menos un item", ErrDatosInvalidos)
	}
	items := make([]model.OrdenItem, len(req.Items))
	for i, it := range req.Items {
		pid, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, apierror.BadRequest(fmt.Sprintf("items[%d].productId inválido", i), ErrDatosInvalidos)
		}
		items[i] = model.OrdenItem{
			ProductoID: pid,
			Nombre:     it.Name,
			Precio:     it.Price,
			Cantidad:   it.Quantity,
		}
	}
	return items, nil
}

func (s *ordenService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	items, err := validarOrden(req)
	if err != nil {
		return nil, err
	}

	o := &model.Orden{
		UsuarioID:  usuarioID,
		Items:      items,
		Total:      *req.Total,
		MetodoPago: req.PaymentMethod,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("crear orden: %w", err)
	}

	for _, n := range s.notifiers {
		if err := n.NotificarOrden(ctx, o); err != nil {
			log.Warn().Err(err).Str("orden_id", o.ID.String()).Msg("orden notification failed")
		}
	}

	resp := ToOrdenResponse(o)
	return &resp, nil
}

func (s *ordenService) ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]dto.OrdenResponse, error) {
	ordenes, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("listar ordenes: %w", err)
	}
	resp := make([]dto.OrdenResponse, len(ordenes))
	for i := range ordenes {
		resp[i] = ToOrdenResponse(&ordenes[i])
	}
	return resp, nil
}

// Recibo answers 404 for orders of other users so their ids are not disclosed.
func (s *ordenService) Recibo(ctx context.Context, usuarioID, ordenID uuid.UUID) (string, error) {
	o, err := s.repo.FindByID(ctx, ordenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierror.NotFound("Orden no encontrada", ErrOrdenNoEncontrada)
		}
		return "", fmt.Errorf("buscar orden: %w", err)
	}
	if o.UsuarioID != usuarioID {
		return "", apierror.NotFound("Orden no encontrada", ErrOrdenNoEncontrada)
	}

	usuario, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("buscar usuario: %w", err)
	}
	return infra.GenerarReciboPDF(o, usuario, s.pdfPath)
}
