package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Bastianbone18/trasera/internal/apierror"
	"github.com/Bastianbone18/trasera/internal/dto"
	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	// Registrar creates the account. imagenPerfil is the public path of an
	// already stored upload, or nil.
	Registrar(ctx context.Context, req dto.RegistroRequest, imagenPerfil *string) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ActualizarImagenPerfil(ctx context.Context, id uuid.UUID, path string) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo       repository.UsuarioRepository
	tokens     TokenService
	bcryptCost int
}

func NewAuthService(repo repository.UsuarioRepository, tokens TokenService, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

func mapUsuario(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:           u.ID.String(),
		Name:         u.Nombre,
		Email:        u.Email,
		Role:         u.Rol,
		ProfileImage: u.ImagenPerfil,
	}
}

func (s *authService) Registrar(ctx context.Context, req dto.RegistroRequest, imagenPerfil *string) (*dto.UsuarioResponse, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apierror.BadRequest("Todos los campos son obligatorios", ErrDatosInvalidos)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apierror.Conflict("El email ya está registrado", ErrEmailRegistrado)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rol := req.Role
	if rol == "" {
		rol = model.RolUsuario
	}
	user := &model.Usuario{
		Nombre:       strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Rol:          rol,
		ImagenPerfil: imagenPerfil,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the lookup above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("El email ya está registrado", ErrEmailRegistrado)
		}
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	resp := mapUsuario(user)
	return &resp, nil
}

// Login tells an unknown email apart from a wrong password; both are 400.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.BadRequest("Usuario no encontrado", ErrUsuarioNoEncontrado)
		}
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.BadRequest("Contraseña incorrecta", ErrPasswordIncorrecta)
	}

	token, err := s.tokens.Emitir(user)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	xToken, err := s.tokens.EmitirUID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("emitir x-token: %w", err)
	}

	return &dto.LoginResponse{
		Token:  token,
		XToken: xToken,
		User:   mapUsuario(user),
	}, nil
}

func (s *authService) ActualizarImagenPerfil(ctx context.Context, id uuid.UUID, path string) (*dto.UsuarioResponse, error) {
	if path == "" {
		return nil, apierror.BadRequest("No se ha subido ninguna imagen", ErrImagenRequerida)
	}
	user, err := s.repo.UpdateImagenPerfil(ctx, id, path)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuario no encontrado", ErrUsuarioNoEncontrado)
		}
		return nil, fmt.Errorf("actualizar imagen: %w", err)
	}
	resp := mapUsuario(user)
	return &resp, nil
}
