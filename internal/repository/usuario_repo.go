package repository

import (
	"context"

	"github.com/Bastianbone18/trasera/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	UpdateImagenPerfil(ctx context.Context, id uuid.UUID, path string) (*model.Usuario, error)
	// Upsert creates the user or refreshes name, hash and role of an existing email.
	Upsert(ctx context.Context, u *model.Usuario) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) UpdateImagenPerfil(ctx context.Context, id uuid.UUID, path string) (*model.Usuario, error) {
	res := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("imagen_perfil", path)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *usuarioRepo) Upsert(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO usuarios (nombre, email, password_hash, rol, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE
		SET nombre = EXCLUDED.nombre,
		    password_hash = EXCLUDED.password_hash,
		    rol = EXCLUDED.rol,
		    updated_at = NOW()`,
		u.Nombre, u.Email, u.PasswordHash, u.Rol).Error
}
