package repository

import (
	"context"

	"github.com/Bastianbone18/trasera/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdenRepository interface {
	Create(ctx context.Context, o *model.Orden) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Orden, error)
	// ListByUsuario returns the user's orders, newest first.
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Orden, error)
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) Create(ctx context.Context, o *model.Orden) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Orden, error) {
	var o model.Orden
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Orden, error) {
	ordenes := []model.Orden{}
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&ordenes).Error
	return ordenes, err
}
