package infra

import (
	"os"
	"testing"
	"time"

	"github.com/Bastianbone18/trasera/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordenDePrueba() *model.Orden {
	return &model.Orden{
		ID:        uuid.New(),
		UsuarioID: uuid.New(),
		Items: []model.OrdenItem{
			{ProductoID: uuid.New(), Nombre: "Teclado mecánico", Precio: decimal.RequireFromString("199.99"), Cantidad: 1},
			{ProductoID: uuid.New(), Nombre: "Mouse", Precio: decimal.NewFromInt(50), Cantidad: 3},
		},
		Total:      decimal.RequireFromString("349.99"),
		MetodoPago: model.MetodoMercadoPago,
		CreatedAt:  time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestGenerarReciboPDF(t *testing.T) {
	dir := t.TempDir() + "/recibos"
	o := ordenDePrueba()
	u := &model.Usuario{Nombre: "Ana", Email: "ana@example.com"}

	path, err := GenerarReciboPDF(o, u, dir)
	require.NoError(t, err)
	assert.Equal(t, ReciboPath(dir, o), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerarReciboPDF_SinUsuario(t *testing.T) {
	_, err := GenerarReciboPDF(ordenDePrueba(), nil, t.TempDir())
	assert.NoError(t, err)
}
