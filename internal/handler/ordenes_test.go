package handler

import (
	"net/http"
	"testing"

	"github.com/Bastianbone18/trasera/internal/dto"
	"github.com/Bastianbone18/trasera/internal/middleware"
	"github.com/Bastianbone18/trasera/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordenBody(total any, metodo string) map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"productId": uuid.NewString(), "name": "Lenovo E14", "price": 100, "quantity": 2},
		},
		"total":         total,
		"paymentMethod": metodo,
	}
}

func TestCrearOrden(t *testing.T) {
	api := newTestAPI(t)
	u, headers := api.seedUsuario(t, "cliente@example.com", model.RolUsuario)

	w := api.doJSON(t, http.MethodPost, "/orders", ordenBody(1.5, "paypal"), headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[dto.CrearOrdenResponse](t, w)
	assert.True(t, resp.Ok)
	assert.Equal(t, u.ID.String(), resp.Order.User)
	assert.Equal(t, "1.5", resp.Order.Total.String())
	assert.False(t, resp.Order.IsPaid)
}

func TestCrearOrden_Rechazos(t *testing.T) {
	api := newTestAPI(t)
	_, headers := api.seedUsuario(t, "cliente@example.com", model.RolUsuario)

	w := api.doJSON(t, http.MethodPost, "/orders", ordenBody(10, "bitcoin"), headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.doJSON(t, http.MethodPost, "/orders", map[string]any{"total": 10, "paymentMethod": "paypal"}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	sinXToken := map[string]string{"Authorization": headers["Authorization"]}
	w = api.doJSON(t, http.MethodPost, "/orders", ordenBody(10, "paypal"), sinXToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	sinBearer := map[string]string{middleware.XTokenHeader: headers[middleware.XTokenHeader]}
	w = api.doJSON(t, http.MethodPost, "/orders", ordenBody(10, "paypal"), sinBearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListarOrdenes(t *testing.T) {
	api := newTestAPI(t)
	_, ana := api.seedUsuario(t, "ana@example.com", model.RolUsuario)
	_, beto := api.seedUsuario(t, "beto@example.com", model.RolUsuario)

	require.Equal(t, http.StatusCreated, api.doJSON(t, http.MethodPost, "/orders", ordenBody(1, "paypal"), ana).Code)
	require.Equal(t, http.StatusCreated, api.doJSON(t, http.MethodPost, "/orders", ordenBody(2, "wompi"), beto).Code)
	require.Equal(t, http.StatusCreated, api.doJSON(t, http.MethodPost, "/orders", ordenBody(3, "mercadopago"), ana).Code)

	w := api.do(http.MethodGet, "/orders", nil, "", ana)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.ListarOrdenesResponse](t, w)
	assert.True(t, resp.Ok)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "3", resp.Orders[0].Total.String())
	assert.Equal(t, "1", resp.Orders[1].Total.String())
}

func TestReciboOrden(t *testing.T) {
	api := newTestAPI(t)
	_, ana := api.seedUsuario(t, "ana@example.com", model.RolUsuario)
	_, beto := api.seedUsuario(t, "beto@example.com", model.RolUsuario)

	w := api.doJSON(t, http.MethodPost, "/orders", ordenBody(99.9, "paypal"), ana)
	require.Equal(t, http.StatusCreated, w.Code)
	orden := decode[dto.CrearOrdenResponse](t, w).Order
	mustUUID(t, orden.ID)

	w = api.do(http.MethodGet, "/orders/"+orden.ID+"/receipt", nil, "", ana)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "recibo_"+orden.ID+".pdf")
	assert.Equal(t, "%PDF", w.Body.String()[:4])

	w = api.do(http.MethodGet, "/orders/"+orden.ID+"/receipt", nil, "", beto)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/orders/xyz/receipt", nil, "", ana)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
