package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Bastianbone18/trasera/internal/dto"
	"github.com/Bastianbone18/trasera/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedServer(t *testing.T, feed *OrdenFeed) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", feed.Handle)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestOrdenFeed_Broadcast(t *testing.T) {
	feed := NewOrdenFeed("http://localhost:3000")
	url := feedServer(t, feed)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return feed.Clientes() == 1 }, time.Second, 10*time.Millisecond)

	o := &model.Orden{
		ID:         uuid.New(),
		UsuarioID:  uuid.New(),
		Total:      decimal.RequireFromString("42.5"),
		MetodoPago: model.MetodoWompi,
	}
	require.NoError(t, feed.NotificarOrden(context.Background(), o))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var got dto.OrdenResponse
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, o.ID.String(), got.ID)
	assert.Equal(t, "42.5", got.Total.String())
	assert.Equal(t, model.MetodoWompi, got.PaymentMethod)
}

func TestOrdenFeed_ClienteCerrado(t *testing.T) {
	feed := NewOrdenFeed("http://localhost:3000")
	url := feedServer(t, feed)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return feed.Clientes() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return feed.Clientes() == 0 }, time.Second, 10*time.Millisecond)
}

func TestOrdenFeed_OrigenRechazado(t *testing.T) {
	feed := NewOrdenFeed("http://localhost:3000")
	url := feedServer(t, feed)

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, feed.Clientes())
}

func TestOrdenFeed_ClienteLentoNoBloquea(t *testing.T) {
	feed := NewOrdenFeed("http://localhost:3000")
	lento := &feedClient{send: make(chan []byte, 1)}
	lento.send <- []byte("pendiente")
	feed.clients[lento] = struct{}{}

	done := make(chan error, 1)
	go func() { done <- feed.NotificarOrden(context.Background(), &model.Orden{ID: uuid.New()}) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("NotificarOrden blocked on a slow client")
	}
	assert.Equal(t, 0, feed.Clientes())
	_, open := <-lento.send
	assert.True(t, open, "buffered message still readable")
	_, open = <-lento.send
	assert.False(t, open)
}
