package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	wsWriteTimeout = 5 * time.Second
	// feedBuffer is how many unsent orders a client may lag behind before
	// it is dropped.
	feedBuffer = 16
)

// feedClient is one admin socket. Only its writer goroutine writes to conn.
type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// OrdenFeed pushes every new order to the connected admin websockets.
type OrdenFeed struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

// NewOrdenFeed accepts upgrades from allowedOrigin or from clients that send
// no Origin header.
func NewOrdenFeed(allowedOrigin string) *OrdenFeed {
	return &OrdenFeed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
		clients: make(map[*feedClient]struct{}),
	}
}

// Handle godoc
// @Summary Feed en vivo de órdenes nuevas (websocket)
// @Tags admin
// @Security BearerAuth
// @Router /api/admin/orders/ws [get]
func (f *OrdenFeed) Handle(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debug().Err(err).Msg("orden feed: upgrade failed")
		return
	}
	cl := &feedClient{conn: conn, send: make(chan []byte, feedBuffer)}
	f.mu.Lock()
	f.clients[cl] = struct{}{}
	f.mu.Unlock()

	go cl.writeLoop()

	// Admins only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	f.drop(cl)
}

// writeLoop drains send until it is closed, then closes the socket.
func (cl *feedClient) writeLoop() {
	defer cl.conn.Close()
	for data := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debug().Err(err).Msg("orden feed: write failed")
			return
		}
	}
	_ = cl.conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(time.Second))
}

// drop unregisters cl; closing send stops its writer.
func (f *OrdenFeed) drop(cl *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropLocked(cl)
}

func (f *OrdenFeed) dropLocked(cl *feedClient) {
	if _, ok := f.clients[cl]; !ok {
		return
	}
	delete(f.clients, cl)
	close(cl.send)
}

// Clientes returns the number of connected admins.
func (f *OrdenFeed) Clientes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// NotificarOrden queues o for every client without waiting on the network.
// Clients whose buffer is full are dropped.
func (f *OrdenFeed) NotificarOrden(_ context.Context, o *model.Orden) error {
	data, err := json.Marshal(service.ToOrdenResponse(o))
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for cl := range f.clients {
		select {
		case cl.send <- data:
		default:
			log.Debug().Msg("orden feed: client too slow, dropping")
			f.dropLocked(cl)
		}
	}
	return nil
}
