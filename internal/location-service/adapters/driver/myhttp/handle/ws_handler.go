package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"trackmate/internal/location-service/adapters/driven/ws"
	"trackmate/internal/location-service/core/ports"
	"trackmate/internal/mylogger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// WebSocketHandler pushes ingested samples to live viewers of a trip. The
// polling endpoint remains the source of truth; this channel only shortens
// the latency between a report and the map refresh.
type WebSocketHandler struct {
	hub             *ws.Hub
	locationService ports.ILocationService
	upgrader        websocket.Upgrader
	log             mylogger.Logger
}

func NewWebSocketHandler(hub *ws.Hub, ls ports.ILocationService, log mylogger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:             hub,
		locationService: ls,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *WebSocketHandler) TripLocations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tripId := r.PathValue("trip_id")
		userId := r.Header.Get("X-UserId")

		// Same membership gate as the polling endpoint; the snapshot doubles
		// as the first frame so a new viewer never starts from an empty map.
		snapshot, err := h.locationService.TripLocations(r.Context(), userId, tripId)
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sub := h.hub.Subscribe(tripId)
		defer h.hub.Unsubscribe(sub)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		initial, _ := json.Marshal(map[string]interface{}{
			"type":     "snapshot",
			"tripId":   snapshot.TripId,
			"snapshot": snapshot,
		})
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
			return
		}

		go h.readLoop(cancel, conn)
		h.writeLoop(ctx, conn, sub)
	}
}

// readLoop discards inbound frames; the stream is one-way. It exists to
// service pongs and to notice the peer going away.
func (h *WebSocketHandler) readLoop(cancel context.CancelFunc, conn *websocket.Conn) {
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WebSocketHandler) writeLoop(ctx context.Context, conn *websocket.Conn, sub *ws.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case message, ok := <-sub.Outgoing:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
