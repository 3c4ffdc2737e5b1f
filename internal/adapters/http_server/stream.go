package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"travelnest/internal/adapters/observability"
	"travelnest/internal/app"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// newUpgrader checks the Origin header against the same list CORS uses.
// Browsers do not apply CORS to websocket upgrades.
func newUpgrader(allowed []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return originAllowed(r.Header.Get("Origin"), allowed) },
	}
}

// originAllowed accepts requests without an Origin (non-browser clients),
// a "*" entry, or an exact case-insensitive match.
func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}

// streamBookings pushes the caller's booking list once on connect and again
// after every booking event for that user.
func (h *Handlers) streamBookings(w http.ResponseWriter, r *http.Request) {
	id, _ := app.CurrentIdentity(r.Context())
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	observability.StreamClients.Inc()
	defer observability.StreamClients.Dec()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	events, unsubscribe := h.Events.Subscribe(id.UserID)
	defer unsubscribe()

	state := app.NewBookingState(h.Repo, id.UserID)
	state.Refresh(ctx)
	if err := writeSnapshot(conn, state.Snapshot()); err != nil {
		return
	}

	updates := make(chan app.BookingSnapshot, 1)
	go state.Watch(ctx, events, func(s app.BookingSnapshot) {
		select {
		case updates <- s:
		default:
			// keep only the newest
			select {
			case <-updates:
			default:
			}
			updates <- s
		}
	})

	// reader: handles pongs and notices when the client goes away
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case s := <-updates:
			if err := writeSnapshot(conn, s); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeSnapshot(conn *websocket.Conn, s app.BookingSnapshot) error {
	s.Bookings = nonNil(s.Bookings)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(s); err != nil {
		log.Debug().Err(err).Msg("stream write failed")
		return err
	}
	return nil
}
