package http

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/placescout/internal/adapters/nats"
	"github.com/samirrijal/placescout/internal/pkg/metrics"
)

// wsMessage is sent from client to narrow the feed.
type wsMessage struct {
	Action string `json:"action"` // "filter" | "clear"
	City   string `json:"city"`   // case-insensitive city filter
}

// eventMatches reports whether a raw search event passes the city filter.
func eventMatches(data []byte, city string) bool {
	if city == "" {
		return true
	}
	var ev struct {
		City string `json:"city"`
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		return false
	}
	return strings.EqualFold(ev.City, city)
}

// WebSocketHandler relays search-completed events from NATS to connected
// clients. Clients may send {"action":"filter","city":"Springfield"} to only
// receive events for one city, and {"action":"clear"} to drop the filter.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "remote", remoteAddr)
		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		var mu sync.Mutex
		var cityFilter string

		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		if nc == nil {
			_ = writeJSON(map[string]string{"error": "event feed not available"})
			return
		}

		sub, err := nc.Subscribe(natsadapter.SubjectSearchWildcard, func(msg *nats.Msg) {
			mu.Lock()
			filter := cityFilter
			mu.Unlock()
			if !eventMatches(msg.Data, filter) {
				return
			}
			_ = writeJSON(json.RawMessage(msg.Data))
		})
		if err != nil {
			slog.Error("ws subscribe failed", "error", err)
			return
		}
		defer func() { _ = sub.Unsubscribe() }()

		// Keep-alive ping
		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			switch m.Action {
			case "filter":
				mu.Lock()
				cityFilter = strings.TrimSpace(m.City)
				mu.Unlock()
				_ = writeJSON(map[string]string{"status": "filtering", "city": m.City})
			case "clear":
				mu.Lock()
				cityFilter = ""
				mu.Unlock()
				_ = writeJSON(map[string]string{"status": "cleared"})
			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}
