package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const (
	eventBuffer  = 256
	writeTimeout = 5 * time.Second
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// subscriber is one websocket client. caseID 0 receives every event.
type subscriber struct {
	caseID uint64
}

// EventHub fans committed court events out to websocket clients. It
// implements court.Publisher; a full buffer drops the batch rather than
// stalling the court.
type EventHub struct {
	clients map[*websocket.Conn]subscriber
	mutex   sync.Mutex

	events  chan []models.Event
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewEventHub starts the broadcast loop
func NewEventHub() *EventHub {
	h := &EventHub{
		clients: make(map[*websocket.Conn]subscriber),
		events:  make(chan []models.Event, eventBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go h.run()
	return h
}

// Publish queues events for broadcast without blocking
func (h *EventHub) Publish(events []models.Event) {
	if len(events) == 0 {
		return
	}
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.events <- events:
	default:
		zap.S().Warnw("event hub buffer full, dropping events",
			"count", len(events),
			"firstSeq", events[0].Seq,
		)
	}
}

// Clients returns the number of connected websocket clients
func (h *EventHub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// EventsWebSocketHandler upgrades the request and streams events to the
// client until it disconnects. An optional caseId query parameter limits the
// stream to one case.
func (h *EventHub) EventsWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	var sub subscriber
	if v := r.URL.Query().Get("caseId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			config.ErrorStatus("invalid caseId", http.StatusBadRequest, w, err)
			return
		}
		sub.caseID = id
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade error", "error", err)
		return
	}

	if !h.add(conn, sub) {
		conn.Close()
		return
	}
	zap.S().Debugw("client connected to /ws/events", "remote", r.RemoteAddr, "caseId", sub.caseID)

	// the client never sends anything useful, reading only detects the disconnect
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.remove(conn)
			zap.S().Debugw("client disconnected from /ws/events", "remote", r.RemoteAddr)
			return
		}
	}
}

// Close disconnects every client and stops the broadcast loop
func (h *EventHub) Close() {
	h.once.Do(func() {
		close(h.done)
		<-h.stopped
	})
}

func (h *EventHub) run() {
	defer close(h.stopped)
	for {
		select {
		case <-h.done:
			h.mutex.Lock()
			for conn := range h.clients {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeTimeout))
				conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return
		case events := <-h.events:
			h.broadcast(events)
		}
	}
}

// broadcast runs only on the run goroutine, so each conn has a single writer
func (h *EventHub) broadcast(events []models.Event) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, sub := range h.clients {
		for _, e := range events {
			if sub.caseID != 0 && sub.caseID != e.CaseID {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(e); err != nil {
				zap.S().Debugw("dropping websocket client", "error", err)
				conn.Close()
				delete(h.clients, conn)
				break
			}
		}
	}
}

// add registers conn unless the hub is closing. The done check and the insert
// share the mutex with the shutdown sweep in run, so no conn outlives it.
func (h *EventHub) add(conn *websocket.Conn, sub subscriber) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	select {
	case <-h.done:
		return false
	default:
	}
	h.clients[conn] = sub
	return true
}

func (h *EventHub) remove(conn *websocket.Conn) {
	h.mutex.Lock()
	delete(h.clients, conn)
	h.mutex.Unlock()
	conn.Close()
}
