// Package events fans out project refresh notifications to websocket
// subscribers.
package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

type Message struct {
	Type      string `json:"type"`
	Entity    string `json:"entity,omitempty"`
	ProjectID string `json:"project_id"`
}

type client struct {
	conn *websocket.Conn
	send chan Message
	done chan struct{}
}

// Hub tracks websocket subscribers per project. Each connection has a single
// writer goroutine; Publish never blocks on a slow subscriber.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		log:     log,
	}
}

// Publish queues a refresh message for every subscriber of the project.
// Subscribers whose queue is full are disconnected.
func (h *Hub) Publish(projectID, entity string) {
	msg := Message{Type: "refresh", Entity: entity, ProjectID: projectID}

	var slow []*client

	h.mu.RLock()
	for c := range h.clients[projectID] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.WithField("project_id", projectID).Warn("dropping slow websocket subscriber")
		h.unregister(projectID, c)
	}
}

// Subscribers returns the number of live connections for a project.
func (h *Hub) Subscribers(projectID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[projectID])
}

// Serve registers an upgraded connection and blocks until it closes.
func (h *Hub) Serve(conn *websocket.Conn, projectID string) {
	c := &client{
		conn: conn,
		send: make(chan Message, sendBuffer),
		done: make(chan struct{}),
	}

	h.register(projectID, c)
	c.send <- Message{Type: "connected", ProjectID: projectID}

	go h.writePump(c, projectID)

	h.readPump(c, projectID)
	h.unregister(projectID, c)
	<-c.done

	h.log.WithField("project_id", projectID).Debug("websocket connection closed")
}

func (h *Hub) register(projectID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[projectID] == nil {
		h.clients[projectID] = make(map[*client]struct{})
	}
	h.clients[projectID][c] = struct{}{}
}

func (h *Hub) unregister(projectID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[projectID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}

	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(h.clients, projectID)
	}
}

func (h *Hub) readPump(c *client, projectID string) {
	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).WithField("project_id", projectID).Warn("websocket read failed")
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client, projectID string) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				h.log.WithError(err).WithField("project_id", projectID).Warn("websocket write failed")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
