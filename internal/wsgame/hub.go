// Package wsgame streams a game's play-by-play to connected clients
// over WebSocket, adapted from the hub-and-client pattern the
// optimization service uses for streaming lineup updates: a
// registration loop over channels instead of a locked broadcast list,
// with per-game subscriber sets so a client only gets the plays for
// the game it asked about.
package wsgame

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one connected WebSocket subscriber to a single game's
// play-by-play.
type Client struct {
	GameID string
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

// Hub fans out committed plays to every client subscribed to the game
// they concern.
type Hub struct {
	clients       map[*Client]bool
	gameClients   map[string][]*Client
	broadcast     chan playEvent
	register      chan *Client
	unregister    chan *Client
	logger        *logrus.Logger
	mutex         sync.RWMutex
}

type playEvent struct {
	GameID string
	Result state.PlayResult
}

// NewHub builds an idle Hub; call Run in a goroutine to start it.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		gameClients: make(map[string][]*Client),
		broadcast:   make(chan playEvent, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
	}
}

// Run processes registrations, unregistrations, and broadcasts until
// the hub's channels are closed or the caller's goroutine is killed.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.gameClients[client.GameID] = append(h.gameClients[client.GameID], client)
			h.mutex.Unlock()
			h.logger.WithFields(logrus.Fields{
				"game_id":       client.GameID,
				"total_clients": len(h.clients),
			}).Info("websocket client subscribed to game")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				peers := h.gameClients[client.GameID]
				for i, c := range peers {
					if c == client {
						h.gameClients[client.GameID] = append(peers[:i], peers[i+1:]...)
						break
					}
				}
			}
			h.mutex.Unlock()

		case event := <-h.broadcast:
			payload, err := json.Marshal(event.Result)
			if err != nil {
				h.logger.WithError(err).Error("failed to marshal play result for broadcast")
				continue
			}
			// Write-locked: a slow client's full Send channel is dropped
			// here by deleting it from h.clients and from the game's
			// subscriber list, which mutates state a read lock cannot
			// safely guard.
			h.mutex.Lock()
			peers := h.gameClients[event.GameID]
			kept := peers[:0]
			for _, client := range peers {
				select {
				case client.Send <- payload:
					kept = append(kept, client)
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.gameClients[event.GameID] = kept
			h.mutex.Unlock()
		}
	}
}

// PublishPlay queues a committed play result for every client
// subscribed to gameID. Non-blocking: a full broadcast channel drops
// the play rather than stalling the simulation loop.
func (h *Hub) PublishPlay(gameID string, result state.PlayResult) {
	select {
	case h.broadcast <- playEvent{GameID: gameID, Result: result}:
	default:
		h.logger.WithField("game_id", gameID).Warn("websocket broadcast channel full, dropping play event")
	}
}

// ServeWS upgrades an HTTP request to a WebSocket and registers the
// resulting client under the requested game id.
func (h *Hub) ServeWS(gameID string, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{GameID: gameID, Conn: conn, Send: make(chan []byte, 64), Hub: h}
	h.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}

func (c *Client) writePump() {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
