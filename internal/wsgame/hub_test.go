package wsgame

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// waitRegistered polls (under lock) until the client shows up in the
// hub's registration map, since registration is processed by the Run
// goroutine after the channel send returns.
func waitRegistered(t *testing.T, h *Hub, client *Client) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		h.mutex.RLock()
		_, ok := h.clients[client]
		h.mutex.RUnlock()
		if ok {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for client registration")
		default:
		}
	}
}

func TestPublishPlay_DropsWhenBroadcastChannelFull(t *testing.T) {
	h := NewHub(logrus.New())

	// Fill the buffered broadcast channel without a Run() goroutine
	// draining it, then confirm one more publish doesn't block.
	for i := 0; i < cap(h.broadcast); i++ {
		h.PublishPlay("game-1", state.PlayResult{PlayType: state.PlayRun})
	}

	done := make(chan struct{})
	go func() {
		h.PublishPlay("game-1", state.PlayResult{PlayType: state.PlayPass})
		close(done)
	}()
	<-done // would hang if PublishPlay blocked on a full channel
}

func TestNewHub_StartsWithNoClients(t *testing.T) {
	h := NewHub(logrus.New())
	assert.Empty(t, h.clients)
	assert.Empty(t, h.gameClients)
}

func TestHubRun_DeliversPublishedPlayToSubscribedClient(t *testing.T) {
	h := NewHub(logrus.New())
	go h.Run()

	client := &Client{GameID: "game-1", Send: make(chan []byte, 1), Hub: h}
	h.register <- client
	waitRegistered(t, h, client)

	h.PublishPlay("game-1", state.PlayResult{PlayType: state.PlayRun, YardsGained: 5})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), "run")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published play")
	}
}

func TestHubRun_DropsClientWithFullSendChannel(t *testing.T) {
	h := NewHub(logrus.New())
	go h.Run()

	client := &Client{GameID: "game-1", Send: make(chan []byte), Hub: h}
	h.register <- client
	waitRegistered(t, h, client)

	h.PublishPlay("game-1", state.PlayResult{PlayType: state.PlayRun})

	deadline := time.After(time.Second)
	for {
		h.mutex.RLock()
		_, stillRegistered := h.clients[client]
		h.mutex.RUnlock()
		if !stillRegistered {
			return
		}
		select {
		case <-deadline:
			t.Fatal("client with a full send channel was never dropped")
		default:
		}
	}
}
