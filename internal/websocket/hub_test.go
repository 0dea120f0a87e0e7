package websocket

import (
	"testing"
	"time"

	"ai-learning-be/internal/model"
	"ai-learning-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }
func (testLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (testLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func (h *Hub) localClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestHubDeliversToRegisteredClient(t *testing.T) {
	h := NewHub(nil, testLogger{})
	go h.Run()

	userID := uuid.New()
	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 4)}
	h.register <- client
	waitFor(t, func() bool { return h.localClientCount(userID) == 1 })

	h.Send(userID, model.Notification{UserID: userID, Title: "chapter done"})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), "chapter done")
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubDropsSlowConsumerWithoutPanic(t *testing.T) {
	h := NewHub(nil, testLogger{})
	go h.Run()

	userID := uuid.New()
	// Unbuffered channel with no reader: the first delivery attempt hits the
	// full-buffer path and must evict the client through the unregister queue.
	slow := &Client{Hub: h, UserID: userID, Send: make(chan []byte)}
	h.register <- slow
	waitFor(t, func() bool { return h.localClientCount(userID) == 1 })

	h.Send(userID, model.Notification{UserID: userID, Title: "first"})
	waitFor(t, func() bool { return h.localClientCount(userID) == 0 })

	// The eviction path owns the close exactly once.
	_, open := <-slow.Send
	assert.False(t, open)

	// Further sends to the departed user are no-ops, not panics.
	h.Send(userID, model.Notification{UserID: userID, Title: "second"})
	assert.Equal(t, 0, h.localClientCount(userID))
}

func TestHubUnregisterTwiceIsHarmless(t *testing.T) {
	h := NewHub(nil, testLogger{})
	go h.Run()

	userID := uuid.New()
	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
	h.register <- client
	waitFor(t, func() bool { return h.localClientCount(userID) == 1 })

	h.unregister <- client
	h.unregister <- client
	waitFor(t, func() bool { return h.localClientCount(userID) == 0 })

	_, open := <-client.Send
	assert.False(t, open)
}
