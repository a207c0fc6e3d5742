package gateway

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"chatrooms/contract"

	"github.com/stretchr/testify/require"
)

// fakeClient registers an in-memory connection on the hub; the pumps are
// never started, frames land in the send buffer.
func fakeClient(hub *Hub, id string) *Client {
	c := &Client{id: id, send: make(chan []byte, sendBufferSize), done: make(chan struct{})}
	hub.add(c)
	return c
}

func receivedEvent(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case data := <-c.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		return env
	default:
		require.Fail(t, "no frame queued", "clientId=%s", c.id)
		return Envelope{}
	}
}

func TestHub_Emit_Targets_One_Connection(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	alice := fakeClient(hub, "c-1")
	bob := fakeClient(hub, "c-2")

	hub.Emit("c-1", "connected", map[string]string{"clientId": "c-1"})

	env := receivedEvent(t, alice)
	req.Equal("connected", env.Event)
	req.JSONEq(`{"clientId":"c-1"}`, string(env.Data))
	req.Empty(bob.send)

	// Emitting to a gone connection is a silent no-op.
	hub.Emit("c-404", "connected", nil)
}

func TestHub_Broadcast_Honors_Room_Tags(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	alice := fakeClient(hub, "c-1")
	bob := fakeClient(hub, "c-2")
	clara := fakeClient(hub, "c-3")

	hub.JoinChannel("c-1", "gophers")
	hub.JoinChannel("c-2", "gophers")

	hub.Broadcast("gophers", "receiveMessage", "hi")
	req.Equal("receiveMessage", receivedEvent(t, alice).Event)
	req.Equal("receiveMessage", receivedEvent(t, bob).Event)
	req.Empty(clara.send)

	hub.LeaveChannel("c-2", "gophers")
	hub.Broadcast("gophers", "receiveMessage", "bye")
	req.Equal("receiveMessage", receivedEvent(t, alice).Event)
	req.Empty(bob.send)
}

func TestHub_Broadcast_All_Reaches_Everyone(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	alice := fakeClient(hub, "c-1")
	bob := fakeClient(hub, "c-2")

	hub.Broadcast(contract.BroadcastAllRooms, "usersList", []string{"Alice", "Bob"})

	req.Equal("usersList", receivedEvent(t, alice).Event)
	req.Equal("usersList", receivedEvent(t, bob).Event)
}

func TestHub_JoinChannel_Requires_Live_Connection(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	alice := fakeClient(hub, "c-1")

	hub.JoinChannel("c-404", "gophers")
	hub.Broadcast("gophers", "receiveMessage", "hi")
	req.Empty(alice.send)
}

func TestHub_Remove_Clears_Tags_And_Closes(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	alice := fakeClient(hub, "c-1")
	hub.JoinChannel("c-1", "gophers")

	hub.remove("c-1")

	select {
	case <-alice.done:
	default:
		req.Fail("connection not shut down")
	}

	// Neither path can reach the removed connection anymore.
	hub.Emit("c-1", "connected", nil)
	hub.Broadcast("gophers", "receiveMessage", "hi")
	req.Empty(alice.send)

	// Removing twice is a no-op.
	hub.remove("c-1")
}

// A disconnect landing in the middle of a broadcast must never panic the
// sending goroutine: delivery is gated on the done channel, the send
// channel stays open.
func TestHub_Broadcast_During_Disconnect_Does_Not_Panic(t *testing.T) {
	hub := NewHub(slog.Default())

	for round := 0; round < 200; round++ {
		id := "c-1"
		fakeClient(hub, id)
		hub.JoinChannel(id, "gophers")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Broadcast("gophers", "receiveMessage", "hi")
			hub.Emit(id, "connected", nil)
		}()
		go func() {
			defer wg.Done()
			hub.remove(id)
		}()
		wg.Wait()
	}
}

func TestHub_Slow_Consumer_Drops_Frames(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default())
	c := &Client{id: "c-1", send: make(chan []byte, 1), done: make(chan struct{})}
	hub.add(c)

	hub.Emit("c-1", "first", nil)
	hub.Emit("c-1", "second", nil) // buffer full, dropped

	req.Equal("first", receivedEvent(t, c).Event)
	req.Empty(c.send)
}
