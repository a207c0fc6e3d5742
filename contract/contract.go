//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// BroadcastAllRooms targets every live connection regardless of room tag.
const BroadcastAllRooms = "*"

// Broadcaster is the transport primitive the core fans events out through.
// The websocket hub implements it; the core never touches raw connections.
type Broadcaster interface {
	// Emit delivers an event to a single connection.
	Emit(clientID, event string, payload any)
	// Broadcast delivers an event to every connection tagged with roomID,
	// or to everyone when roomID is BroadcastAllRooms.
	Broadcast(roomID, event string, payload any)
	// JoinChannel tags a connection with a room so Broadcast can reach it.
	JoinChannel(clientID, roomID string)
	// LeaveChannel drops the room tag from a connection.
	LeaveChannel(clientID, roomID string)
}
