package services

import (
	"log/slog"

	"chatrooms/contract"
	"chatrooms/domain"
)

// Outbound event names, one per wire event the server emits.
const (
	EventConnected       = "connected"
	EventUsersList       = "usersList"
	EventRoomUsersList   = "chatroomUsersList"
	EventPreviousMsgs    = "previousMessages"
	EventReceiveMessage  = "receiveMessage"
	EventUserLeft        = "userLeft"
	EventChatroomDeleted = "chatroomDeleted"
	EventChatroomsList   = "chatroomsList"
	EventChatroomExists  = "chatroomExists"
	EventError           = "error"
)

// Fanout decides, for every state mutation, which connections hear about it
// and under which event name. It is the only component talking to the
// transport broadcast primitive; delivery is best-effort.
type Fanout struct {
	transport contract.Broadcaster
	presence  IPresenceDirectory
	rooms     IRoomService
	log       *slog.Logger
}

func NewFanout(transport contract.Broadcaster, presence IPresenceDirectory, rooms IRoomService, log *slog.Logger) *Fanout {
	return &Fanout{transport: transport, presence: presence, rooms: rooms, log: log}
}

type roomDeletedPayload struct {
	ChatroomID string `json:"chatroomId"`
}

type userLeftPayload struct {
	Username string `json:"username"`
}

type existsPayload struct {
	ChatroomID string `json:"chatroomId"`
	Exists     bool   `json:"exists"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Connected confirms presence to the connecting client only.
func (f *Fanout) Connected(clientID string, user domain.User) {
	f.transport.Emit(clientID, EventConnected, user)
}

// UsersChanged pushes the full updated user list to every connection.
func (f *Fanout) UsersChanged() {
	users, err := f.presence.ListAll()
	if err != nil {
		f.log.Warn("User list fanout skipped", "error", err)
		return
	}
	f.transport.Broadcast(contract.BroadcastAllRooms, EventUsersList, users)
}

// RoomUsersChanged pushes the member list of one room to that room only.
func (f *Fanout) RoomUsersChanged(roomID string) {
	users, err := f.presence.ListByRoom(roomID)
	if err != nil {
		f.log.Warn("Room user list fanout skipped", "room", roomID, "error", err)
		return
	}
	f.transport.Broadcast(roomID, EventRoomUsersList, users)
}

// History delivers a room's message backlog to one joining connection only.
func (f *Fanout) History(clientID string, messages []domain.Message) {
	f.transport.Emit(clientID, EventPreviousMsgs, messages)
}

// SystemMessage announces a membership change inside the affected room only.
func (f *Fanout) SystemMessage(roomID string, message domain.Message) {
	f.transport.Broadcast(roomID, EventReceiveMessage, message)
}

// ChatMessage delivers a chat line to the sender's room and refreshes the
// global room list (last-active ordering shifted).
func (f *Fanout) ChatMessage(roomID string, message domain.Message) {
	f.transport.Broadcast(roomID, EventReceiveMessage, message)
	f.RoomsChanged()
}

// RoomsChanged pushes the refreshed room list to every connection.
func (f *Fanout) RoomsChanged() {
	rooms, err := f.rooms.Chatrooms()
	if err != nil {
		f.log.Warn("Room list fanout skipped", "error", err)
		return
	}
	f.transport.Broadcast(contract.BroadcastAllRooms, EventChatroomsList, rooms)
}

// RoomsList answers an explicit listing request, to the requester only.
func (f *Fanout) RoomsList(clientID string) {
	rooms, err := f.rooms.Chatrooms()
	if err != nil {
		f.Error(clientID, err)
		return
	}
	f.transport.Emit(clientID, EventChatroomsList, rooms)
}

// RoomExists answers an existence probe, to the requester only.
func (f *Fanout) RoomExists(clientID, roomID string, exists bool) {
	f.transport.Emit(clientID, EventChatroomExists, existsPayload{ChatroomID: roomID, Exists: exists})
}

// RoomDeleted notifies the affected room of its own deletion.
func (f *Fanout) RoomDeleted(roomID string) {
	f.transport.Broadcast(roomID, EventChatroomDeleted, roomDeletedPayload{ChatroomID: roomID})
}

// UserLeft tells a room that one of its members disconnected.
func (f *Fanout) UserLeft(roomID, username string) {
	f.transport.Broadcast(roomID, EventUserLeft, userLeftPayload{Username: username})
}

// Error reports a failed operation to the originating connection only;
// other connections never see another client's validation failures.
func (f *Fanout) Error(clientID string, err error) {
	f.transport.Emit(clientID, EventError, errorPayload{Error: err.Error()})
}
