package gateway

import (
	"encoding/json"
	"time"
)

// Inbound event names, one per operation a client may request.
const (
	EventUpdateUsername    = "updateUsernameInUsersList"
	EventCreateChatroom    = "createChatroom"
	EventJoinChatroom      = "joinChatroom"
	EventLeaveChatroom     = "leaveChatroom"
	EventSendMessage       = "sendMessage"
	EventGetChatroomsList  = "getChatroomsList"
	EventDoesChatroomExist = "doesChatroomExist"
)

// Envelope is the wire frame in both directions: an event name plus an
// event-specific JSON body.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Tagged request payloads, validated at the boundary before any service
// call. Arbitrary JSON never reaches the coordinator.

type updateUsernameRequest struct {
	NewUsername string `json:"newUsername" validate:"required"`
}

type createChatroomRequest struct {
	ChatroomID string `json:"chatroomId" validate:"required"`
	Username   string `json:"username" validate:"required"`
}

type joinChatroomRequest struct {
	ChatroomID string `json:"chatroomId" validate:"required"`
	Username   string `json:"username" validate:"required"`
}

type leaveChatroomRequest struct {
	ChatroomID string `json:"chatroomId" validate:"required"`
	Username   string `json:"username" validate:"required"`
}

type sendMessageRequest struct {
	ChatroomID string    `json:"chatroomId" validate:"required"`
	Username   string    `json:"username" validate:"required"`
	Text       string    `json:"text" validate:"required"`
	CreatedAt  time.Time `json:"createdAt"`
}

type doesChatroomExistRequest struct {
	ChatroomID string `json:"chatroomId" validate:"required"`
}
