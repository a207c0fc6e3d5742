package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"chatrooms/domain"
	"chatrooms/errors"
	"chatrooms/services"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type handlerFunc func(clientID string, data json.RawMessage) error

// Handler owns the event dispatch table: every inbound event name is bound
// to exactly one handler with a validated request struct. Failures are
// reported to the originating connection only.
type Handler struct {
	hub      *Hub
	presence services.IPresenceDirectory
	rooms    services.IRoomService
	fanout   *services.Fanout
	validate *validator.Validate
	log      *slog.Logger
	routes   map[string]handlerFunc
}

func NewHandler(
	hub *Hub,
	presence services.IPresenceDirectory,
	rooms services.IRoomService,
	fanout *services.Fanout,
	log *slog.Logger,
) *Handler {
	h := &Handler{
		hub:      hub,
		presence: presence,
		rooms:    rooms,
		fanout:   fanout,
		validate: validator.New(),
		log:      log,
	}
	h.routes = map[string]handlerFunc{
		EventUpdateUsername:    h.onUpdateUsername,
		EventCreateChatroom:    h.onCreateChatroom,
		EventJoinChatroom:      h.onJoinChatroom,
		EventLeaveChatroom:     h.onLeaveChatroom,
		EventSendMessage:       h.onSendMessage,
		EventGetChatroomsList:  h.onGetChatroomsList,
		EventDoesChatroomExist: h.onDoesChatroomExist,
	}
	return h
}

// ServeWS upgrades the HTTP request, registers the connection and starts
// its pumps. Connection ids are opaque, transport-assigned, and unique for
// the session lifetime.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		handler: h,
	}
	h.hub.add(client)

	go client.writePump(h.log)
	go func() {
		h.OnConnect(client.id)
		client.readPump(h.hub, h.log)
	}()
}

// Dispatch routes one inbound frame to its handler; unknown events and
// handler failures are answered with an error event to the origin.
func (h *Handler) Dispatch(clientID, event string, data json.RawMessage) {
	route, ok := h.routes[event]
	if !ok {
		h.fanout.Error(clientID, fmt.Errorf("%w: unknown event %q", errors.ErrInvalidInput, event))
		return
	}
	if err := route(clientID, data); err != nil {
		h.log.Warn("Event handling failed", "event", event, "clientId", clientID, "error", err)
		h.fanout.Error(clientID, err)
	}
}

func (h *Handler) OnConnect(clientID string) {
	user, err := h.presence.Register(clientID)
	if err != nil {
		h.log.Error("Connection registration failed", "clientId", clientID, "error", err)
		h.fanout.Error(clientID, err)
		return
	}
	h.fanout.Connected(clientID, user)
	h.fanout.UsersChanged()
}

// OnDisconnect cleans up after an abrupt or orderly close: the user silently
// leaves their room (announced to that room only, and only if they were in
// one) and their presence row disappears.
func (h *Handler) OnDisconnect(clientID string) {
	user, err := h.presence.Find(clientID)
	if err != nil {
		// Already removed; disconnect raced another cleanup path.
		return
	}

	if user.RoomID != "" && user.RoomID != domain.LobbyRoom {
		system, _, err := h.rooms.LeaveRoom(user.RoomID, user.Username)
		if err != nil {
			h.log.Warn("Leave on disconnect failed", "room", user.RoomID, "username", user.Username, "error", err)
		} else {
			h.fanout.SystemMessage(user.RoomID, system)
			h.fanout.UserLeft(user.RoomID, user.Username)
			h.fanout.RoomUsersChanged(user.RoomID)
		}
	}

	if err := h.presence.Remove(clientID); err != nil {
		h.log.Warn("Presence removal failed", "clientId", clientID, "error", err)
	}
	h.log.Info("Client disconnected", "clientId", clientID, "username", user.Username)
	h.fanout.UsersChanged()
}

func (h *Handler) onUpdateUsername(clientID string, data json.RawMessage) error {
	req, err := decode[updateUsernameRequest](h.validate, data)
	if err != nil {
		return err
	}
	if _, err := h.presence.Rename(clientID, req.NewUsername); err != nil {
		return err
	}
	h.fanout.UsersChanged()
	return nil
}

func (h *Handler) onCreateChatroom(clientID string, data json.RawMessage) error {
	req, err := decode[createChatroomRequest](h.validate, data)
	if err != nil {
		return err
	}
	_, system, err := h.rooms.CreateRoom(req.ChatroomID, req.Username)
	if err != nil {
		return err
	}

	h.hub.JoinChannel(clientID, req.ChatroomID)
	h.fanout.SystemMessage(req.ChatroomID, system)
	h.fanout.RoomUsersChanged(req.ChatroomID)
	h.fanout.UsersChanged()
	h.fanout.RoomsChanged()
	return nil
}

func (h *Handler) onJoinChatroom(clientID string, data json.RawMessage) error {
	req, err := decode[joinChatroomRequest](h.validate, data)
	if err != nil {
		return err
	}
	result, err := h.rooms.JoinRoom(req.ChatroomID, req.Username)
	if err != nil {
		return err
	}

	// Program order for the joiner: history first, announcement second.
	h.hub.JoinChannel(clientID, req.ChatroomID)
	h.fanout.History(clientID, result.History)
	if result.System != nil {
		h.fanout.SystemMessage(req.ChatroomID, *result.System)
	}
	h.fanout.RoomUsersChanged(req.ChatroomID)
	h.fanout.UsersChanged()
	return nil
}

func (h *Handler) onLeaveChatroom(clientID string, data json.RawMessage) error {
	req, err := decode[leaveChatroomRequest](h.validate, data)
	if err != nil {
		return err
	}
	system, _, err := h.rooms.LeaveRoom(req.ChatroomID, req.Username)
	if err != nil {
		return err
	}

	h.hub.LeaveChannel(clientID, req.ChatroomID)
	h.fanout.SystemMessage(req.ChatroomID, system)
	h.fanout.RoomUsersChanged(req.ChatroomID)
	h.fanout.UsersChanged()
	return nil
}

func (h *Handler) onSendMessage(clientID string, data json.RawMessage) error {
	req, err := decode[sendMessageRequest](h.validate, data)
	if err != nil {
		return err
	}
	message, err := h.rooms.SaveMessage(req.ChatroomID, req.Username, req.Text, req.CreatedAt)
	if err != nil {
		return err
	}
	h.fanout.ChatMessage(req.ChatroomID, message)
	return nil
}

func (h *Handler) onGetChatroomsList(clientID string, _ json.RawMessage) error {
	h.fanout.RoomsList(clientID)
	return nil
}

func (h *Handler) onDoesChatroomExist(clientID string, data json.RawMessage) error {
	req, err := decode[doesChatroomExistRequest](h.validate, data)
	if err != nil {
		return err
	}
	exists, err := h.rooms.RoomExists(req.ChatroomID)
	if err != nil {
		return err
	}
	h.fanout.RoomExists(clientID, req.ChatroomID, exists)
	return nil
}

// decode unmarshals and validates a request body; anything malformed stops
// at the boundary with ErrInvalidInput.
func decode[T any](validate *validator.Validate, data json.RawMessage) (T, error) {
	var req T
	if len(data) == 0 {
		return req, fmt.Errorf("%w: missing event body", errors.ErrInvalidInput)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	return req, nil
}
