package services

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chatrooms/domain"
	"chatrooms/errors"
	"chatrooms/moderation"
	"chatrooms/repositories"

	"github.com/stretchr/testify/require"
)

type roomsHarness struct {
	service  *RoomService
	rooms    repositories.IRoomRepository
	messages repositories.IMessageRepository
	presence *PresenceDirectory
}

func newRoomsHarness(t *testing.T) roomsHarness {
	t.Helper()
	req := require.New(t)
	db := openTestDB(t)
	log := slog.Default()

	rooms := repositories.NewRoomRepository(db)
	messages := repositories.NewMessageRepository(db, log)
	presence := NewPresenceDirectory(repositories.NewUserRepository(db), log)

	moderator, err := moderation.NewModerator([]string{"badger"}, '*')
	req.NoError(err)

	service := NewRoomService(rooms, messages, presence, &moderator, log, 10*time.Minute)
	return roomsHarness{service: service, rooms: rooms, messages: messages, presence: presence}
}

// connect registers a presence row under the given display name.
func (h roomsHarness) connect(t *testing.T, clientID, username string) {
	t.Helper()
	req := require.New(t)
	_, err := h.presence.Register(clientID)
	req.NoError(err)
	_, err = h.presence.Rename(clientID, username)
	req.NoError(err)
}

func TestRoomService_CreateRoom(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)
	h.connect(t, "c-1", "Alice")

	room, system, err := h.service.CreateRoom("gophers", "Alice")
	req.NoError(err)
	req.Equal("gophers", room.ID)
	req.Equal([]string{"Alice"}, room.Members)
	req.Equal("Alice has created the chatroom", system.Text)

	// The creator's room pointer follows.
	user, err := h.presence.FindByName("Alice")
	req.NoError(err)
	req.Equal("gophers", user.RoomID)

	// The announcement is part of the room history.
	history, err := h.service.MessagesByRoom("gophers")
	req.NoError(err)
	req.Len(history, 1)
	req.Equal(system.Text, history[0].Text)

	_, _, err = h.service.CreateRoom("gophers", "Bob")
	req.ErrorIs(err, errors.ErrRoomAlreadyExists)
}

func TestRoomService_JoinRoom_Idempotent(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)
	h.connect(t, "c-1", "Alice")
	h.connect(t, "c-2", "Bob")

	_, _, err := h.service.CreateRoom("gophers", "Alice")
	req.NoError(err)

	result, err := h.service.JoinRoom("gophers", "Bob")
	req.NoError(err)
	req.NotNil(result.System)
	req.Equal("Bob has joined the chatroom", result.System.Text)
	req.ElementsMatch([]string{"Alice", "Bob"}, result.Room.Members)

	// The history snapshot predates the join announcement: the joiner
	// receives it exactly once, through the room broadcast.
	req.Len(result.History, 1)
	req.Equal("Alice has created the chatroom", result.History[0].Text)

	// A second join changes nothing and announces nothing.
	again, err := h.service.JoinRoom("gophers", "Bob")
	req.NoError(err)
	req.Nil(again.System)
	req.ElementsMatch([]string{"Alice", "Bob"}, again.Room.Members)

	history, err := h.service.MessagesByRoom("gophers")
	req.NoError(err)
	req.Len(history, 2) // create + single join announcement

	_, err = h.service.JoinRoom("nowhere", "Bob")
	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func TestRoomService_LeaveRoom(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)
	h.connect(t, "c-1", "Alice")

	_, _, err := h.service.CreateRoom("gophers", "Alice")
	req.NoError(err)

	system, left, err := h.service.LeaveRoom("gophers", "Alice")
	req.NoError(err)
	req.True(left)
	req.Equal("Alice has left the chatroom", system.Text)

	// Leaving parks the user back in the lobby.
	user, err := h.presence.FindByName("Alice")
	req.NoError(err)
	req.Equal(domain.LobbyRoom, user.RoomID)

	// The emptied room survives; deletion is the reaper's job.
	exists, err := h.service.RoomExists("gophers")
	req.NoError(err)
	req.True(exists)

	// Leaving a room one is not in is a no-op, not an error.
	_, left, err = h.service.LeaveRoom("gophers", "Alice")
	req.NoError(err)
	req.False(left)

	_, _, err = h.service.LeaveRoom("nowhere", "Alice")
	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func TestRoomService_SaveMessage(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)
	h.connect(t, "c-1", "Alice")

	_, _, err := h.service.CreateRoom("gophers", "Alice")
	req.NoError(err)

	message, err := h.service.SaveMessage("gophers", "Alice", "hello world", time.Time{})
	req.NoError(err)
	req.Equal("hello world", message.Text)
	req.Equal("Alice", message.Author)
	req.False(message.CreatedAt.IsZero())
	req.NotEmpty(message.BubbleColor)

	// Forbidden words are censored before persistence.
	censored, err := h.service.SaveMessage("gophers", "Alice", "you badger", time.Now())
	req.NoError(err)
	req.Equal("you ******", censored.Text)

	history, err := h.service.MessagesByRoom("gophers")
	req.NoError(err)
	req.Len(history, 3)
	req.Equal("you ******", history[2].Text)

	_, err = h.service.SaveMessage("nowhere", "Alice", "lost", time.Now())
	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func TestRoomService_Chatrooms_Sorted_By_Activity(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)
	h.connect(t, "c-1", "Alice")

	_, _, err := h.service.CreateRoom("first", "Alice")
	req.NoError(err)
	_, _, err = h.service.CreateRoom("second", "Alice")
	req.NoError(err)

	// A message in "first" bumps it back to the top.
	_, err = h.service.SaveMessage("first", "Alice", "bump", time.Now())
	req.NoError(err)

	rooms, err := h.service.Chatrooms()
	req.NoError(err)
	req.Len(rooms, 2)
	req.Equal("first", rooms[0].ID)
	req.Equal("second", rooms[1].ID)
}

func TestRoomService_RoomExists(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)

	exists, err := h.service.RoomExists("gophers")
	req.NoError(err)
	req.False(exists)

	_, _, err = h.service.CreateRoom("gophers", "Alice")
	req.NoError(err)

	exists, err = h.service.RoomExists("gophers")
	req.NoError(err)
	req.True(exists)
}

func TestRoomService_RemoveInactiveRooms(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)
	h.connect(t, "c-1", "Alice")

	_, _, err := h.service.CreateRoom("dusty", "Alice")
	req.NoError(err)
	_, _, err = h.service.CreateRoom("busy", "Alice")
	req.NoError(err)

	// Empty "dusty" and backdate it past the idle threshold.
	_, _, err = h.service.LeaveRoom("dusty", "Alice")
	req.NoError(err)
	req.NoError(h.rooms.Touch("dusty", time.Now().UTC().Add(-1*time.Hour)))

	deleted, err := h.service.RemoveInactiveRooms(time.Now().UTC())
	req.NoError(err)
	req.Equal([]string{"dusty"}, deleted)

	exists, err := h.service.RoomExists("dusty")
	req.NoError(err)
	req.False(exists)

	// The cascade removed the room's history too.
	history, err := h.service.MessagesByRoom("dusty")
	req.NoError(err)
	req.Empty(history)

	// "busy" was recently active and is untouched.
	exists, err = h.service.RoomExists("busy")
	req.NoError(err)
	req.True(exists)

	// The deleted room's lock entry is released with it.
	h.service.mu.Lock()
	_, held := h.service.locks["dusty"]
	h.service.mu.Unlock()
	req.False(held)
}

// A message racing the reaper either lands before the delete (and the room
// survives, freshly touched) or fails with not-found. It must never be
// persisted into a room that no longer exists.
func TestRoomService_Save_Racing_Reaper_Leaves_No_Orphans(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)
	h.connect(t, "c-1", "Alice")

	for round := 0; round < 25; round++ {
		roomID := fmt.Sprintf("flash-%d", round)
		_, _, err := h.service.CreateRoom(roomID, "Alice")
		req.NoError(err)
		_, _, err = h.service.LeaveRoom(roomID, "Alice")
		req.NoError(err)
		req.NoError(h.rooms.Touch(roomID, time.Now().UTC().Add(-1*time.Hour)))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = h.service.SaveMessage(roomID, "Alice", "last words", time.Now())
		}()
		go func() {
			defer wg.Done()
			_, _ = h.service.RemoveInactiveRooms(time.Now().UTC())
		}()
		wg.Wait()

		exists, err := h.service.RoomExists(roomID)
		req.NoError(err)
		if !exists {
			history, err := h.service.MessagesByRoom(roomID)
			req.NoError(err)
			req.Empty(history, "room %s was deleted but kept messages", roomID)
		}
	}
}

func TestRoomService_Reaper_Spares_Occupied_Rooms(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)
	h.connect(t, "c-1", "Alice")

	// Idle past the threshold but the membership set is not empty.
	_, _, err := h.service.CreateRoom("occupied", "Alice")
	req.NoError(err)
	req.NoError(h.rooms.Touch("occupied", time.Now().UTC().Add(-1*time.Hour)))

	deleted, err := h.service.RemoveInactiveRooms(time.Now().UTC())
	req.NoError(err)
	req.Empty(deleted)

	exists, err := h.service.RoomExists("occupied")
	req.NoError(err)
	req.True(exists)
}

func TestRoomService_Reaper_Spares_Rooms_With_Online_Users(t *testing.T) {
	req := require.New(t)
	h := newRoomsHarness(t)
	h.connect(t, "c-1", "Alice")

	_, _, err := h.service.CreateRoom("lingering", "Alice")
	req.NoError(err)
	_, _, err = h.service.LeaveRoom("lingering", "Alice")
	req.NoError(err)

	// Membership is empty, but somebody's presence still points at the room.
	req.NoError(h.presence.SetRoom("Alice", "lingering"))
	req.NoError(h.rooms.Touch("lingering", time.Now().UTC().Add(-1*time.Hour)))

	deleted, err := h.service.RemoveInactiveRooms(time.Now().UTC())
	req.NoError(err)
	req.Empty(deleted)

	exists, err := h.service.RoomExists("lingering")
	req.NoError(err)
	req.True(exists)
}
