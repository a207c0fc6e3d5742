//go:generate go run go.uber.org/mock/mockgen -source=rooms.go -destination=../mocks/mock_rooms.go -package=mocks
package services

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"chatrooms/domain"
	"chatrooms/errors"
	"chatrooms/moderation"
	"chatrooms/repositories"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
)

// JoinResult is what a joining connection gets back: the room, its full
// history (ascending), and the persisted "has joined" system message when
// the join actually changed membership. System is nil on idempotent re-joins.
type JoinResult struct {
	Room    domain.Room
	History []domain.Message
	System  *domain.Message
}

// IRoomService coordinates room lifecycle and membership transitions,
// keeping the presence directory in sync and pairing every state change
// with a persisted system message.
type IRoomService interface {
	CreateRoom(roomID, username string) (domain.Room, domain.Message, error)
	JoinRoom(roomID, username string) (JoinResult, error)
	LeaveRoom(roomID, username string) (domain.Message, bool, error)
	Chatrooms() ([]domain.Room, error)
	RoomExists(roomID string) (bool, error)
	SaveMessage(roomID, author, text string, createdAt time.Time) (domain.Message, error)
	MessagesByRoom(roomID string) ([]domain.Message, error)
	RemoveInactiveRooms(now time.Time) ([]string, error)
}

type RoomService struct {
	rooms         repositories.IRoomRepository
	messages      repositories.IMessageRepository
	presence      IPresenceDirectory
	moderator     *moderation.Moderator
	log           *slog.Logger
	idleThreshold time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRoomService(
	rooms repositories.IRoomRepository,
	messages repositories.IMessageRepository,
	presence IPresenceDirectory,
	moderator *moderation.Moderator,
	log *slog.Logger,
	idleThreshold time.Duration,
) *RoomService {
	return &RoomService{
		rooms:         rooms,
		messages:      messages,
		presence:      presence,
		moderator:     moderator,
		log:           log,
		idleThreshold: idleThreshold,
		locks:         make(map[string]*sync.Mutex),
	}
}

// roomLock returns the mutex serializing membership mutations for one room.
// Different rooms proceed concurrently; the reaper takes the same lock so a
// concurrent join can never race a deletion of the same room.
func (s *RoomService) roomLock(roomID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[roomID] = lock
	}
	return lock
}

func (s *RoomService) CreateRoom(roomID, username string) (domain.Room, domain.Message, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	room := domain.NewRoom(roomID, username)
	if err := s.rooms.Create(room); err != nil {
		return domain.Room{}, domain.Message{}, err
	}
	if err := s.presence.SetRoom(username, roomID); err != nil {
		s.log.Warn("Room pointer update failed after create", "room", roomID, "username", username, "error", err)
	}

	system, err := s.storeSystemMessage(roomID, username, "has created the chatroom")
	if err != nil {
		return domain.Room{}, domain.Message{}, err
	}
	s.log.Info("Chatroom created", "room", roomID, "by", username)
	return room, system, nil
}

func (s *RoomService) JoinRoom(roomID, username string) (JoinResult, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	room, err := s.rooms.Get(roomID)
	if err != nil {
		return JoinResult{}, err
	}

	// History snapshot before the join message, so the joining connection
	// sees the announcement exactly once (via the room broadcast).
	history, err := s.messages.ByRoom(roomID)
	if err != nil {
		return JoinResult{}, err
	}

	result := JoinResult{Room: room, History: history}
	if room.AddMember(username) {
		if err := s.rooms.Save(room); err != nil {
			return JoinResult{}, err
		}
		result.Room = room
		if err := s.presence.SetRoom(username, roomID); err != nil {
			s.log.Warn("Room pointer update failed after join", "room", roomID, "username", username, "error", err)
		}
		system, err := s.storeSystemMessage(roomID, username, "has joined the chatroom")
		if err != nil {
			return JoinResult{}, err
		}
		result.System = &system
		s.log.Info("User joined chatroom", "room", roomID, "username", username)
	}
	return result, nil
}

// LeaveRoom removes the username from the membership set; leaving a room one
// is not a member of is a no-op, not an error. The "has left" system message
// is persisted unconditionally. An emptied room is NOT deleted here: deletion
// is owned by the inactivity reaper (grace-period policy).
func (s *RoomService) LeaveRoom(roomID, username string) (domain.Message, bool, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	room, err := s.rooms.Get(roomID)
	if err != nil {
		return domain.Message{}, false, err
	}

	left := room.RemoveMember(username)
	if left {
		if err := s.rooms.Save(room); err != nil {
			return domain.Message{}, false, err
		}
		if err := s.presence.SetRoom(username, domain.LobbyRoom); err != nil {
			s.log.Debug("Room pointer reset skipped", "username", username, "error", err)
		}
	}

	system, err := s.storeSystemMessage(roomID, username, "has left the chatroom")
	if err != nil {
		return domain.Message{}, left, err
	}
	s.log.Info("User left chatroom", "room", roomID, "username", username, "memberRemoved", left)
	return system, left, nil
}

// Chatrooms lists rooms most-recently-active first for the room picker.
func (s *RoomService) Chatrooms() ([]domain.Room, error) {
	rooms, err := s.rooms.All()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(rooms, func(a, b domain.Room) int {
		return b.LastActiveAt.Compare(a.LastActiveAt)
	})
	return rooms, nil
}

func (s *RoomService) RoomExists(roomID string) (bool, error) {
	_, err := s.rooms.Get(roomID)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, errors.ErrRoomNotFound):
		return false, nil
	default:
		return false, err
	}
}

// SaveMessage persists a user-authored message after moderation, stamping it
// with the author's bubble color and refreshing both the room's and the
// author's activity timestamps. Fails when the room does not exist.
func (s *RoomService) SaveMessage(roomID, author, text string, createdAt time.Time) (domain.Message, error) {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	// Moderation needs no room state; keep it outside the lock.
	censored := text
	if s.moderator != nil {
		var matched []string
		censored, matched = s.moderator.Censor(text)
		if len(matched) > 0 {
			info := whatlanggo.Detect(text)
			s.log.Warn("Message censored",
				"room", roomID,
				"author", author,
				"words", len(matched),
				"lang", info.Lang.Iso6391())
		}
	}

	// Existence check and store happen under the room lock: the reaper holds
	// the same lock while deleting, so a message can never land in a room
	// that is being removed.
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.rooms.Get(roomID); err != nil {
		return domain.Message{}, err
	}

	message := domain.Message{
		ID:        uuid.New(),
		RoomID:    roomID,
		Author:    author,
		Text:      censored,
		CreatedAt: createdAt.UTC(),
	}
	if user, err := s.presence.FindByName(author); err == nil {
		message.BubbleColor = user.BubbleColor
	}

	if err := s.messages.Store(message); err != nil {
		return domain.Message{}, fmt.Errorf("store message: %w", err)
	}
	if err := s.rooms.Touch(roomID, time.Now().UTC()); err != nil {
		s.log.Warn("Room activity refresh failed", "room", roomID, "error", err)
	}
	if err := s.presence.Touch(author); err != nil {
		s.log.Debug("User activity refresh skipped", "author", author, "error", err)
	}
	return message, nil
}

func (s *RoomService) MessagesByRoom(roomID string) ([]domain.Message, error) {
	return s.messages.ByRoom(roomID)
}

// RemoveInactiveRooms deletes rooms idle for longer than the threshold and
// with nobody left in them, cascading message deletion. A failure on one
// room never stops the sweep; it is logged and the next candidate is tried.
// Membership and activity are re-read under the room lock immediately before
// the delete so a join or message racing the sweep always wins.
func (s *RoomService) RemoveInactiveRooms(now time.Time) ([]string, error) {
	stale, err := s.rooms.StaleBefore(now.Add(-s.idleThreshold))
	if err != nil {
		return nil, fmt.Errorf("stale room scan: %w", err)
	}

	var deleted []string
	cutoff := now.Add(-s.idleThreshold)
	for _, candidate := range stale {
		if removed := s.reapRoom(candidate.ID, cutoff); removed {
			deleted = append(deleted, candidate.ID)
		}
	}
	return deleted, nil
}

func (s *RoomService) reapRoom(roomID string, cutoff time.Time) bool {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	// Fresh read under the lock; the candidate list may be stale by now.
	room, err := s.rooms.Get(roomID)
	if err != nil {
		s.log.Warn("Reaper could not re-read room", "room", roomID, "error", err)
		return false
	}
	if room.LastActiveAt.After(cutoff) {
		// A message slipped in between the scan and the lock.
		return false
	}
	if !room.Empty() {
		return false
	}
	online, err := s.presence.ListByRoom(roomID)
	if err != nil {
		s.log.Warn("Reaper presence check failed", "room", roomID, "error", err)
		return false
	}
	if len(online) > 0 {
		return false
	}

	count, err := s.messages.DeleteByRoom(roomID)
	if err != nil {
		s.log.Warn("Reaper message cascade failed", "room", roomID, "error", err)
		return false
	}
	if err := s.rooms.Delete(roomID); err != nil {
		s.log.Warn("Reaper room delete failed", "room", roomID, "error", err)
		return false
	}

	// The room is gone; its lock entry goes too so the map does not grow
	// with every room ever created. A later create mints a fresh one.
	s.mu.Lock()
	delete(s.locks, roomID)
	s.mu.Unlock()

	s.log.Info("Inactive chatroom removed", "room", roomID, "messagesDeleted", count)
	return true
}

func (s *RoomService) storeSystemMessage(roomID, username, action string) (domain.Message, error) {
	message := domain.Message{
		ID:        uuid.New(),
		RoomID:    roomID,
		Author:    username,
		Text:      fmt.Sprintf("%s %s", username, action),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Store(message); err != nil {
		return domain.Message{}, fmt.Errorf("store system message: %w", err)
	}
	return message, nil
}
