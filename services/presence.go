//go:generate go run go.uber.org/mock/mockgen -source=presence.go -destination=../mocks/mock_presence.go -package=mocks
package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chatrooms/domain"
	"chatrooms/errors"
	"chatrooms/repositories"
)

// IPresenceDirectory is the single source of truth for who is connected,
// under which display name, and in which room.
type IPresenceDirectory interface {
	Register(clientID string) (domain.User, error)
	Rename(clientID, newUsername string) (domain.User, error)
	// SetRoom is keyed by username on purpose: once a user picked a display
	// name, room bookkeeping and message attribution follow that name, not
	// the transient connection id.
	SetRoom(username, roomID string) error
	Find(clientID string) (domain.User, error)
	FindByName(username string) (domain.User, error)
	ListAll() ([]domain.User, error)
	ListByRoom(roomID string) ([]domain.User, error)
	Touch(username string) error
	SetAvatar(clientID, avatarURL string) (domain.User, error)
	Remove(clientID string) error
	Purge() error
}

const colorSchemeSize = 10

type PresenceDirectory struct {
	users repositories.IUserRepository
	log   *slog.Logger
}

func NewPresenceDirectory(users repositories.IUserRepository, log *slog.Logger) *PresenceDirectory {
	return &PresenceDirectory{users: users, log: log}
}

// Register creates the presence row for a fresh connection. The display
// name defaults to the connection id until the client renames itself.
func (p *PresenceDirectory) Register(clientID string) (domain.User, error) {
	user := domain.User{
		ClientID:     clientID,
		Username:     clientID,
		RoomID:       domain.LobbyRoom,
		LastActiveAt: time.Now().UTC(),
		ColorScheme:  domain.RandomColors(colorSchemeSize),
		BubbleColor:  domain.RandomColors(1)[0],
	}
	if err := p.users.Create(user); err != nil {
		return domain.User{}, err
	}
	p.log.Info("User registered", "clientId", clientID)
	return user, nil
}

func (p *PresenceDirectory) Rename(clientID, newUsername string) (domain.User, error) {
	if strings.TrimSpace(newUsername) == "" {
		return domain.User{}, fmt.Errorf("%w: username must not be empty", errors.ErrInvalidInput)
	}
	user, err := p.users.Get(clientID)
	if err != nil {
		return domain.User{}, err
	}
	user.Username = newUsername
	if err := p.users.Update(user); err != nil {
		return domain.User{}, err
	}
	p.log.Info("User renamed", "clientId", clientID, "username", newUsername)
	return user, nil
}

func (p *PresenceDirectory) SetRoom(username, roomID string) error {
	user, err := p.users.GetByName(username)
	if err != nil {
		return err
	}
	user.RoomID = roomID
	return p.users.Update(user)
}

func (p *PresenceDirectory) Find(clientID string) (domain.User, error) {
	return p.users.Get(clientID)
}

func (p *PresenceDirectory) FindByName(username string) (domain.User, error) {
	return p.users.GetByName(username)
}

func (p *PresenceDirectory) ListAll() ([]domain.User, error) {
	return p.users.All()
}

func (p *PresenceDirectory) ListByRoom(roomID string) ([]domain.User, error) {
	return p.users.ByRoom(roomID)
}

// Touch refreshes a user's activity timestamp, keyed by display name
// (message attribution uses names, not connection ids).
func (p *PresenceDirectory) Touch(username string) error {
	user, err := p.users.GetByName(username)
	if err != nil {
		return err
	}
	user.LastActiveAt = time.Now().UTC()
	return p.users.Update(user)
}

// SetAvatar stores the uploaded avatar URL; an empty URL clears it.
func (p *PresenceDirectory) SetAvatar(clientID, avatarURL string) (domain.User, error) {
	user, err := p.users.Get(clientID)
	if err != nil {
		return domain.User{}, err
	}
	user.AvatarURL = avatarURL
	if err := p.users.Update(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Remove deletes the presence row. Absence is not an error: disconnect may
// race with other cleanup.
func (p *PresenceDirectory) Remove(clientID string) error {
	return p.users.Delete(clientID)
}

// Purge clears every presence row. Rows describe live connections only, so
// a restarting process has nothing worth keeping.
func (p *PresenceDirectory) Purge() error {
	purged, err := p.users.Purge()
	if err != nil {
		return err
	}
	p.log.Info("Presence rows purged", "keys", purged)
	return nil
}
