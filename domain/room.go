package domain

import (
	"slices"
	"time"
)

// LobbyRoom is the parking slot of users that joined no chatroom yet.
// It never exists as a Room record.
const LobbyRoom = "lobby"

// Room is a named chat channel with a membership set and an activity timestamp.
type Room struct {
	ID           string    `json:"chatroomId"`
	Members      []string  `json:"users"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

func NewRoom(id, firstMember string) Room {
	return Room{
		ID:           id,
		Members:      []string{firstMember},
		LastActiveAt: time.Now().UTC(),
	}
}

// AddMember enforces set semantics: adding a username twice is a no-op.
// It reports whether the membership actually changed.
func (r *Room) AddMember(username string) bool {
	if r.HasMember(username) {
		return false
	}
	r.Members = append(r.Members, username)
	return true
}

// RemoveMember reports whether the username was a member.
func (r *Room) RemoveMember(username string) bool {
	before := len(r.Members)
	r.Members = slices.DeleteFunc(r.Members, func(m string) bool {
		return m == username
	})
	return len(r.Members) != before
}

func (r Room) HasMember(username string) bool {
	return slices.Contains(r.Members, username)
}

func (r Room) Empty() bool {
	return len(r.Members) == 0
}
