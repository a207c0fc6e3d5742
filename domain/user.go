package domain

import "time"

// User is the presence record of one live connection.
// It exists only while the connection is alive; the row is deleted on disconnect.
type User struct {
	ClientID     string    `json:"clientId"`
	Username     string    `json:"username"`
	RoomID       string    `json:"chatroomId"`
	LastActiveAt time.Time `json:"lastActiveAt"`
	ColorScheme  []string  `json:"colorScheme,omitempty"`
	BubbleColor  string    `json:"bubbleColor,omitempty"`
	AvatarURL    string    `json:"avatar,omitempty"`
}
