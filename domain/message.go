// Package domain contains core concepts of the chat system.
// Messages are immutable once persisted; they are deleted only as a
// cascade of their room's deletion.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents one chat line, user-authored or server-synthesized.
type Message struct {
	ID          uuid.UUID `json:"id"`
	RoomID      string    `json:"chatroomId"`
	Author      string    `json:"username"`
	Text        string    `json:"text"`
	BubbleColor string    `json:"bubbleColor,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
