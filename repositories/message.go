//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"chatrooms/domain"

	"github.com/dgraph-io/badger/v4"
)

type IMessageRepository interface {
	Store(message domain.Message) error
	ByRoom(roomID string) ([]domain.Message, error)
	DeleteByRoom(roomID string) (int, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) IMessageRepository {
	return &MessageRepository{db: db, log: log}
}

// messageKey formats keys as "msg:{room_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
func messageKey(m domain.Message) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%s",
		m.RoomID,
		m.CreatedAt.UnixNano(),
		m.ID,
	))
}

func messagePrefix(roomID string) []byte {
	return []byte(fmt.Sprintf("msg:%s:", roomID))
}

func (m MessageRepository) Store(message domain.Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(message), data)
	})
}

// ByRoom retrieves a room's history using a prefix scan.
// Thanks to the padded timestamp in the key, a forward iteration returns
// messages already sorted oldest first.
func (m MessageRepository) ByRoom(roomID string) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := messagePrefix(roomID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var message domain.Message
				if err := json.Unmarshal(val, &message); err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return messages, err
}

// DeleteByRoom drops a room's entire history (cascade of room deletion).
// It returns the number of deleted messages.
func (m MessageRepository) DeleteByRoom(roomID string) (int, error) {
	deleted := 0
	err := m.db.Update(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := messagePrefix(roomID)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	m.log.Debug("Room history deleted", "room", roomID, "messages", deleted)
	return deleted, nil
}
