//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"chatrooms/domain"
	"chatrooms/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const roomPrefix = "room:"

type IRoomRepository interface {
	Create(room domain.Room) error
	Get(roomID string) (domain.Room, error)
	All() ([]domain.Room, error)
	Save(room domain.Room) error
	Touch(roomID string, at time.Time) error
	Delete(roomID string) error
	StaleBefore(cutoff time.Time) ([]domain.Room, error)
}

type RoomRepository struct {
	db *badger.DB
}

func NewRoomRepository(db *badger.DB) IRoomRepository {
	return &RoomRepository{db: db}
}

// Create persists a new room document under "room:{id}".
// The existence check runs inside the same transaction as the write,
// so two concurrent creates of the same id cannot both succeed.
func (r RoomRepository) Create(room domain.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(roomPrefix + room.ID)
		if _, err := txn.Get(key); err == nil {
			return errors.ErrRoomAlreadyExists
		}
		return txn.Set(key, data)
	})
}

func (r RoomRepository) Get(roomID string) (domain.Room, error) {
	var room domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(roomPrefix + roomID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &room)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Room{}, errors.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (r RoomRepository) All() ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(roomPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var room domain.Room
				if err := json.Unmarshal(val, &room); err != nil {
					return err
				}
				rooms = append(rooms, room)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return rooms, err
}

// Save overwrites the full room document (membership mutations).
func (r RoomRepository) Save(room domain.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(roomPrefix+room.ID), data)
	})
}

// Touch refreshes lastActiveAt without the caller re-reading the document.
// Read-modify-write runs in one transaction; a concurrent conflicting
// update surfaces as badger.ErrConflict to the caller.
func (r RoomRepository) Touch(roomID string, at time.Time) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		key := []byte(roomPrefix + roomID)
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		var room domain.Room
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &room)
		}); err != nil {
			return err
		}
		room.LastActiveAt = at
		data, err := json.Marshal(room)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrRoomNotFound
	}
	return err
}

func (r RoomRepository) Delete(roomID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(roomPrefix + roomID))
	})
}

// StaleBefore returns rooms whose lastActiveAt is older than cutoff.
func (r RoomRepository) StaleBefore(cutoff time.Time) ([]domain.Room, error) {
	rooms, err := r.All()
	if err != nil {
		return nil, err
	}
	return lo.Filter(rooms, func(room domain.Room, _ int) bool {
		return room.LastActiveAt.Before(cutoff)
	}), nil
}
