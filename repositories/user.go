//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"chatrooms/domain"
	"chatrooms/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const (
	userPrefix = "user:"
	// Secondary index: username -> clientId. The connection id is the
	// primary key; display names resolve through this index.
	nameIdxPrefix = "uname:"
)

type IUserRepository interface {
	Create(user domain.User) error
	Get(clientID string) (domain.User, error)
	GetByName(username string) (domain.User, error)
	All() ([]domain.User, error)
	ByRoom(roomID string) ([]domain.User, error)
	Update(user domain.User) error
	Delete(clientID string) error
	Purge() (int, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// Create persists the user row and its username index entry.
// Re-registering a live connection id is an invariant violation, and so is
// claiming a display name another connection holds.
func (u UserRepository) Create(user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return u.db.Update(func(txn *badger.Txn) error {
		key := []byte(userPrefix + user.ClientID)
		if _, err := txn.Get(key); err == nil {
			return errors.ErrDuplicateConnection
		}
		if err := nameAvailable(txn, user.Username); err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set([]byte(nameIdxPrefix+user.Username), []byte(user.ClientID))
	})
}

// nameAvailable fails with ErrUsernameTaken when the index already maps the
// display name to a connection. Never clobber the index: the previous owner
// would become unresolvable by name.
func nameAvailable(txn *badger.Txn, username string) error {
	_, err := txn.Get([]byte(nameIdxPrefix + username))
	switch {
	case err == nil:
		return errors.ErrUsernameTaken
	case stderrors.Is(err, badger.ErrKeyNotFound):
		return nil
	default:
		return err
	}
}

func (u UserRepository) Get(clientID string) (domain.User, error) {
	var user domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, userPrefix+clientID, &user)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// GetByName resolves a display name through the secondary index.
func (u UserRepository) GetByName(username string) (domain.User, error) {
	var user domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(nameIdxPrefix + username))
		if err != nil {
			return err
		}
		var clientID string
		if err := item.Value(func(val []byte) error {
			clientID = string(val)
			return nil
		}); err != nil {
			return err
		}
		return getJSON(txn, userPrefix+clientID, &user)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (u UserRepository) All() ([]domain.User, error) {
	var users []domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(userPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var user domain.User
				if err := json.Unmarshal(val, &user); err != nil {
					return err
				}
				users = append(users, user)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return users, err
}

// ByRoom scans the user table; presence rows are few (one per live
// connection), so a filter scan beats maintaining a third index.
func (u UserRepository) ByRoom(roomID string) ([]domain.User, error) {
	users, err := u.All()
	if err != nil {
		return nil, err
	}
	return lo.Filter(users, func(user domain.User, _ int) bool {
		return user.RoomID == roomID
	}), nil
}

// Update overwrites the user row, repointing the username index when the
// display name changed.
func (u UserRepository) Update(user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	err = u.db.Update(func(txn *badger.Txn) error {
		key := []byte(userPrefix + user.ClientID)
		var previous domain.User
		if err := getJSON(txn, string(key), &previous); err != nil {
			return err
		}
		if previous.Username != user.Username {
			if err := nameAvailable(txn, user.Username); err != nil {
				return err
			}
			if err := txn.Delete([]byte(nameIdxPrefix + previous.Username)); err != nil {
				return err
			}
			if err := txn.Set([]byte(nameIdxPrefix+user.Username), []byte(user.ClientID)); err != nil {
				return err
			}
		}
		return txn.Set(key, data)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrUserNotFound
	}
	return err
}

// Delete removes the row and its index entry. A missing row is not an
// error; disconnect cleanup may race with other removal paths.
func (u UserRepository) Delete(clientID string) error {
	err := u.db.Update(func(txn *badger.Txn) error {
		var user domain.User
		if err := getJSON(txn, userPrefix+clientID, &user); err != nil {
			return err
		}
		if err := txn.Delete([]byte(nameIdxPrefix + user.Username)); err != nil {
			return err
		}
		return txn.Delete([]byte(userPrefix + clientID))
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

// Purge drops every user row and index entry. Presence rows describe live
// connections only, so a restarting process clears leftovers at boot.
func (u UserRepository) Purge() (int, error) {
	purged := 0
	err := u.db.Update(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		var keys [][]byte
		for _, prefix := range [][]byte{[]byte(userPrefix), []byte(nameIdxPrefix)} {
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
			purged++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}

func getJSON(txn *badger.Txn, key string, out any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}
