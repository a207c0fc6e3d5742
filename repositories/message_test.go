package repositories

import (
	"log/slog"
	"testing"
	"time"

	"chatrooms/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testMessage(roomID, author, text string, at time.Time) domain.Message {
	return domain.Message{
		ID:        uuid.New(),
		RoomID:    roomID,
		Author:    author,
		Text:      text,
		CreatedAt: at,
	}
}

func Test_Record_Multiple_Messages_Sorted(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	messages := []domain.Message{
		testMessage("gophers", "Alice", "first", at),
		testMessage("gophers", "Bob", "second", at.Add(1*time.Minute)),
		testMessage("gophers", "Clara", "third", at.Add(2*time.Minute)),
	}
	// Stored out of order on purpose; the key layout must restore it.
	for _, i := range []int{2, 0, 1} {
		req.NoError(repository.Store(messages[i]))
	}

	fetched, err := repository.ByRoom("gophers")
	req.NoError(err)
	req.Len(fetched, len(messages))
	for i := range messages {
		req.Equal(messages[i].Text, fetched[i].Text)
		req.Equal(messages[i].Author, fetched[i].Author)
	}
}

func Test_Messages_Isolated_Per_Room(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	req.NoError(repository.Store(testMessage("gophers", "Alice", "hi", at)))
	req.NoError(repository.Store(testMessage("rustaceans", "Bob", "yo", at)))

	fetched, err := repository.ByRoom("gophers")
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal("Alice", fetched[0].Author)
}

func Test_Same_Nanosecond_Messages_Both_Kept(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	req.NoError(repository.Store(testMessage("gophers", "Alice", "snap", at)))
	req.NoError(repository.Store(testMessage("gophers", "Bob", "snap", at)))

	fetched, err := repository.ByRoom("gophers")
	req.NoError(err)
	req.Len(fetched, 2)
}

func Test_DeleteByRoom_Cascade(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	req.NoError(repository.Store(testMessage("gophers", "Alice", "one", at)))
	req.NoError(repository.Store(testMessage("gophers", "Bob", "two", at.Add(time.Second))))
	req.NoError(repository.Store(testMessage("rustaceans", "Clara", "keep me", at)))

	deleted, err := repository.DeleteByRoom("gophers")
	req.NoError(err)
	req.Equal(2, deleted)

	fetched, err := repository.ByRoom("gophers")
	req.NoError(err)
	req.Empty(fetched)

	kept, err := repository.ByRoom("rustaceans")
	req.NoError(err)
	req.Len(kept, 1)

	// Second cascade finds nothing.
	deleted, err = repository.DeleteByRoom("gophers")
	req.NoError(err)
	req.Zero(deleted)
}
