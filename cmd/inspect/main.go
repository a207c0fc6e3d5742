// Command inspect dumps the chatroom store for debugging: rooms, messages,
// or presence rows depending on the prefix. It opens the database read-only
// and can run while the server holds the lock.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"chatrooms/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "data/chatrooms", "Path to badger DB")
	prefix := flag.String("prefix", "room:", "Prefix to scan (room:, msg:, user:)")
	flag.Parse()

	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Entity", "Detail", "Last Active / Created"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				table.Append(toRow(key, v))
				return nil
			})
			if err != nil {
				// Log the bad record and keep scanning instead of aborting.
				fmt.Printf("Error reading key %s: %v\n", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Scan failed: ", err)
	}

	table.Render()
}

func toRow(key string, val []byte) []string {
	switch {
	case len(key) > 5 && key[:5] == "room:":
		var room domain.Room
		if err := json.Unmarshal(val, &room); err == nil {
			return []string{key, "ROOM", room.ID,
				fmt.Sprintf("%d member(s): %v", len(room.Members), room.Members),
				room.LastActiveAt.Format(time.RFC822)}
		}
	case len(key) > 4 && key[:4] == "msg:":
		var message domain.Message
		if err := json.Unmarshal(val, &message); err == nil {
			return []string{key, "MESSAGE", message.Author, message.Text,
				message.CreatedAt.Format(time.RFC822)}
		}
	case len(key) > 5 && key[:5] == "user:":
		var user domain.User
		if err := json.Unmarshal(val, &user); err == nil {
			return []string{key, "USER", user.Username,
				fmt.Sprintf("room=%s avatar=%s", user.RoomID, user.AvatarURL),
				user.LastActiveAt.Format(time.RFC822)}
		}
	}
	return []string{key, "RAW", "", string(val), ""}
}
