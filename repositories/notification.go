//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../mocks/mock_notification_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	notificationPrefix = "ntf:"
	defaultListLimit   = 50
)

type INotificationRepository interface {
	Store(notification DiskNotification) error
	List(limit int) ([]DiskNotification, error)
}

// NotificationRepository is a short-lived journal of hub notifications.
// Entries expire after ttl; nothing survives a restart when the db is in-memory.
type NotificationRepository struct {
	db           *badger.DB
	log          *slog.Logger
	ttl          time.Duration
	defaultLimit int
}

func NewNotificationRepository(db *badger.DB, log *slog.Logger, ttl time.Duration, defaultLimit int) NotificationRepository {
	if defaultLimit <= 0 {
		defaultLimit = defaultListLimit
	}
	return NotificationRepository{db: db, log: log, ttl: ttl, defaultLimit: defaultLimit}
}

// OpenInMemory opens a badger instance that never touches the disk.
func OpenInMemory() (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

type DiskNotification struct {
	ID      uuid.UUID       `json:"id"`
	Type    string          `json:"type"`
	At      time.Time       `json:"at"`
	Payload json.RawMessage `json:"payload"`
}

// Store persists a notification under "ntf:{timestamp_padded}:{type}:{uuid}".
// The 19-digit padding keeps the keys in chronological order and the uuid
// separates two notifications of the same type at the same nanosecond.
func (r NotificationRepository) Store(notification DiskNotification) error {
	key := fmt.Sprintf("%s%019d:%s:%s",
		notificationPrefix,
		notification.At.UnixNano(),
		notification.Type,
		notification.ID,
	)
	bytes, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), bytes)
		if r.ttl > 0 {
			entry = entry.WithTTL(r.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// List returns the newest notifications first, at most limit of them.
// A non-positive limit falls back to the repository default.
func (r NotificationRepository) List(limit int) ([]DiskNotification, error) {
	if limit <= 0 {
		limit = r.defaultLimit
	}
	var values [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(notificationPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts from the greatest key below the seek key
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if len(values) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d notifications reached", limit))
				break
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifications := make([]DiskNotification, 0, len(values))
	for _, b := range values {
		var notification DiskNotification
		if err = json.Unmarshal(b, &notification); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return lo.Map(notifications, func(n DiskNotification, _ int) DiskNotification {
		n.At = n.At.UTC()
		return n
	}), nil
}
