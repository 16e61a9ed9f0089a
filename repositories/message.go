//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"message-board/domain"
)

type IMessageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	GetAll(ctx context.Context) ([]domain.Message, error)
	Insert(ctx context.Context, msg domain.Message) (domain.Message, error)
	Update(ctx context.Context, msg domain.Message) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByOwner(ctx context.Context, accountID int64) ([]domain.Message, error)
}

// MessageRepository persists messages in BadgerDB.
//
// Keys:
//   - "message:{id_padded}"          -> JSON-encoded domain.Message
//   - "owner:{account_id}:{id_padded}" -> decimal message id (by-owner index)
//
// The padded id in the owner index keeps a prefix scan over one account's
// messages in posting order.
type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

// NewMessageRepository acquires the id sequence for messages. Callers own the
// returned repository and must Close it to release unused sequence leases.
func NewMessageRepository(db *badger.DB, log *slog.Logger) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte("seq:message"), 100)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &MessageRepository{db: db, log: log, seq: seq}, nil
}

func (r *MessageRepository) Close() error {
	return r.seq.Release()
}

func messageKey(id int64) []byte {
	return fmt.Appendf(nil, "message:%019d", id)
}

func ownerKey(accountID, messageID int64) []byte {
	return fmt.Appendf(nil, "owner:%d:%019d", accountID, messageID)
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var msg *domain.Message
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(messageKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			msg = new(domain.Message)
			return json.Unmarshal(val, msg)
		})
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *MessageRepository) GetAll(ctx context.Context) ([]domain.Message, error) {
	messages := []domain.Message{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("message:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				var msg domain.Message
				if err := json.Unmarshal(val, &msg); err != nil {
					return err
				}
				messages = append(messages, msg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Insert assigns the next id and stores the message together with its owner
// index entry in a single transaction.
func (r *MessageRepository) Insert(ctx context.Context, msg domain.Message) (domain.Message, error) {
	next, err := r.seq.Next()
	if err != nil {
		return domain.Message{}, err
	}
	msg.ID = int64(next) + 1

	data, err := json.Marshal(msg)
	if err != nil {
		return domain.Message{}, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(messageKey(msg.ID), data); err != nil {
			return err
		}
		return txn.Set(ownerKey(msg.PostedBy, msg.ID), []byte(strconv.FormatInt(msg.ID, 10)))
	})
	if err != nil {
		return domain.Message{}, err
	}

	r.log.Debug("message inserted", "message_id", msg.ID, "posted_by", msg.PostedBy)
	return msg, nil
}

// Update overwrites an existing message and reports whether a record was
// affected. The owner index needs no maintenance since ownership never moves.
func (r *MessageRepository) Update(ctx context.Context, msg domain.Message) (bool, error) {
	affected := false
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(messageKey(msg.ID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		if err := txn.Set(messageKey(msg.ID), data); err != nil {
			return err
		}
		affected = true
		return nil
	})
	return affected, err
}

// Delete removes the message and its owner index entry, reporting whether a
// record was affected.
func (r *MessageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected := false
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(messageKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var msg domain.Message
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &msg)
		}); err != nil {
			return err
		}

		if err := txn.Delete(ownerKey(msg.PostedBy, id)); err != nil {
			return err
		}
		if err := txn.Delete(messageKey(id)); err != nil {
			return err
		}
		affected = true
		return nil
	})
	return affected, err
}

func (r *MessageRepository) FindByOwner(ctx context.Context, accountID int64) ([]domain.Message, error) {
	messages := []domain.Message{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := fmt.Appendf(nil, "owner:%d:", accountID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var id int64
			err := it.Item().Value(func(val []byte) error {
				var err error
				id, err = strconv.ParseInt(string(val), 10, 64)
				return err
			})
			if err != nil {
				return err
			}

			record, err := txn.Get(messageKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				// Dangling index entry; skip it.
				continue
			}
			if err != nil {
				return err
			}
			err = record.Value(func(val []byte) error {
				var msg domain.Message
				if err := json.Unmarshal(val, &msg); err != nil {
					return err
				}
				messages = append(messages, msg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}
