//go:generate go run go.uber.org/mock/mockgen -source=account.go -destination=../mocks/mock_account_repository.go -package=mocks
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
	errs "message-board/errors"
)

type IAccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetAll(ctx context.Context) ([]domain.Account, error)
	Insert(ctx context.Context, acct domain.Account) (domain.Account, error)
	Update(ctx context.Context, acct domain.Account) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// AccountRepository persists accounts in BadgerDB.
//
// Keys:
//   - "account:{id_padded}"    -> JSON-encoded domain.Account
//   - "username:{username}"    -> decimal account id (uniqueness index)
//
// The 19-digit zero padding keeps lexicographic key order equal to numeric id
// order, so GetAll returns accounts in insertion order.
type AccountRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

// NewAccountRepository acquires the id sequence for accounts. Callers own the
// returned repository and must Close it to release unused sequence leases.
func NewAccountRepository(db *badger.DB, log *slog.Logger) (*AccountRepository, error) {
	seq, err := db.GetSequence([]byte("seq:account"), 100)
	if err != nil {
		return nil, fmt.Errorf("account sequence: %w", err)
	}
	return &AccountRepository{db: db, log: log, seq: seq}, nil
}

func (r *AccountRepository) Close() error {
	return r.seq.Release()
}

func accountKey(id int64) []byte {
	return fmt.Appendf(nil, "account:%019d", id)
}

func usernameKey(username string) []byte {
	return []byte("username:" + username)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var acct *domain.Account
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			acct = new(domain.Account)
			return json.Unmarshal(val, acct)
		})
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	accounts := []domain.Account{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("account:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				var acct domain.Account
				if err := json.Unmarshal(val, &acct); err != nil {
					return err
				}
				accounts = append(accounts, acct)
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
	return accounts, nil
}

// Insert assigns the next id and stores the account together with its
// username index entry. The existence check and both writes share one
// read-write transaction, which makes the transaction the authoritative
// duplicate-username signal even under concurrent registrations.
func (r *AccountRepository) Insert(ctx context.Context, acct domain.Account) (domain.Account, error) {
	next, err := r.seq.Next()
	if err != nil {
		return domain.Account{}, err
	}
	acct.ID = int64(next) + 1

	data, err := json.Marshal(acct)
	if err != nil {
		return domain.Account{}, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		idxKey := usernameKey(acct.Username)
		switch _, err := txn.Get(idxKey); {
		case err == nil:
			return errs.ErrUsernameTaken
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		if err := txn.Set(accountKey(acct.ID), data); err != nil {
			return err
		}
		return txn.Set(idxKey, []byte(strconv.FormatInt(acct.ID, 10)))
	})
	if err != nil {
		return domain.Account{}, err
	}

	r.log.Debug("account inserted", "account_id", acct.ID)
	return acct, nil
}

// Update overwrites an existing account and reports whether a record was
// affected. A changed username moves the index entry as well.
func (r *AccountRepository) Update(ctx context.Context, acct domain.Account) (bool, error) {
	affected := false
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(acct.ID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var previous domain.Account
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &previous)
		}); err != nil {
			return err
		}

		if previous.Username != acct.Username {
			switch _, err := txn.Get(usernameKey(acct.Username)); {
			case err == nil:
				return errs.ErrUsernameTaken
			case !errors.Is(err, badger.ErrKeyNotFound):
				return err
			}
			if err := txn.Delete(usernameKey(previous.Username)); err != nil {
				return err
			}
			if err := txn.Set(usernameKey(acct.Username), []byte(strconv.FormatInt(acct.ID, 10))); err != nil {
				return err
			}
		}

		data, err := json.Marshal(acct)
		if err != nil {
			return err
		}
		if err := txn.Set(accountKey(acct.ID), data); err != nil {
			return err
		}
		affected = true
		return nil
	})
	return affected, err
}

// Delete removes the account and its username index entry, reporting whether
// a record was affected.
func (r *AccountRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected := false
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var acct domain.Account
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &acct)
		}); err != nil {
			return err
		}

		if err := txn.Delete(usernameKey(acct.Username)); err != nil {
			return err
		}
		if err := txn.Delete(accountKey(id)); err != nil {
			return err
		}
		affected = true
		return nil
	})
	return affected, err
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var acct *domain.Account
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var id int64
		if err := item.Value(func(val []byte) error {
			var parseErr error
			id, parseErr = strconv.ParseInt(string(val), 10, 64)
			return parseErr
		}); err != nil {
			return err
		}

		record, err := txn.Get(accountKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			// Dangling index entry; treat the account as absent.
			return nil
		}
		if err != nil {
			return err
		}
		return record.Value(func(val []byte) error {
			acct = new(domain.Account)
			return json.Unmarshal(val, acct)
		})
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}
