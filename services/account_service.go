package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"message-board/auth"
	"message-board/domain"
	errs "message-board/errors"
	"message-board/repositories"
)

type IAccountService interface {
	GetAccountByID(ctx context.Context, id int64) (*domain.Account, error)
	GetAllAccounts(ctx context.Context) ([]domain.Account, error)
	FindAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
	ValidateLogin(ctx context.Context, creds domain.Credentials) (*domain.Account, error)
	CreateAccount(ctx context.Context, acct domain.Account) (domain.Account, error)
	UpdateAccount(ctx context.Context, acct domain.Account) (bool, error)
	DeleteAccount(ctx context.Context, acct domain.Account) (bool, error)
	AccountExists(ctx context.Context, id int64) (bool, error)
}

// AccountService carries the account business rules: credential shape checks,
// username uniqueness, and login validation. Storage is delegated to the
// repository; any of its failures comes back wrapped in errs.ErrStorage.
type AccountService struct {
	repo repositories.IAccountRepository
	log  *slog.Logger
}

func NewAccountService(repo repositories.IAccountRepository, log *slog.Logger) IAccountService {
	return &AccountService{repo: repo, log: log}
}

// storageErr wraps a persistence failure without inspecting the cause.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", errs.ErrStorage, err)
}

func (s *AccountService) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return acct, nil
}

func (s *AccountService) GetAllAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return accounts, nil
}

func (s *AccountService) FindAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	acct, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, storageErr(err)
	}
	return acct, nil
}

// ValidateLogin returns the matching account, or nil when the username is
// unknown or the password does not match. Absence of a match is a plain nil
// result, never an error, so callers can tell "no match" from a storage
// failure.
func (s *AccountService) ValidateLogin(ctx context.Context, creds domain.Credentials) (*domain.Account, error) {
	acct, err := s.repo.FindByUsername(ctx, creds.Username)
	if err != nil {
		return nil, storageErr(err)
	}
	if acct == nil {
		return nil, nil
	}

	match, err := auth.ComparePassword(creds.Password, acct.Password)
	if err != nil || !match {
		// A malformed stored hash counts as a mismatch, not a failure.
		return nil, nil
	}

	s.log.Debug("login validated", "account_id", acct.ID)
	return acct, nil
}

// CreateAccount validates and registers a new account. Checks surface in a
// fixed order: blank username, blank password, short password, taken
// username. The username existence query runs right before the insert, and
// the insert itself re-checks inside its transaction, which remains the
// authoritative duplicate signal under concurrency.
func (s *AccountService) CreateAccount(ctx context.Context, acct domain.Account) (domain.Account, error) {
	creds := domain.Credentials{Username: acct.Username, Password: acct.Password}
	if err := auth.ValidateRegistration(creds); err != nil {
		return domain.Account{}, err
	}

	existing, err := s.repo.FindByUsername(ctx, acct.Username)
	if err != nil {
		return domain.Account{}, storageErr(err)
	}
	if existing != nil {
		return domain.Account{}, errs.ErrUsernameTaken
	}

	created, err := s.repo.Insert(ctx, acct)
	if errors.Is(err, errs.ErrUsernameTaken) {
		return domain.Account{}, err
	}
	if err != nil {
		return domain.Account{}, storageErr(err)
	}

	s.log.Info("account created", "account_id", created.ID)
	return created, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, acct domain.Account) (bool, error) {
	affected, err := s.repo.Update(ctx, acct)
	if errors.Is(err, errs.ErrUsernameTaken) {
		return false, err
	}
	if err != nil {
		return false, storageErr(err)
	}
	return affected, nil
}

// DeleteAccount refuses the zero id sentinel before touching storage.
func (s *AccountService) DeleteAccount(ctx context.Context, acct domain.Account) (bool, error) {
	if acct.ID == 0 {
		return false, errs.ErrMissingID
	}
	affected, err := s.repo.Delete(ctx, acct.ID)
	if err != nil {
		return false, storageErr(err)
	}
	return affected, nil
}

func (s *AccountService) AccountExists(ctx context.Context, id int64) (bool, error) {
	acct, err := s.GetAccountByID(ctx, id)
	if err != nil {
		return false, err
	}
	return acct != nil, nil
}
