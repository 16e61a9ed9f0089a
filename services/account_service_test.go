package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"message-board/auth"
	"message-board/domain"
	errs "message-board/errors"
	"message-board/mocks"
)

func TestAccountService_CreateAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mockRepo := mocks.NewMockIAccountRepository(ctrl)
	svc := NewAccountService(mockRepo, slog.Default())

	t.Run("should create the account and return the assigned id", func(t *testing.T) {
		req := require.New(t)
		acct := domain.Account{Username: "user", Password: "password"}

		mockRepo.EXPECT().
			FindByUsername(ctx, "user").
			Return(nil, nil).
			Times(1)
		mockRepo.EXPECT().
			Insert(ctx, acct).
			Return(domain.Account{ID: 1, Username: "user", Password: "password"}, nil).
			Times(1)

		created, err := svc.CreateAccount(ctx, acct)

		req.NoError(err)
		req.Equal(int64(1), created.ID)
		req.Equal("user", created.Username)
	})

	t.Run("should reject a blank username without touching storage", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Times(0)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.CreateAccount(ctx, domain.Account{Username: "  ", Password: "password"})

		req.ErrorIs(err, errs.ErrBlankUsername)
	})

	t.Run("should reject a blank password", func(t *testing.T) {
		req := require.New(t)

		_, err := svc.CreateAccount(ctx, domain.Account{Username: "user", Password: ""})

		req.ErrorIs(err, errs.ErrBlankPassword)
	})

	t.Run("should reject a password below four characters", func(t *testing.T) {
		req := require.New(t)

		_, err := svc.CreateAccount(ctx, domain.Account{Username: "user", Password: "abc"})

		req.ErrorIs(err, errs.ErrShortPassword)
	})

	t.Run("should reject a taken username before inserting", func(t *testing.T) {
		req := require.New(t)
		existing := domain.Account{ID: 7, Username: "user", Password: "other"}

		mockRepo.EXPECT().
			FindByUsername(ctx, "user").
			Return(&existing, nil).
			Times(1)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.CreateAccount(ctx, domain.Account{Username: "user", Password: "password"})

		req.ErrorIs(err, errs.ErrUsernameTaken)
	})

	t.Run("should surface the transactional duplicate signal from the insert", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			FindByUsername(ctx, "user").
			Return(nil, nil).
			Times(1)
		mockRepo.EXPECT().
			Insert(ctx, gomock.Any()).
			Return(domain.Account{}, errs.ErrUsernameTaken).
			Times(1)

		_, err := svc.CreateAccount(ctx, domain.Account{Username: "user", Password: "password"})

		req.ErrorIs(err, errs.ErrUsernameTaken)
	})

	t.Run("should wrap a storage failure", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			FindByUsername(ctx, "user").
			Return(nil, fmt.Errorf("disk on fire")).
			Times(1)

		_, err := svc.CreateAccount(ctx, domain.Account{Username: "user", Password: "password"})

		req.ErrorIs(err, errs.ErrStorage)
	})
}

func TestAccountService_ValidateLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mockRepo := mocks.NewMockIAccountRepository(ctrl)
	svc := NewAccountService(mockRepo, slog.Default())

	t.Run("should return the account on matching credentials", func(t *testing.T) {
		req := require.New(t)
		stored := domain.Account{ID: 1, Username: "testuser1", Password: "password"}

		mockRepo.EXPECT().
			FindByUsername(ctx, "testuser1").
			Return(&stored, nil).
			Times(1)

		acct, err := svc.ValidateLogin(ctx, domain.Credentials{Username: "testuser1", Password: "password"})

		req.NoError(err)
		req.NotNil(acct)
		req.Equal(stored, *acct)
	})

	t.Run("should return nothing on a wrong password", func(t *testing.T) {
		req := require.New(t)
		stored := domain.Account{ID: 1, Username: "testuser1", Password: "password"}

		mockRepo.EXPECT().
			FindByUsername(ctx, "testuser1").
			Return(&stored, nil).
			Times(1)

		acct, err := svc.ValidateLogin(ctx, domain.Credentials{Username: "testuser1", Password: "wrong"})

		req.NoError(err)
		req.Nil(acct)
	})

	t.Run("should return nothing on an unknown username", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			FindByUsername(ctx, "ghost").
			Return(nil, nil).
			Times(1)

		acct, err := svc.ValidateLogin(ctx, domain.Credentials{Username: "ghost", Password: "password"})

		req.NoError(err)
		req.Nil(acct)
	})

	t.Run("should match against an argon2id stored password", func(t *testing.T) {
		req := require.New(t)
		hashed, err := auth.HashPassword("password")
		req.NoError(err)
		stored := domain.Account{ID: 2, Username: "hashed", Password: hashed}

		mockRepo.EXPECT().
			FindByUsername(ctx, "hashed").
			Return(&stored, nil).
			Times(1)

		acct, err := svc.ValidateLogin(ctx, domain.Credentials{Username: "hashed", Password: "password"})

		req.NoError(err)
		req.NotNil(acct)
	})

	t.Run("should wrap a storage failure", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			FindByUsername(ctx, "testuser1").
			Return(nil, fmt.Errorf("connection lost")).
			Times(1)

		_, err := svc.ValidateLogin(ctx, domain.Credentials{Username: "testuser1", Password: "password"})

		req.ErrorIs(err, errs.ErrStorage)
	})
}

func TestAccountService_DeleteAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mockRepo := mocks.NewMockIAccountRepository(ctrl)
	svc := NewAccountService(mockRepo, slog.Default())

	t.Run("should fail fast on the zero id sentinel", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.DeleteAccount(ctx, domain.Account{})

		req.ErrorIs(err, errs.ErrMissingID)
	})

	t.Run("should pass the affected flag through", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			Delete(ctx, int64(3)).
			Return(true, nil).
			Times(1)

		affected, err := svc.DeleteAccount(ctx, domain.Account{ID: 3})

		req.NoError(err)
		req.True(affected)
	})
}

func TestAccountService_AccountExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mockRepo := mocks.NewMockIAccountRepository(ctrl)
	svc := NewAccountService(mockRepo, slog.Default())

	t.Run("should report an existing account", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			GetByID(ctx, int64(1)).
			Return(&domain.Account{ID: 1, Username: "user"}, nil).
			Times(1)

		exists, err := svc.AccountExists(ctx, 1)

		req.NoError(err)
		req.True(exists)
	})

	t.Run("should report an absent account without raising", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			GetByID(ctx, int64(42)).
			Return(nil, nil).
			Times(1)

		exists, err := svc.AccountExists(ctx, 42)

		req.NoError(err)
		req.False(exists)
	})
}
