package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"message-board/domain"
	errs "message-board/errors"
	"message-board/mocks"
)

func TestMessageService_CreateMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mockRepo := mocks.NewMockIMessageRepository(ctrl)
	svc := NewMessageService(mockRepo, slog.Default())

	owner := &domain.Account{ID: 1, Username: "user", Password: "password"}

	t.Run("should create a valid message for its owner", func(t *testing.T) {
		req := require.New(t)
		msg := domain.Message{PostedBy: 1, Text: "hello message", PostedAtEpoch: 1669947792}

		mockRepo.EXPECT().
			Insert(ctx, msg).
			Return(domain.Message{ID: 1, PostedBy: 1, Text: "hello message", PostedAtEpoch: 1669947792}, nil).
			Times(1)

		created, err := svc.CreateMessage(ctx, msg, owner)

		req.NoError(err)
		req.Equal(int64(1), created.ID)
		req.Equal(msg.Text, created.Text)
		req.Equal(msg.PostedBy, created.PostedBy)
		req.Equal(msg.PostedAtEpoch, created.PostedAtEpoch)
	})

	t.Run("should require a resolved owner account", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.CreateMessage(ctx, domain.Message{PostedBy: 1, Text: "hello"}, nil)

		req.ErrorIs(err, errs.ErrAccountNotFound)
	})

	t.Run("should reject blank text", func(t *testing.T) {
		req := require.New(t)

		_, err := svc.CreateMessage(ctx, domain.Message{PostedBy: 1, Text: "   "}, owner)

		req.ErrorIs(err, errs.ErrBlankMessage)
	})

	t.Run("should reject text above 254 characters", func(t *testing.T) {
		req := require.New(t)
		long := strings.Repeat("a", 255)

		_, err := svc.CreateMessage(ctx, domain.Message{PostedBy: 1, Text: long}, owner)

		req.ErrorIs(err, errs.ErrMessageTooLong)
	})

	t.Run("should accept text of exactly 254 characters", func(t *testing.T) {
		req := require.New(t)
		text := strings.Repeat("a", 254)
		msg := domain.Message{PostedBy: 1, Text: text}

		mockRepo.EXPECT().
			Insert(ctx, msg).
			Return(domain.Message{ID: 2, PostedBy: 1, Text: text}, nil).
			Times(1)

		_, err := svc.CreateMessage(ctx, msg, owner)

		req.NoError(err)
	})

	t.Run("should reject a declared owner that differs from the resolved account", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.CreateMessage(ctx, domain.Message{PostedBy: 2, Text: "hello"}, owner)

		req.ErrorIs(err, errs.ErrNotMessageOwner)
	})

	t.Run("should wrap a storage failure", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			Insert(ctx, gomock.Any()).
			Return(domain.Message{}, fmt.Errorf("write stalled")).
			Times(1)

		_, err := svc.CreateMessage(ctx, domain.Message{PostedBy: 1, Text: "hello"}, owner)

		req.ErrorIs(err, errs.ErrStorage)
	})
}

func TestMessageService_GetMessageByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mockRepo := mocks.NewMockIMessageRepository(ctrl)
	svc := NewMessageService(mockRepo, slog.Default())

	t.Run("should return the message when present", func(t *testing.T) {
		req := require.New(t)
		stored := domain.Message{ID: 1, PostedBy: 1, Text: "hello", PostedAtEpoch: 10}

		mockRepo.EXPECT().
			GetByID(ctx, int64(1)).
			Return(lo.ToPtr(stored), nil).
			Times(1)

		msg, err := svc.GetMessageByID(ctx, 1)

		req.NoError(err)
		req.Equal(stored, msg)
	})

	t.Run("should raise not-found when absent", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			GetByID(ctx, int64(99)).
			Return(nil, nil).
			Times(1)

		_, err := svc.GetMessageByID(ctx, 99)

		req.ErrorIs(err, errs.ErrMessageNotFound)
	})
}

func TestMessageService_UpdateMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mockRepo := mocks.NewMockIMessageRepository(ctrl)
	svc := NewMessageService(mockRepo, slog.Default())

	t.Run("should replace the text and keep owner and timestamp", func(t *testing.T) {
		req := require.New(t)
		existing := domain.Message{ID: 1, PostedBy: 1, Text: "hello message", PostedAtEpoch: 1669947792}

		mockRepo.EXPECT().
			GetByID(ctx, int64(1)).
			Return(lo.ToPtr(existing), nil).
			Times(1)
		mockRepo.EXPECT().
			Update(ctx, domain.Message{ID: 1, PostedBy: 1, Text: "updated message", PostedAtEpoch: 1669947792}).
			Return(true, nil).
			Times(1)

		// The caller supplies different owner and timestamp values; both must
		// be ignored in favor of the persisted record.
		updated, err := svc.UpdateMessage(ctx, domain.Message{ID: 1, PostedBy: 9, Text: "updated message", PostedAtEpoch: 1})

		req.NoError(err)
		req.Equal("updated message", updated.Text)
		req.Equal(int64(1), updated.PostedBy)
		req.Equal(int64(1669947792), updated.PostedAtEpoch)
	})

	t.Run("should raise not-found for an unknown id", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			GetByID(ctx, int64(42)).
			Return(nil, nil).
			Times(1)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.UpdateMessage(ctx, domain.Message{ID: 42, Text: "updated"})

		req.ErrorIs(err, errs.ErrMessageNotFound)
	})

	t.Run("should revalidate the replacement text", func(t *testing.T) {
		req := require.New(t)
		existing := domain.Message{ID: 1, PostedBy: 1, Text: "hello", PostedAtEpoch: 10}

		mockRepo.EXPECT().
			GetByID(ctx, int64(1)).
			Return(lo.ToPtr(existing), nil).
			Times(1)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.UpdateMessage(ctx, domain.Message{ID: 1, Text: strings.Repeat("b", 255)})

		req.ErrorIs(err, errs.ErrMessageTooLong)
	})
}

func TestMessageService_DeleteMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mockRepo := mocks.NewMockIMessageRepository(ctrl)
	svc := NewMessageService(mockRepo, slog.Default())

	t.Run("should delete an existing message", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			Delete(ctx, int64(1)).
			Return(true, nil).
			Times(1)

		err := svc.DeleteMessage(ctx, domain.Message{ID: 1})

		req.NoError(err)
	})

	t.Run("should report not-found distinctly when nothing was affected", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			Delete(ctx, int64(42)).
			Return(false, nil).
			Times(1)

		err := svc.DeleteMessage(ctx, domain.Message{ID: 42})

		req.ErrorIs(err, errs.ErrMessageNotFound)
		req.NotErrorIs(err, errs.ErrStorage)
	})
}
