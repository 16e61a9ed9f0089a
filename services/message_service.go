package services

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"message-board/domain"
	errs "message-board/errors"
	"message-board/repositories"
)

type IMessageService interface {
	GetMessageByID(ctx context.Context, id int64) (domain.Message, error)
	GetAllMessages(ctx context.Context) ([]domain.Message, error)
	GetMessagesByAccountID(ctx context.Context, accountID int64) ([]domain.Message, error)
	CreateMessage(ctx context.Context, msg domain.Message, owner *domain.Account) (domain.Message, error)
	UpdateMessage(ctx context.Context, msg domain.Message) (domain.Message, error)
	DeleteMessage(ctx context.Context, msg domain.Message) error
}

// MessageService carries the message business rules: text bounds and the
// ownership check between a message and the account posting it. The service
// never resolves accounts itself; the boundary looks up the owner through
// AccountService and hands it in.
type MessageService struct {
	repo repositories.IMessageRepository
	log  *slog.Logger
}

func NewMessageService(repo repositories.IMessageRepository, log *slog.Logger) IMessageService {
	return &MessageService{repo: repo, log: log}
}

// GetMessageByID fails with errs.ErrMessageNotFound when the id is unknown.
// This is deliberately stricter than the account lookup: callers fetching a
// message for mutation have no other way to tell absence apart.
func (s *MessageService) GetMessageByID(ctx context.Context, id int64) (domain.Message, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Message{}, storageErr(err)
	}
	if msg == nil {
		return domain.Message{}, errs.ErrMessageNotFound
	}
	return *msg, nil
}

func (s *MessageService) GetAllMessages(ctx context.Context) ([]domain.Message, error) {
	messages, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return messages, nil
}

func (s *MessageService) GetMessagesByAccountID(ctx context.Context, accountID int64) ([]domain.Message, error) {
	messages, err := s.repo.FindByOwner(ctx, accountID)
	if err != nil {
		return nil, storageErr(err)
	}
	return messages, nil
}

// CreateMessage inserts a new message for a resolved owner account. The
// declared PostedBy must equal the owner's id even on creation, guarding
// against a caller resolving one account and declaring another.
func (s *MessageService) CreateMessage(ctx context.Context, msg domain.Message, owner *domain.Account) (domain.Message, error) {
	if owner == nil {
		return domain.Message{}, errs.ErrAccountNotFound
	}
	if err := validateMessage(msg); err != nil {
		return domain.Message{}, err
	}
	if msg.PostedBy != owner.ID {
		return domain.Message{}, errs.ErrNotMessageOwner
	}

	created, err := s.repo.Insert(ctx, msg)
	if err != nil {
		return domain.Message{}, storageErr(err)
	}

	s.log.Info("message created", "message_id", created.ID, "posted_by", created.PostedBy)
	return created, nil
}

// UpdateMessage replaces the text of an existing message. Owner and timestamp
// stay as persisted regardless of what the caller supplied.
func (s *MessageService) UpdateMessage(ctx context.Context, msg domain.Message) (domain.Message, error) {
	existing, err := s.GetMessageByID(ctx, msg.ID)
	if err != nil {
		return domain.Message{}, err
	}

	existing.Text = msg.Text
	if err := validateMessage(existing); err != nil {
		return domain.Message{}, err
	}

	affected, err := s.repo.Update(ctx, existing)
	if err != nil {
		return domain.Message{}, storageErr(err)
	}
	if !affected {
		return domain.Message{}, errs.ErrMessageNotFound
	}

	s.log.Info("message updated", "message_id", existing.ID)
	return existing, nil
}

// DeleteMessage removes a message by id. Zero affected rows is reported as
// errs.ErrMessageNotFound, distinct from a storage failure.
func (s *MessageService) DeleteMessage(ctx context.Context, msg domain.Message) error {
	affected, err := s.repo.Delete(ctx, msg.ID)
	if err != nil {
		return storageErr(err)
	}
	if !affected {
		return errs.ErrMessageNotFound
	}

	s.log.Info("message deleted", "message_id", msg.ID)
	return nil
}

// validateMessage enforces the text bounds shared by create and update.
func validateMessage(msg domain.Message) error {
	text := msg.TrimmedText()
	if text == "" {
		return errs.ErrBlankMessage
	}
	if utf8.RuneCountInString(text) > domain.MaxMessageLength {
		return errs.ErrMessageTooLong
	}
	return nil
}
