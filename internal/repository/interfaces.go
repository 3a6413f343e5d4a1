package repository

import (
	"context"
	"time"

	"nexus/internal/domain"
)

type UserRepository interface {
	// Create inserts the user and fills in the store-assigned ID.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SearchByUsername(ctx context.Context, fragment string) ([]domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Contacts returns the distinct users the given user has exchanged
	// messages with, in either direction.
	Contacts(ctx context.Context, userID int64) ([]domain.User, error)
	RecordLogin(ctx context.Context, id int64, ip, device string, at time.Time) error
}

type MessageRepository interface {
	// Create inserts the message and fills in the store-assigned ID.
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	// FindConversation returns one page of the conversation between two
	// users, newest first, soft-deleted messages excluded. The second
	// return value reports whether more pages exist.
	FindConversation(ctx context.Context, userAID, userBID int64, page, size int) ([]domain.Message, bool, error)
	FindAllByType(ctx context.Context, types []domain.MessageType) ([]domain.Message, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) error
	SoftDelete(ctx context.Context, id int64) error
	// HardDelete flags the message deleted, downgrades it to TEXT and
	// overwrites its content with the tombstone, clearing any expiry.
	HardDelete(ctx context.Context, id int64, tombstone string) error
	// DeleteExpiredBefore physically removes every message whose expiry
	// is earlier than t and returns the number of rows removed.
	DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error)
}
