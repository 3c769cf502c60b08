package reminder

import (
	"context"
	"time"

	"babycarebot/internal/model"
)

// Store is the record-store surface the engine needs. *db.DB satisfies it;
// tests use in-memory fakes.
type Store interface {
	ListFamilyIDs(ctx context.Context) ([]int64, error)
	FamilyMembers(ctx context.Context, familyID int64) ([]model.Member, error)
	GetSettings(ctx context.Context, familyID int64) (*model.Settings, error)
	LastEventTime(ctx context.Context, familyID int64, kind model.EventKind) (*time.Time, error)

	LastNotified(ctx context.Context, familyID int64, kind model.NotificationKind) (*time.Time, error)
	UpsertNotified(ctx context.Context, familyID int64, kind model.NotificationKind, at time.Time) error
	DeleteNotified(ctx context.Context, familyID int64, kinds ...model.NotificationKind) error
	PurgeNotifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Action is one inline button attached to an outbound notification.
type Action struct {
	Label string
	Data  string
}

// Channel is the outbound delivery surface. It may fail transiently; the
// delivery loop treats each send independently.
type Channel interface {
	SendMessage(ctx context.Context, recipientID int64, text string, actions []Action) error
}

// Request is one fully-formed outbound notification. It lives only in the
// in-memory queue between enqueue and the delivery attempt.
type Request struct {
	FamilyID    int64
	RecipientID int64
	Text        string
	Actions     []Action
}
