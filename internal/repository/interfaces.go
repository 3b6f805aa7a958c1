package repository

import (
	"context"
	"errors"
	"time"

	"github.com/wcraske/simpleCalendar/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

type Users interface {
	Create(ctx context.Context, username, passwordHash, role string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// Delete removes the user; owned events go with it.
	Delete(ctx context.Context, id string) error
}

// EventFilter scopes a listing. An empty OwnerID matches every owner and an
// empty Search matches every event.
type EventFilter struct {
	OwnerID string
	Search  string
	Skip    int
	Limit   int
}

type Events interface {
	Create(ctx context.Context, e models.Event) (models.Event, error)
	GetByID(ctx context.Context, id string) (models.Event, error)
	List(ctx context.Context, f EventFilter) ([]models.Event, error)
	// StartingBetween returns ownerID's events with from <= start_date <= to.
	StartingBetween(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error)
	Update(ctx context.Context, e models.Event) (models.Event, error)
	Delete(ctx context.Context, id string) error
}

// Repositories is the set of repos bound to one transaction.
type Repositories struct {
	Users  Users
	Events Events
}

// Store runs fn inside a single transaction: committed when fn returns nil,
// rolled back otherwise.
type Store interface {
	WithTx(ctx context.Context, fn func(r Repositories) error) error
	Close() error
}
