package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wcraske/simpleCalendar/internal/apperr"
	"github.com/wcraske/simpleCalendar/internal/logger"
	"github.com/wcraske/simpleCalendar/internal/metrics"
	"github.com/wcraske/simpleCalendar/internal/models"
	"github.com/wcraske/simpleCalendar/internal/policy"
	repo "github.com/wcraske/simpleCalendar/internal/repository"
	"github.com/wcraske/simpleCalendar/internal/validate"
)

const (
	DefaultLimit           = 10
	MaxLimit               = 100
	DefaultUpcomingMinutes = 30
)

type EventInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

func (in EventInput) Validate() error {
	return validate.Collect(
		validate.Length("name", in.Name, 1, 100),
		validate.Length("description", in.Description, 0, 255),
		validate.RequiredTime("start_date", in.StartDate),
		validate.RequiredTime("end_date", in.EndDate),
	)
}

func (in EventInput) update() models.EventUpdate {
	return models.EventUpdate{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
}

type ListParams struct {
	Skip   int
	Limit  int
	Search string
}

func (p ListParams) Validate() error {
	return validate.Collect(
		validate.MinInt("skip", int64(p.Skip), 0),
		validate.MinInt("limit", int64(p.Limit), 1),
		validate.MaxInt("limit", int64(p.Limit), MaxLimit),
	)
}

type EventService struct {
	store repo.Store
	now   func() time.Time
}

func NewEventService(store repo.Store) *EventService {
	return &EventService{store: store, now: time.Now}
}

func observe(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrForbidden):
		result = "forbidden"
	default:
		result = "error"
	}
	metrics.EventOps.WithLabelValues(op, result).Inc()
}

func denied(ctx context.Context, actor models.User, op, eventID string) {
	logger.FromContext(ctx).Warn("event access denied",
		"op", op, "actor_id", actor.ID, "role", actor.Role, "event_id", eventID)
}

// loadEvent fetches an event and checks that actor may perform action on it.
func loadEvent(ctx context.Context, r repo.Repositories, actor models.User, action policy.Action, id string) (models.Event, error) {
	ev, err := r.Events.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, err
	}
	if err := policy.Authorize(actor, action, ev); err != nil {
		denied(ctx, actor, string(action), id)
		return models.Event{}, err
	}
	return ev, nil
}

// Create stores a new event. targetUserID is only honoured for admins.
func (s *EventService) Create(ctx context.Context, actor models.User, targetUserID string, in EventInput) (ev models.Event, err error) {
	defer func() { observe("create", err) }()

	if err := in.Validate(); err != nil {
		return models.Event{}, err
	}
	owner, err := policy.CreateTarget(actor, targetUserID)
	if err != nil {
		if errors.Is(err, apperr.ErrForbidden) {
			denied(ctx, actor, "create", "")
		}
		return models.Event{}, err
	}

	err = s.store.WithTx(ctx, func(r repo.Repositories) error {
		if _, err := r.Users.GetByID(ctx, owner); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		draft := models.Event{OwnerID: owner}
		draft.Apply(in.update())
		created, err := r.Events.Create(ctx, draft)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		ev = created
		return err
	})
	if err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// List returns the caller's events, or every event for an admin.
func (s *EventService) List(ctx context.Context, actor models.User, p ListParams) ([]models.Event, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	f := repo.EventFilter{
		OwnerID: policy.ListScope(actor),
		Search:  p.Search,
		Skip:    p.Skip,
		Limit:   p.Limit,
	}
	var out []models.Event
	err := s.store.WithTx(ctx, func(r repo.Repositories) error {
		var err error
		out, err = r.Events.List(ctx, f)
		return err
	})
	return out, err
}

func (s *EventService) Get(ctx context.Context, actor models.User, id string) (models.Event, error) {
	var ev models.Event
	err := s.store.WithTx(ctx, func(r repo.Repositories) error {
		var err error
		ev, err = loadEvent(ctx, r, actor, policy.ActionRead, id)
		return err
	})
	return ev, err
}

// Update overwrites name, description and both dates. Owner and id never change.
func (s *EventService) Update(ctx context.Context, actor models.User, id string, in EventInput) (ev models.Event, err error) {
	defer func() { observe("update", err) }()

	if err := in.Validate(); err != nil {
		return models.Event{}, err
	}
	err = s.store.WithTx(ctx, func(r repo.Repositories) error {
		cur, err := loadEvent(ctx, r, actor, policy.ActionUpdate, id)
		if err != nil {
			return err
		}
		cur.Apply(in.update())
		ev, err = r.Events.Update(ctx, cur)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	})
	if err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

func (s *EventService) Delete(ctx context.Context, actor models.User, id string) (err error) {
	defer func() { observe("delete", err) }()

	return s.store.WithTx(ctx, func(r repo.Repositories) error {
		if _, err := loadEvent(ctx, r, actor, policy.ActionDelete, id); err != nil {
			return err
		}
		if err := r.Events.Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		return nil
	})
}

// Upcoming lists the caller's own events starting within the next minutes.
func (s *EventService) Upcoming(ctx context.Context, actor models.User, minutes int) ([]models.Event, error) {
	if minutes < 1 {
		return nil, fmt.Errorf("%w: minutes must be >= 1", apperr.ErrBadRequest)
	}
	now := s.now()
	var out []models.Event
	err := s.store.WithTx(ctx, func(r repo.Repositories) error {
		var err error
		out, err = r.Events.StartingBetween(ctx, actor.ID, now, now.Add(time.Duration(minutes)*time.Minute))
		return err
	})
	return out, err
}
