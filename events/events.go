// Package events carries resource change notifications out of the request path.
package events

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/yeremiapane/restaurant-booking/utils"
)

const (
	EntityMenu    = "menu"
	EntityBooking = "booking"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes one committed change. Owner is set for per-user resources and
// restricts who may observe the event.
type Event struct {
	Entity     string
	Action     string
	ResourceID string
	Owner      string
	Data       interface{}
	Timestamp  time.Time
}

// Name is the event label sent to subscribers, e.g. "menu_created".
func (e Event) Name() string {
	return e.Entity + "_" + e.Action
}

func New(entity, action string, id uint, owner string, data interface{}) Event {
	return Event{
		Entity:     entity,
		Action:     action,
		ResourceID: strconv.FormatUint(uint64(id), 10),
		Owner:      owner,
		Data:       data,
		Timestamp:  time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Emit publishes ev and logs a failure. The caller's request has already
// committed, so publishing never turns it into an error.
func Emit(ctx context.Context, p Publisher, ev Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		utils.ErrorLogger.WithError(err).
			WithField("event", ev.Name()).
			WithField("resource_id", ev.ResourceID).
			Error("publish event failed")
	}
}
