package mockapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// groupEvents lists a group's events in store order. The requested date range is
// not applied here; callers filter by the visible range themselves.
func (d *Dispatcher) groupEvents(c *call) (operations.Response, error) {
	var vars operations.GroupEventsVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	events := []*models.Event{}
	for _, e := range d.store.events {
		if e.GroupID == vars.Input.GroupID {
			events = append(events, cloneEvent(e))
		}
	}
	return operations.Response{"groupEvents": events}, nil
}

func (d *Dispatcher) createEvent(c *call) (operations.Response, error) {
	actor, err := requireActor(c)
	if err != nil {
		return nil, err
	}
	var vars operations.CreateEventVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	in := vars.Input

	if strings.TrimSpace(in.GroupID) == "" {
		return nil, required("groupId")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, required("title")
	}
	start, err := parseOptionalTimestamp("startTime", in.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalTimestamp("endTime", in.EndTime)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		return nil, invalid("endTime", "must be after startTime")
	}

	member := actor.AsMember()
	event := &models.Event{
		ID:           "mock-" + uuid.NewString(),
		GroupID:      in.GroupID,
		UserID:       actor.ID,
		UserName:     member.Name,
		UserAvatarID: member.AvatarID,
		Title:        in.Title,
		StartTime:    start,
		EndTime:      end,
		IsImportant:  in.IsImportant,
		IsCommute:    in.IsCommute,
		Note:         in.Note,
	}
	d.store.events = append(d.store.events, event)

	return operations.Response{"createEvent": cloneEvent(event)}, nil
}

func (d *Dispatcher) deleteEvent(c *call) (operations.Response, error) {
	var vars operations.IDVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}

	for i, e := range d.store.events {
		if e.ID != vars.ID {
			continue
		}
		if c.actor == nil || e.UserID != c.actor.ID {
			return nil, fmt.Errorf("%w: event %s belongs to another user", ErrForbidden, e.ID)
		}
		d.store.events = append(d.store.events[:i], d.store.events[i+1:]...)
		break
	}
	return operations.Response{"deleteEvent": true}, nil
}

func parseTimestamp(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, required(field)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid(field, "is not a valid date: %q", value)
}

func parseOptionalTimestamp(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return parseTimestamp(field, value)
}
