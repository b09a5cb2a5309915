package mockapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
)

func TestGetGroupEvents(t *testing.T) {
	d := newTestDispatcher(t)

	events := execute(t, d, operations.GetGroupEvents, operations.Variables{
		"input": map[string]any{"groupId": "group-1", "startDate": "2030-01-01", "endDate": "2030-01-31"},
	})["groupEvents"].([]*models.Event)
	assert.Len(t, events, 3)

	events = execute(t, d, operations.GetGroupEvents, operations.Variables{
		"input": map[string]any{"groupId": "group-2"},
	})["groupEvents"].([]*models.Event)
	assert.Empty(t, events)
}

func TestCreateEvent(t *testing.T) {
	d := newTestDispatcher(t)

	event := execute(t, d, operations.CreateEvent, operations.MustVariables(operations.CreateEventVariables{
		Input: operations.CreateEventInput{
			GroupID:     "group-2",
			Title:       "ドライブ",
			StartTime:   "2024-02-01T09:00:00Z",
			EndTime:     "2024-02-01T12:00:00Z",
			IsImportant: true,
			Note:        "海まで",
		},
	}))["createEvent"].(*models.Event)

	assert.Equal(t, "group-2", event.GroupID)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "田中 太郎", event.UserName)
	assert.Equal(t, 1, event.UserAvatarID)
	assert.True(t, event.IsImportant)
	assert.False(t, event.IsCommute)
	assert.Equal(t, 3*time.Hour, event.EndTime.Sub(event.StartTime))

	events := execute(t, d, operations.GetGroupEvents, operations.Variables{
		"input": map[string]any{"groupId": "group-2"},
	})["groupEvents"].([]*models.Event)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
}

func TestCreateEvent_Validation(t *testing.T) {
	testCases := []struct {
		name      string
		input     map[string]any
		wantField string
	}{
		{"group id is checked first", map[string]any{}, "groupId"},
		{"missing title", map[string]any{"groupId": "group-1", "title": " "}, "title"},
		{"bad start", map[string]any{"groupId": "group-1", "title": "x", "startTime": "tomorrow"}, "startTime"},
		{"end before start", map[string]any{"groupId": "group-1", "title": "x", "startTime": "2024-02-01T12:00:00Z", "endTime": "2024-02-01T09:00:00Z"}, "endTime"},
		{"end equals start", map[string]any{"groupId": "group-1", "title": "x", "startTime": "2024-02-01T12:00:00Z", "endTime": "2024-02-01T12:00:00Z"}, "endTime"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDispatcher(t)

			_, err := d.Execute(context.Background(), operations.CreateEvent, operations.Variables{"input": tc.input})

			assertFieldError(t, err, tc.wantField)
			assert.Len(t, d.Store().Events(), 3)
		})
	}
}

func TestDeleteEvent(t *testing.T) {
	d := newTestDispatcher(t)

	resp := execute(t, d, operations.DeleteEvent, operations.Variables{"id": "event-1"})
	assert.Equal(t, true, resp["deleteEvent"])
	assert.Len(t, d.Store().Events(), 2)

	resp = execute(t, d, operations.DeleteEvent, operations.Variables{"id": "event-1"})
	assert.Equal(t, true, resp["deleteEvent"])
	assert.Len(t, d.Store().Events(), 2)
}

func TestDeleteEvent_OtherUsersEvent(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Execute(context.Background(), operations.DeleteEvent, operations.Variables{"id": "event-2"})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, d.Store().Events(), 3)
}

func TestParseTimestamp(t *testing.T) {
	for _, value := range []string{"2024-02-01T09:00:00Z", "2024-02-01T09:00:00.123+09:00", "2024-02-01T09:00:00", "2024-02-01T09:00", "2024-02-01"} {
		_, err := parseTimestamp("startDate", value)
		assert.NoError(t, err, value)
	}

	_, err := parseTimestamp("startDate", "")
	assertFieldError(t, err, "startDate")
	_, err = parseTimestamp("startDate", "01/02/2024")
	assertFieldError(t, err, "startDate")
}
