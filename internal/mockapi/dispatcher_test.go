package mockapi

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
	"github.com/dimitrije/carshare/pkg/logging"
)

func newTestDispatcher(t *testing.T, opts ...Option) *Dispatcher {
	t.Helper()
	opts = append([]Option{WithLatency(0), WithLogger(logging.Discard())}, opts...)
	return NewDispatcher(Seed(), opts...)
}

func execute(t *testing.T, d *Dispatcher, kind operations.Kind, vars operations.Variables) operations.Response {
	t.Helper()
	resp, err := d.Execute(context.Background(), kind, vars)
	require.NoError(t, err)
	return resp
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected a FieldError, got %T", err)
	assert.Equal(t, field, fe.Field)
}

type recordingSender struct {
	mu    sync.Mutex
	sent  map[string]string
	fails bool
}

func (r *recordingSender) SendVerificationCode(to, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fails {
		return errors.New("smtp unavailable")
	}
	if r.sent == nil {
		r.sent = map[string]string{}
	}
	r.sent[to] = code
	return nil
}

func TestSeed_StoresAreIndependent(t *testing.T) {
	a := NewDispatcher(Seed(), WithLatency(0), WithLogger(logging.Discard()))
	b := Seed()

	_, err := a.Execute(context.Background(), operations.CreateGroup, operations.Variables{
		"input": map[string]any{"name": "新しいグループ"},
	})
	require.NoError(t, err)

	assert.Len(t, a.Store().Groups(), 3)
	assert.Len(t, b.Groups(), 2)
}

func TestSeed_Fixtures(t *testing.T) {
	s := Seed()

	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, "user-1", s.CurrentUser().ID)
	assert.Equal(t, "田中 太郎", s.CurrentUser().Name)
	assert.Len(t, s.Users(), 3)
	assert.Len(t, s.Cars(), 3)
	assert.Len(t, s.Reservations(), 2)
	assert.Len(t, s.Events(), 3)

	groups := s.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "ABC123", groups[0].InviteCode)
	assert.Len(t, groups[0].Members, 3)
	assert.Equal(t, "DEF456", groups[1].InviteCode)
	assert.Len(t, groups[1].Members, 2)
}

func TestExecute_UnknownKindReturnsEmptyResponse(t *testing.T) {
	d := newTestDispatcher(t)

	resp := execute(t, d, operations.Unknown, nil)
	assert.Equal(t, operations.Response{}, resp)
	assert.False(t, d.Handles(operations.Unknown))
	for _, k := range operations.All() {
		assert.True(t, d.Handles(k), k.String())
	}
}

func TestExecute_HonoursContextDuringLatency(t *testing.T) {
	d := NewDispatcher(Seed(), WithLatency(time.Hour), WithLogger(logging.Discard()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Execute(ctx, operations.GetCurrentUser, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_WaitsLatency(t *testing.T) {
	d := NewDispatcher(Seed(), WithLatency(20*time.Millisecond), WithLogger(logging.Discard()))

	start := time.Now()
	_, err := d.Execute(context.Background(), operations.GetCurrentUser, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestExecute_ActingUserFromContext(t *testing.T) {
	d := newTestDispatcher(t)

	resp, err := d.Execute(WithActingUser(context.Background(), "user-3"), operations.GetMyGroups, nil)
	require.NoError(t, err)
	groups := resp["myGroups"].([]*models.Group)
	require.Len(t, groups, 1)
	assert.Equal(t, "group-1", groups[0].ID)

	resp, err = d.Execute(WithActingUser(context.Background(), "nobody"), operations.GetCurrentUser, nil)
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp["me"].(*models.User).ID)
}

func TestExecute_ConcurrentMutationsAreSerialized(t *testing.T) {
	d := newTestDispatcher(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Execute(context.Background(), operations.CreateEvent, operations.Variables{
				"input": map[string]any{"groupId": "group-1", "title": "通勤"},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, d.Store().Events(), 23)
}

func TestGetCurrentUser_NobodySignedIn(t *testing.T) {
	d := NewDispatcher(NewStore(), WithLatency(0), WithLogger(logging.Discard()))

	resp := execute(t, d, operations.GetCurrentUser, nil)
	assert.Nil(t, resp["me"])

	_, err := d.Execute(context.Background(), operations.CreateGroup, operations.Variables{
		"input": map[string]any{"name": "x"},
	})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestExecute_MalformedVariablesAreValidationErrors(t *testing.T) {
	testCases := []struct {
		kind operations.Kind
		vars operations.Variables
	}{
		{operations.CreateEvent, operations.Variables{"input": "oops"}},
		{operations.CreateGroup, operations.Variables{"input": 42}},
		{operations.GetCars, operations.Variables{"limit": "many"}},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			d := newTestDispatcher(t)

			_, err := d.Execute(context.Background(), tc.kind, tc.vars)

			assertFieldError(t, err, "variables")
			assert.Len(t, d.Store().Groups(), 2)
			assert.Len(t, d.Store().Events(), 3)
		})
	}
}
