package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimitrije/carshare/internal/config"
	"github.com/dimitrije/carshare/internal/localstore"
	"github.com/dimitrije/carshare/internal/session"
	"github.com/dimitrije/carshare/internal/settings"
	"github.com/dimitrije/carshare/pkg/logging"
)

func newTestCLI(t *testing.T, storage *localstore.Memory) (*cli, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	c, err := newCLI(context.Background(), &config.Config{}, storage, logging.Discard(), out)
	require.NoError(t, err)
	return c, out
}

func TestCLI_NoArgsPrintsUsage(t *testing.T) {
	c, out := newTestCLI(t, localstore.NewMemory())

	require.NoError(t, c.run(context.Background(), nil))

	assert.Contains(t, out.String(), "carshare")
	assert.Contains(t, out.String(), "settings")
}

func TestCLI_UnknownCommand(t *testing.T) {
	c, _ := newTestCLI(t, localstore.NewMemory())

	err := c.run(context.Background(), []string{"drive"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "drive"`)
}

func TestCLI_SettingsShowDefaults(t *testing.T) {
	c, out := newTestCLI(t, localstore.NewMemory())

	require.NoError(t, c.run(context.Background(), []string{"settings"}))

	assert.Contains(t, out.String(), "mode:     mock")
	assert.Contains(t, out.String(), settings.EndpointCandidates[0])
}

func TestCLI_SettingsPersist(t *testing.T) {
	storage := localstore.NewMemory()
	c, _ := newTestCLI(t, storage)
	ctx := context.Background()

	require.NoError(t, c.run(ctx, []string{"settings", "mock", "off"}))
	require.NoError(t, c.run(ctx, []string{"settings", "endpoint", "http://localhost:9000/query"}))

	assert.Equal(t, "false", storage.Snapshot()[settings.KeyUseMockData])
	assert.Equal(t, "http://localhost:9000/query", storage.Snapshot()[settings.KeyAPIEndpoint])

	reopened, out := newTestCLI(t, storage)
	require.NoError(t, reopened.run(ctx, []string{"settings", "show"}))
	assert.Contains(t, out.String(), "mode:     api")
	assert.Contains(t, out.String(), "http://localhost:9000/query")

	require.NoError(t, reopened.run(ctx, []string{"settings", "reset"}))
	assert.Empty(t, storage.Snapshot())
}

func TestCLI_SettingsRejectsBadInput(t *testing.T) {
	c, _ := newTestCLI(t, localstore.NewMemory())
	ctx := context.Background()

	assert.ErrorIs(t, c.run(ctx, []string{"settings", "endpoint", "not a url"}), settings.ErrInvalidEndpoint)
	assert.Error(t, c.run(ctx, []string{"settings", "mock", "maybe"}))
}

func TestCLI_PingMock(t *testing.T) {
	c, out := newTestCLI(t, localstore.NewMemory())

	require.NoError(t, c.run(context.Background(), []string{"ping"}))

	assert.Equal(t, "ok (mock data)\n", out.String())
}

func TestCLI_LoginThenWhoami(t *testing.T) {
	storage := localstore.NewMemory()
	c, out := newTestCLI(t, storage)
	ctx := context.Background()

	require.NoError(t, c.run(ctx, []string{"login", "hanako@example.com", "secret"}))
	assert.Contains(t, out.String(), "signed in as 佐藤 花子 <hanako@example.com>")
	assert.NotEmpty(t, storage.Snapshot()[session.TokenKey])

	out.Reset()
	require.NoError(t, c.run(ctx, []string{"whoami"}))
	assert.Contains(t, out.String(), "hanako@example.com")

	out.Reset()
	require.NoError(t, c.run(ctx, []string{"logout"}))
	_, ok := storage.Snapshot()[session.TokenKey]
	assert.False(t, ok)

	out.Reset()
	require.NoError(t, c.run(ctx, []string{"whoami"}))
	assert.Equal(t, "not signed in\n", out.String())
}

func TestCLI_Query(t *testing.T) {
	c, out := newTestCLI(t, localstore.NewMemory())

	require.NoError(t, c.run(context.Background(), []string{"query", "GetAvailableCars", `{"limit": 2}`}))

	var result struct {
		Cars []map[string]any `json:"cars"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Len(t, result.Cars, 2)
}

func TestCLI_QueryErrors(t *testing.T) {
	c, _ := newTestCLI(t, localstore.NewMemory())
	ctx := context.Background()

	err := c.run(ctx, []string{"query", "Teleport"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown operation "Teleport"`)

	err = c.run(ctx, []string{"query", "GetCar", "{not json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse variables")

	err = c.run(ctx, []string{"query"})
	assert.Error(t, err)

	err = c.run(ctx, []string{"query", "CreateEvent", `{"input": {"title": "練習"}}`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "groupId is required")
}

func TestCLI_SignupNeedsVerificationCode(t *testing.T) {
	c, out := newTestCLI(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, c.run(ctx, []string{"send-code", "new@example.com"}))
	assert.Contains(t, out.String(), "verification code sent to new@example.com")

	err := c.run(ctx, []string{"signup", "--email", "new@example.com", "--password", "pw", "--vcode", "000000x"})
	assert.Error(t, err)
}

func TestParseSwitch(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{"on", true},
		{"OFF", false},
		{"true", true},
		{"0", false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseSwitch(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
