// Package settings holds the user's choice between the built-in mock backend and
// a real API endpoint. Changes are written through to local storage immediately.
package settings

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/dimitrije/carshare/internal/localstore"
)

const (
	KeyUseMockData = "carshare_use_mock_data"
	KeyAPIEndpoint = "carshare_api_endpoint"
)

// EndpointCandidates are the endpoints offered for selection. The first is the
// default.
var EndpointCandidates = []string{
	"https://my-go-api-onion0904-2d2c780f.koyeb.app/query",
	"http://localhost:8080/query",
	"https://api.example.com/graphql",
}

var ErrInvalidEndpoint = errors.New("invalid API endpoint")

type Settings struct {
	mu              sync.RWMutex
	storage         localstore.Storage
	defaultEndpoint string
	useMockData     bool
	apiEndpoint     string
}

// Load reads persisted settings. Keys that are absent or unreadable fall back to
// the defaults: mock data on, and defaultEndpoint (EndpointCandidates[0] when
// empty).
func Load(ctx context.Context, storage localstore.Storage, defaultEndpoint string) (*Settings, error) {
	if defaultEndpoint == "" {
		defaultEndpoint = EndpointCandidates[0]
	}
	s := &Settings{
		storage:         storage,
		defaultEndpoint: defaultEndpoint,
		useMockData:     true,
		apiEndpoint:     defaultEndpoint,
	}

	raw, ok, err := storage.Get(ctx, KeyUseMockData)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if ok {
		if v, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			s.useMockData = v
		}
	}

	raw, ok, err = storage.Get(ctx, KeyAPIEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if ok && strings.TrimSpace(raw) != "" {
		s.apiEndpoint = strings.TrimSpace(raw)
	}

	return s, nil
}

func (s *Settings) UseMockData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.useMockData
}

func (s *Settings) APIEndpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiEndpoint
}

func (s *Settings) SetUseMockData(ctx context.Context, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Set(ctx, KeyUseMockData, strconv.FormatBool(v)); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyUseMockData, err)
	}
	s.useMockData = v
	return nil
}

// SetAPIEndpoint accepts any absolute http or https URL, not only the candidates.
func (s *Settings) SetAPIEndpoint(ctx context.Context, endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if err := ValidateEndpoint(endpoint); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Set(ctx, KeyAPIEndpoint, endpoint); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyAPIEndpoint, err)
	}
	s.apiEndpoint = endpoint
	return nil
}

// Reset restores the defaults and forgets both persisted keys.
func (s *Settings) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{KeyUseMockData, KeyAPIEndpoint} {
		if err := s.storage.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	s.useMockData = true
	s.apiEndpoint = s.defaultEndpoint
	return nil
}

func (s *Settings) Candidates() []string {
	return append([]string(nil), EndpointCandidates...)
}

func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q must use http or https", ErrInvalidEndpoint, endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidEndpoint, endpoint)
	}
	return nil
}
