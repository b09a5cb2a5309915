// Package mockapi is the in-process car-share backend used for demos and offline
// development. A Dispatcher answers every operation in the catalogue from an
// injected Store after a simulated network delay.
package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
)

const DefaultLatency = 300 * time.Millisecond

// TokenIssuer mints the session token returned by Login and Signup.
type TokenIssuer interface {
	IssueToken(user *models.User) (string, error)
}

// CodeSender delivers a signup verification code to an email address.
type CodeSender interface {
	SendVerificationCode(to, code string) error
}

// MockTokens issues the placeholder tokens the demo backend has always handed out.
type MockTokens struct {
	Now func() time.Time
}

func (m MockTokens) IssueToken(_ *models.User) (string, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return fmt.Sprintf("mock-token-%d", now().UnixMilli()), nil
}

type Option func(*Dispatcher)

func WithLatency(d time.Duration) Option {
	return func(disp *Dispatcher) { disp.latency = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(disp *Dispatcher) { disp.logger = logger }
}

func WithTokenIssuer(issuer TokenIssuer) Option {
	return func(disp *Dispatcher) { disp.tokens = issuer }
}

func WithCodeSender(sender CodeSender) Option {
	return func(disp *Dispatcher) { disp.sender = sender }
}

// WithInviteCodes replaces the random invite code generator.
func WithInviteCodes(gen func() (string, error)) Option {
	return func(disp *Dispatcher) { disp.inviteCode = gen }
}

// WithVerificationCodes replaces the random verification code generator.
func WithVerificationCodes(gen func() (string, error)) Option {
	return func(disp *Dispatcher) { disp.verificationCode = gen }
}

func WithClock(now func() time.Time) Option {
	return func(disp *Dispatcher) { disp.now = now }
}

// call is the state one handler invocation sees. Handlers run with the store lock
// held; anything slow goes into after and runs once the lock is released.
type call struct {
	ctx   context.Context
	actor *models.User
	vars  operations.Variables
	after []func() error
}

func (c *call) afterUnlock(fn func() error) {
	c.after = append(c.after, fn)
}

type handlerFunc func(c *call) (operations.Response, error)

type Dispatcher struct {
	store            *Store
	latency          time.Duration
	logger           *slog.Logger
	tokens           TokenIssuer
	sender           CodeSender
	inviteCode       func() (string, error)
	verificationCode func() (string, error)
	now              func() time.Time
	handlers         map[operations.Kind]handlerFunc
}

func NewDispatcher(store *Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:            store,
		latency:          DefaultLatency,
		logger:           slog.Default(),
		inviteCode:       randomInviteCode,
		verificationCode: randomVerificationCode,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.tokens == nil {
		d.tokens = MockTokens{Now: d.now}
	}

	d.handlers = map[operations.Kind]handlerFunc{
		operations.GetCurrentUser:       d.currentUser,
		operations.Login:                d.login,
		operations.SendVerificationCode: d.sendVerificationCode,
		operations.Signup:               d.signup,
		operations.UpdateProfile:        d.updateProfile,
		operations.GetMyGroups:          d.myGroups,
		operations.CreateGroup:          d.createGroup,
		operations.JoinGroup:            d.joinGroup,
		operations.GetGroupByInviteCode: d.groupByInviteCode,
		operations.GetGroupEvents:       d.groupEvents,
		operations.CreateEvent:          d.createEvent,
		operations.DeleteEvent:          d.deleteEvent,
		operations.GetCars:              d.cars,
		operations.GetAvailableCars:     d.availableCars,
		operations.GetCar:               d.car,
		operations.CreateCar:            d.createCar,
		operations.CreateReservation:    d.createReservation,
		operations.GetReservations:      d.reservations,
		operations.CancelReservation:    d.cancelReservation,
		operations.GetDashboardData:     d.dashboard,
	}
	return d
}

func (d *Dispatcher) Store() *Store {
	return d.store
}

// Handles reports whether kind has a mock implementation.
func (d *Dispatcher) Handles(kind operations.Kind) bool {
	_, ok := d.handlers[kind]
	return ok
}

// Execute answers one operation. It waits out the simulated latency, then runs the
// handler for kind against the store under its lock, so concurrent calls are
// serialized and a failed call leaves the store untouched. Kinds without a handler
// get the kind's empty response.
func (d *Dispatcher) Execute(ctx context.Context, kind operations.Kind, vars operations.Variables) (operations.Response, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}

	h, ok := d.handlers[kind]
	if !ok {
		d.logger.Warn("no mock handler for operation", "operation", kind.String())
		return kind.EmptyResponse(), nil
	}
	if vars == nil {
		vars = operations.Variables{}
	}

	start := time.Now()
	c := &call{ctx: ctx, vars: vars}

	d.store.mu.Lock()
	c.actor = d.store.actingUser(ActingUserFrom(ctx))
	resp, err := h(c)
	d.store.mu.Unlock()

	if err == nil {
		for _, fn := range c.after {
			if ferr := fn(); ferr != nil {
				d.logger.Warn("mock operation side effect failed", "operation", kind.String(), "error", ferr)
			}
		}
	}

	attrs := []any{"operation", kind.String(), "duration", time.Since(start)}
	if c.actor != nil {
		attrs = append(attrs, "user_id", c.actor.ID)
	}
	if err != nil {
		d.logger.Debug("mock operation failed", append(attrs, "error", err)...)
		return nil, err
	}
	d.logger.Debug("mock operation", attrs...)
	return resp, nil
}

func (d *Dispatcher) wait(ctx context.Context) error {
	if d.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func requireActor(c *call) (*models.User, error) {
	if c.actor == nil {
		return nil, ErrUnauthenticated
	}
	return c.actor, nil
}

type actingUserKey struct{}

// WithActingUser returns a context whose operations run as userID instead of the
// store's signed-in user. Unknown ids fall back to the signed-in user.
func WithActingUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actingUserKey{}, userID)
}

func ActingUserFrom(ctx context.Context) string {
	id, _ := ctx.Value(actingUserKey{}).(string)
	return id
}
