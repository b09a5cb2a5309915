package mockapi

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
)

const (
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeLength   = 6
	inviteCodeAttempts = 16

	defaultGroupName = "新しいグループ"
)

var ErrInviteCodeExhausted = errors.New("could not generate a unique invite code")

func (d *Dispatcher) myGroups(c *call) (operations.Response, error) {
	groups := []*models.Group{}
	if c.actor != nil {
		for _, g := range d.store.groups {
			if g.HasMember(c.actor.ID) {
				groups = append(groups, cloneGroup(g))
			}
		}
	}
	return operations.Response{"myGroups": groups}, nil
}

func (d *Dispatcher) createGroup(c *call) (operations.Response, error) {
	actor, err := requireActor(c)
	if err != nil {
		return nil, err
	}
	var vars operations.CreateGroupVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	name := orDefault(strings.TrimSpace(vars.Input.Name), defaultGroupName)

	code, err := d.uniqueInviteCode()
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		ID:         "mock-" + uuid.NewString(),
		Name:       name,
		Members:    []models.Member{actor.AsMember()},
		InviteCode: code,
	}
	d.store.groups = append(d.store.groups, group)

	return operations.Response{"createGroup": cloneGroup(group)}, nil
}

func (d *Dispatcher) joinGroup(c *call) (operations.Response, error) {
	actor, err := requireActor(c)
	if err != nil {
		return nil, err
	}
	var vars operations.JoinGroupVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	// Codes match exactly; anything not issued, blank included, is not found.
	group := d.store.groupByInviteCode(vars.Input.InviteCode)
	if group == nil {
		return nil, notFound("no group with invite code %q", vars.Input.InviteCode)
	}
	if !group.HasMember(actor.ID) {
		group.Members = append(group.Members, actor.AsMember())
	}

	return operations.Response{"joinGroup": cloneGroup(group)}, nil
}

func (d *Dispatcher) groupByInviteCode(c *call) (operations.Response, error) {
	var vars operations.GroupByInviteCodeVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	group := d.store.groupByInviteCode(vars.InviteCode)
	if group == nil {
		return operations.Response{"groupByInviteCode": nil}, nil
	}
	return operations.Response{"groupByInviteCode": cloneGroup(group)}, nil
}

func (d *Dispatcher) uniqueInviteCode() (string, error) {
	for range inviteCodeAttempts {
		code, err := d.inviteCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		if d.store.groupByInviteCode(code) == nil {
			return code, nil
		}
	}
	return "", ErrInviteCodeExhausted
}

func randomInviteCode() (string, error) {
	return randomString(inviteCodeAlphabet, inviteCodeLength)
}

func randomVerificationCode() (string, error) {
	return randomString("0123456789", 6)
}

func randomString(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(n)
	for range n {
		i, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[i.Int64()])
	}
	return b.String(), nil
}
