package mockapi

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrValidation)

const (
	defaultFirstName = "新規"
	defaultLastName  = "ユーザー"
	defaultEmail     = "new@example.com"
)

func (d *Dispatcher) currentUser(c *call) (operations.Response, error) {
	if c.actor == nil {
		return operations.Response{"me": nil}, nil
	}
	return operations.Response{"me": cloneUser(c.actor)}, nil
}

// login switches the signed-in user when the email is known. Unknown emails keep
// the current user, as the demo backend always has.
func (d *Dispatcher) login(c *call) (operations.Response, error) {
	var vars operations.LoginVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}

	user := c.actor
	if email := strings.TrimSpace(vars.Input.Email); email != "" {
		if found := d.store.userByEmail(email); found != nil {
			if found.PasswordHash != "" {
				if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(vars.Input.Password)); err != nil {
					return nil, ErrInvalidCredentials
				}
			}
			user = found
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	token, err := d.tokens.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	d.store.currentUserID = user.ID
	return operations.Response{"login": &models.AuthPayload{Token: token, User: cloneUser(user)}}, nil
}

func (d *Dispatcher) sendVerificationCode(c *call) (operations.Response, error) {
	var vars operations.SendVerificationCodeVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(vars.Email)
	if email == "" {
		return nil, required("email")
	}

	code, err := d.verificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	d.store.codes[email] = code

	if d.sender != nil {
		sender := d.sender
		c.afterUnlock(func() error {
			return sender.SendVerificationCode(email, code)
		})
	}
	return operations.Response{"sendVerificationCode": true}, nil
}

func (d *Dispatcher) signup(c *call) (operations.Response, error) {
	var vars operations.SignupVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	in := vars.Input

	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = defaultEmail
	}
	if d.store.userByEmail(email) != nil {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
	}
	if code, issued := d.store.codes[email]; issued && code != strings.TrimSpace(vars.VCode) {
		return nil, invalid("vcode", "does not match the code sent to %s", email)
	}

	user := &models.User{
		ID:        "mock-" + uuid.NewString(),
		FirstName: orDefault(in.FirstName, defaultFirstName),
		LastName:  orDefault(in.LastName, defaultLastName),
		Email:     email,
		Icon:      orDefault(in.Icon, placeholderIcon),
		AvatarID:  1,
	}
	user.Name = user.DisplayName()
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	token, err := d.tokens.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	d.store.users = append(d.store.users, user)
	d.store.currentUserID = user.ID
	delete(d.store.codes, email)

	return operations.Response{"signup": &models.SignupPayload{Token: token, User: cloneUser(user)}}, nil
}

// updateProfile edits the acting user's record in place. Cars and reservations
// reference the same record, so they see the change on their next read.
func (d *Dispatcher) updateProfile(c *call) (operations.Response, error) {
	actor, err := requireActor(c)
	if err != nil {
		return nil, err
	}
	var vars operations.UpdateProfileVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	if vars.Input == nil {
		return nil, required("input")
	}

	if vars.Input.FirstName != "" {
		actor.FirstName = vars.Input.FirstName
	}
	if vars.Input.LastName != "" {
		actor.LastName = vars.Input.LastName
	}
	if vars.Input.Icon != "" {
		actor.Icon = vars.Input.Icon
	}
	actor.Name = actor.DisplayName()

	return operations.Response{"updateProfile": cloneUser(actor)}, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
