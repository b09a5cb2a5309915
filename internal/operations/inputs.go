package operations

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type LoginInput struct {
	Email    string `json:"email" mapstructure:"email"`
	Password string `json:"password" mapstructure:"password"`
}

type LoginVariables struct {
	Input LoginInput `json:"input" mapstructure:"input"`
}

type SendVerificationCodeVariables struct {
	Email string `json:"email" mapstructure:"email"`
}

type SignupInput struct {
	FirstName string `json:"firstName" mapstructure:"firstName"`
	LastName  string `json:"lastName" mapstructure:"lastName"`
	Email     string `json:"email" mapstructure:"email"`
	Password  string `json:"password" mapstructure:"password"`
	Icon      string `json:"icon" mapstructure:"icon"`
}

type SignupVariables struct {
	Input SignupInput `json:"input" mapstructure:"input"`
	VCode string      `json:"vcode" mapstructure:"vcode"`
}

type CreateGroupInput struct {
	Name string `json:"name" mapstructure:"name"`
}

type CreateGroupVariables struct {
	Input CreateGroupInput `json:"input" mapstructure:"input"`
}

type JoinGroupInput struct {
	InviteCode string `json:"inviteCode" mapstructure:"inviteCode"`
}

type JoinGroupVariables struct {
	Input JoinGroupInput `json:"input" mapstructure:"input"`
}

type GroupByInviteCodeVariables struct {
	InviteCode string `json:"inviteCode" mapstructure:"inviteCode"`
}

// GroupEventsInput carries the visible calendar range as yyyy-MM-dd dates.
type GroupEventsInput struct {
	GroupID   string `json:"groupId" mapstructure:"groupId"`
	StartDate string `json:"startDate,omitempty" mapstructure:"startDate"`
	EndDate   string `json:"endDate,omitempty" mapstructure:"endDate"`
}

type GroupEventsVariables struct {
	Input GroupEventsInput `json:"input" mapstructure:"input"`
}

type CreateEventInput struct {
	GroupID     string `json:"groupId" mapstructure:"groupId"`
	Title       string `json:"title" mapstructure:"title"`
	StartTime   string `json:"startTime,omitempty" mapstructure:"startTime"`
	EndTime     string `json:"endTime,omitempty" mapstructure:"endTime"`
	IsImportant bool   `json:"isImportant" mapstructure:"isImportant"`
	IsCommute   bool   `json:"isCommute" mapstructure:"isCommute"`
	Note        string `json:"note" mapstructure:"note"`
}

type CreateEventVariables struct {
	Input CreateEventInput `json:"input" mapstructure:"input"`
}

// IDVariables serves GetCar, DeleteEvent and CancelReservation.
type IDVariables struct {
	ID string `json:"id" mapstructure:"id"`
}

type CarFilter struct {
	Available *bool `json:"available,omitempty" mapstructure:"available"`
}

type CarsVariables struct {
	Filter *CarFilter `json:"filter,omitempty" mapstructure:"filter"`
	Limit  int        `json:"limit,omitempty" mapstructure:"limit"`
}

type CreateCarInput struct {
	Name         string `json:"name" mapstructure:"name"`
	Model        string `json:"model" mapstructure:"model"`
	Year         int    `json:"year,omitempty" mapstructure:"year"`
	LicensePlate string `json:"licensePlate" mapstructure:"licensePlate"`
	Location     string `json:"location" mapstructure:"location"`
	PricePerDay  int    `json:"pricePerDay,omitempty" mapstructure:"pricePerDay"`
	ImageURL     string `json:"imageUrl,omitempty" mapstructure:"imageUrl"`
	Description  string `json:"description,omitempty" mapstructure:"description"`
}

type CreateCarVariables struct {
	Input CreateCarInput `json:"input" mapstructure:"input"`
}

type CreateReservationInput struct {
	CarID     string `json:"carId" mapstructure:"carId"`
	StartDate string `json:"startDate" mapstructure:"startDate"`
	EndDate   string `json:"endDate" mapstructure:"endDate"`
}

type CreateReservationVariables struct {
	Input CreateReservationInput `json:"input" mapstructure:"input"`
}

type UpdateProfileInput struct {
	FirstName string `json:"firstName,omitempty" mapstructure:"firstName"`
	LastName  string `json:"lastName,omitempty" mapstructure:"lastName"`
	Icon      string `json:"icon,omitempty" mapstructure:"icon"`
}

// UpdateProfileVariables keeps Input a pointer so a missing input is detectable.
type UpdateProfileVariables struct {
	Input *UpdateProfileInput `json:"input,omitempty" mapstructure:"input"`
}

// Decode fills target from a variables payload. Numbers arriving as JSON floats
// or strings are converted to the target field type.
func Decode(vars Variables, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]any(vars)); err != nil {
		return fmt.Errorf("failed to decode variables: %w", err)
	}
	return nil
}

// NewVariables turns one of the typed *Variables structs into a payload with the
// exact shape it has on the wire.
func NewVariables(v any) (Variables, error) {
	if v == nil {
		return Variables{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode variables: %w", err)
	}
	vars := Variables{}
	if err := json.Unmarshal(raw, &vars); err != nil {
		return nil, fmt.Errorf("failed to encode variables: %w", err)
	}
	return vars, nil
}

// MustVariables is NewVariables for payloads built from the typed structs above,
// which always encode.
func MustVariables(v any) Variables {
	vars, err := NewVariables(v)
	if err != nil {
		panic(err)
	}
	return vars
}
