// Package operations is the catalogue of car-share API operations. Every call site
// names its operation with a Kind; the kind carries the GraphQL document sent to a
// real backend and the result fields of its response.
package operations

import (
	"regexp"
	"strings"
)

type Kind int

const (
	Unknown Kind = iota
	GetCurrentUser
	Login
	SendVerificationCode
	Signup
	GetMyGroups
	CreateGroup
	JoinGroup
	GetGroupByInviteCode
	GetGroupEvents
	CreateEvent
	DeleteEvent
	GetCars
	GetAvailableCars
	GetCar
	CreateCar
	CreateReservation
	GetReservations
	CancelReservation
	GetDashboardData
	UpdateProfile
)

// Variables is the variables payload of an operation.
type Variables map[string]any

// Response is an operation result keyed by result field, e.g. "myGroups".
type Response map[string]any

type definition struct {
	name     string
	fields   []string
	listLike bool
	document string
}

var definitions = map[Kind]definition{
	GetCurrentUser:       {name: "GetCurrentUser", fields: []string{"me"}, document: getCurrentUserDoc},
	Login:                {name: "Login", fields: []string{"login"}, document: loginDoc},
	SendVerificationCode: {name: "SendVerificationCode", fields: []string{"sendVerificationCode"}, document: sendVerificationCodeDoc},
	Signup:               {name: "Signup", fields: []string{"signup"}, document: signupDoc},
	GetMyGroups:          {name: "GetMyGroups", fields: []string{"myGroups"}, listLike: true, document: getMyGroupsDoc},
	CreateGroup:          {name: "CreateGroup", fields: []string{"createGroup"}, document: createGroupDoc},
	JoinGroup:            {name: "JoinGroup", fields: []string{"joinGroup"}, document: joinGroupDoc},
	GetGroupByInviteCode: {name: "GetGroupByInviteCode", fields: []string{"groupByInviteCode"}, document: getGroupByInviteCodeDoc},
	GetGroupEvents:       {name: "GetGroupEvents", fields: []string{"groupEvents"}, listLike: true, document: getGroupEventsDoc},
	CreateEvent:          {name: "CreateEvent", fields: []string{"createEvent"}, document: createEventDoc},
	DeleteEvent:          {name: "DeleteEvent", fields: []string{"deleteEvent"}, document: deleteEventDoc},
	GetCars:              {name: "GetCars", fields: []string{"cars"}, listLike: true, document: getCarsDoc},
	GetAvailableCars:     {name: "GetAvailableCars", fields: []string{"cars"}, listLike: true, document: getAvailableCarsDoc},
	GetCar:               {name: "GetCar", fields: []string{"car"}, document: getCarDoc},
	CreateCar:            {name: "CreateCar", fields: []string{"createCar"}, document: createCarDoc},
	CreateReservation:    {name: "CreateReservation", fields: []string{"createReservation"}, document: createReservationDoc},
	GetReservations:      {name: "GetReservations", fields: []string{"myReservations", "carReservations"}, document: getReservationsDoc},
	CancelReservation:    {name: "CancelReservation", fields: []string{"cancelReservation"}, document: cancelReservationDoc},
	GetDashboardData:     {name: "GetDashboardData", fields: []string{"userStats", "myCars", "myReservations"}, document: getDashboardDataDoc},
	UpdateProfile:        {name: "UpdateProfile", fields: []string{"updateProfile"}, document: updateProfileDoc},
}

// aliases maps operation names older clients send onto their kind.
var aliases = map[string]Kind{
	"RegisterCar": CreateCar,
}

// All returns every known kind in declaration order.
func All() []Kind {
	kinds := make([]Kind, 0, len(definitions))
	for k := GetCurrentUser; k <= UpdateProfile; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if d, ok := definitions[k]; ok {
		return d.name
	}
	return "Unknown"
}

func (k Kind) Valid() bool {
	_, ok := definitions[k]
	return ok
}

// ResultFields lists the top-level keys of the kind's response.
func (k Kind) ResultFields() []string {
	return definitions[k].fields
}

// Document returns the GraphQL document sent to a real backend.
func (k Kind) Document() string {
	return definitions[k].document
}

// EmptyResponse is the default answer when nothing handles the kind:
// an empty list for list-shaped queries, an empty object otherwise.
func (k Kind) EmptyResponse() Response {
	d, ok := definitions[k]
	if !ok || !d.listLike {
		return Response{}
	}
	resp := Response{}
	for _, f := range d.fields {
		resp[f] = []any{}
	}
	return resp
}

// ParseKind resolves an operation name exactly (no substring matching).
func ParseKind(name string) (Kind, bool) {
	name = strings.TrimSpace(name)
	for k, d := range definitions {
		if d.name == name {
			return k, true
		}
	}
	if k, ok := aliases[name]; ok {
		return k, true
	}
	return Unknown, false
}

var documentHeader = regexp.MustCompile(`^\s*(?:query|mutation)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// KindFromDocument reads the operation name from a document header such as
// "mutation JoinGroup($input: JoinGroupInput!)".
func KindFromDocument(document string) (Kind, bool) {
	m := documentHeader.FindStringSubmatch(document)
	if m == nil {
		return Unknown, false
	}
	return ParseKind(m[1])
}
