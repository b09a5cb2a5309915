package models

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Icon      string `json:"icon"`
	AvatarID  int    `json:"avatarId"`
	Name      string `json:"name"`

	PasswordHash string `json:"-"`
}

// DisplayName is the family-name-first form shown across the app.
func (u *User) DisplayName() string {
	return u.LastName + " " + u.FirstName
}

// AsMember projects the user into the shape stored on group member lists.
func (u *User) AsMember() Member {
	avatar := u.AvatarID
	if avatar == 0 {
		avatar = 1
	}
	name := u.Name
	if name == "" {
		name = u.DisplayName()
	}
	return Member{ID: u.ID, Name: name, AvatarID: avatar}
}

type UserStats struct {
	TotalCars            int `json:"totalCars"`
	TotalReservations    int `json:"totalReservations"`
	UpcomingReservations int `json:"upcomingReservations"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SignupPayload keeps the capitalised User key the API has always returned.
type SignupPayload struct {
	Token string `json:"token"`
	User  *User  `json:"User"`
}
