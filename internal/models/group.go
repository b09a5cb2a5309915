package models

type Member struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	AvatarID int    `json:"avatarId"`
}

type Group struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Members    []Member `json:"members"`
	InviteCode string   `json:"inviteCode"`
}

func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
