package models

import "time"

// Event is a calendar entry a group member puts on the shared car calendar.
type Event struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"groupId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	UserAvatarID int       `json:"userAvatarId"`
	Title        string    `json:"title"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	IsImportant  bool      `json:"isImportant"`
	IsCommute    bool      `json:"isCommute"`
	Note         string    `json:"note"`
}
