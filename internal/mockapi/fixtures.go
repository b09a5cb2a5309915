package mockapi

import (
	"time"

	"github.com/dimitrije/carshare/internal/models"
)

const placeholderIcon = "/placeholder.svg?height=64&width=64"

const placeholderCarImage = "/placeholder.svg?height=200&width=300"

// seedStats are the dashboard counters. They are static and never recomputed.
var seedStats = models.UserStats{
	TotalCars:            2,
	TotalReservations:    5,
	UpcomingReservations: 2,
}

// Seed returns a new store filled with the demo data set. Each call returns an
// independent store, so tests never share state.
func Seed() *Store {
	s := NewStore()

	taro := &models.User{ID: "user-1", FirstName: "太郎", LastName: "田中", Email: "taro@example.com", Icon: placeholderIcon, AvatarID: 1}
	hanako := &models.User{ID: "user-2", FirstName: "花子", LastName: "佐藤", Email: "hanako@example.com", Icon: placeholderIcon, AvatarID: 2}
	jiro := &models.User{ID: "user-3", FirstName: "次郎", LastName: "鈴木", Email: "jiro@example.com", Icon: placeholderIcon, AvatarID: 3}
	for _, u := range []*models.User{taro, hanako, jiro} {
		u.Name = u.DisplayName()
	}
	s.users = []*models.User{taro, hanako, jiro}

	s.groups = []*models.Group{
		{
			ID:         "group-1",
			Name:       "大学サークル",
			Members:    []models.Member{taro.AsMember(), hanako.AsMember(), jiro.AsMember()},
			InviteCode: "ABC123",
		},
		{
			ID:         "group-2",
			Name:       "友達グループ",
			Members:    []models.Member{taro.AsMember(), hanako.AsMember()},
			InviteCode: "DEF456",
		},
	}

	s.cars = []*models.Car{
		{ID: "car-1", Name: "トヨタ", Model: "プリウス", Year: 2020, LicensePlate: "品川 500 あ 1234", Location: "東京都渋谷区", PricePerDay: 5000, Available: true, ImageURL: placeholderCarImage, Owner: taro},
		{ID: "car-2", Name: "ホンダ", Model: "フィット", Year: 2019, LicensePlate: "品川 500 あ 5678", Location: "東京都新宿区", PricePerDay: 4000, Available: true, ImageURL: placeholderCarImage, Owner: hanako},
		{ID: "car-3", Name: "日産", Model: "ノート", Year: 2021, LicensePlate: "品川 500 あ 9012", Location: "東京都池袋区", PricePerDay: 4500, Available: false, ImageURL: placeholderCarImage, Owner: jiro},
	}

	s.reservations = []*models.Reservation{
		{ID: "reservation-1", CarID: "car-1", UserID: "user-1", StartDate: ts("2024-01-20T09:00:00Z"), EndDate: ts("2024-01-20T18:00:00Z"), TotalPrice: 5000, Status: models.ReservationConfirmed},
		{ID: "reservation-2", CarID: "car-2", UserID: "user-2", StartDate: ts("2024-01-22T10:00:00Z"), EndDate: ts("2024-01-22T16:00:00Z"), TotalPrice: 4000, Status: models.ReservationPending},
	}

	s.events = []*models.Event{
		{ID: "event-1", GroupID: "group-1", UserID: "user-1", UserName: taro.Name, UserAvatarID: 1, Title: "大学へ通学", StartTime: ts("2024-01-20T08:00:00Z"), EndTime: ts("2024-01-20T18:00:00Z"), IsImportant: true, IsCommute: true, Note: "朝の授業があるので早めに出発します"},
		{ID: "event-2", GroupID: "group-1", UserID: "user-2", UserName: hanako.Name, UserAvatarID: 2, Title: "買い物", StartTime: ts("2024-01-21T14:00:00Z"), EndTime: ts("2024-01-21T17:00:00Z"), Note: "週末の買い物に使用"},
		{ID: "event-3", GroupID: "group-1", UserID: "user-3", UserName: jiro.Name, UserAvatarID: 3, Title: "病院", StartTime: ts("2024-01-22T10:00:00Z"), EndTime: ts("2024-01-22T12:00:00Z"), IsImportant: true, Note: "定期検診のため"},
	}

	s.stats = seedStats
	s.currentUserID = taro.ID

	return s
}

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
