package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

type Reservation struct {
	ID         string            `json:"id"`
	CarID      string            `json:"carId"`
	UserID     string            `json:"userId"`
	StartDate  time.Time         `json:"startDate"`
	EndDate    time.Time         `json:"endDate"`
	TotalPrice int               `json:"totalPrice"`
	Status     ReservationStatus `json:"status"`
	Car        *Car              `json:"car,omitempty"`
	User       *User             `json:"user,omitempty"`
}

func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationCancelled
}
