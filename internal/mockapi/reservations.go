package mockapi

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
)

const dashboardPreviewSize = 3

func (d *Dispatcher) createReservation(c *call) (operations.Response, error) {
	actor, err := requireActor(c)
	if err != nil {
		return nil, err
	}
	var vars operations.CreateReservationVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	in := vars.Input

	if strings.TrimSpace(in.CarID) == "" {
		return nil, required("carId")
	}
	start, err := parseTimestamp("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseTimestamp("endDate", in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, invalid("endDate", "must not be before startDate")
	}
	car := d.store.carByID(in.CarID)
	if car == nil {
		return nil, notFound("car %s", in.CarID)
	}

	r := &models.Reservation{
		ID:         "mock-" + uuid.NewString(),
		CarID:      car.ID,
		UserID:     actor.ID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: car.PricePerDay * rentalDays(start, end),
		Status:     models.ReservationConfirmed,
	}
	d.store.reservations = append(d.store.reservations, r)

	return operations.Response{"createReservation": d.store.hydrate(r)}, nil
}

// rentalDays counts started 24 hour periods between start and end.
func rentalDays(start, end time.Time) int {
	const day = 24 * time.Hour
	span := end.Sub(start)
	if span <= 0 {
		return 0
	}
	days := int(span / day)
	if span%day != 0 {
		days++
	}
	return days
}

// reservations returns the acting user's bookings and the bookings on cars the
// acting user owns. A booking of one's own car appears in both lists.
func (d *Dispatcher) reservations(c *call) (operations.Response, error) {
	mine := []*models.Reservation{}
	onMyCars := []*models.Reservation{}
	if c.actor != nil {
		for _, r := range d.store.reservations {
			if r.UserID == c.actor.ID {
				mine = append(mine, d.store.hydrate(r))
			}
			if car := d.store.carByID(r.CarID); car != nil && car.Owner != nil && car.Owner.ID == c.actor.ID {
				onMyCars = append(onMyCars, d.store.hydrate(r))
			}
		}
	}
	return operations.Response{"myReservations": mine, "carReservations": onMyCars}, nil
}

func (d *Dispatcher) cancelReservation(c *call) (operations.Response, error) {
	var vars operations.IDVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	r := d.store.reservationByID(vars.ID)
	if r == nil {
		return operations.Response{"cancelReservation": nil}, nil
	}
	r.Status = models.ReservationCancelled
	return operations.Response{"cancelReservation": d.store.hydrate(r)}, nil
}

// dashboard returns the static stats with previews of the acting user's cars and
// bookings.
func (d *Dispatcher) dashboard(c *call) (operations.Response, error) {
	myCars := []*models.Car{}
	myReservations := []*models.Reservation{}
	if c.actor != nil {
		for _, car := range d.store.cars {
			if len(myCars) == dashboardPreviewSize {
				break
			}
			if car.Owner != nil && car.Owner.ID == c.actor.ID {
				myCars = append(myCars, cloneCar(car))
			}
		}
		for _, r := range d.store.reservations {
			if len(myReservations) == dashboardPreviewSize {
				break
			}
			if r.UserID == c.actor.ID {
				myReservations = append(myReservations, d.store.hydrate(r))
			}
		}
	}
	stats := d.store.stats
	return operations.Response{
		"userStats":      &stats,
		"myCars":         myCars,
		"myReservations": myReservations,
	}, nil
}
