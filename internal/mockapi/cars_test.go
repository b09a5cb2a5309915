package mockapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
)

func carIDs(cars []*models.Car) []string {
	ids := make([]string, len(cars))
	for i, c := range cars {
		ids[i] = c.ID
	}
	return ids
}

func TestGetCars(t *testing.T) {
	testCases := []struct {
		name string
		kind operations.Kind
		vars operations.Variables
		want []string
	}{
		{"no filter", operations.GetCars, nil, []string{"car-1", "car-2", "car-3"}},
		{"available only", operations.GetCars, operations.Variables{"filter": map[string]any{"available": true}}, []string{"car-1", "car-2"}},
		{"available false is no filter", operations.GetCars, operations.Variables{"filter": map[string]any{"available": false}}, []string{"car-1", "car-2", "car-3"}},
		{"limit", operations.GetCars, operations.Variables{"limit": 2}, []string{"car-1", "car-2"}},
		{"available cars", operations.GetAvailableCars, nil, []string{"car-1", "car-2"}},
		{"available cars with limit", operations.GetAvailableCars, operations.Variables{"limit": float64(1)}, []string{"car-1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDispatcher(t)
			cars := execute(t, d, tc.kind, tc.vars)["cars"].([]*models.Car)
			assert.Equal(t, tc.want, carIDs(cars))
		})
	}
}

func TestGetCar(t *testing.T) {
	d := newTestDispatcher(t)

	car := execute(t, d, operations.GetCar, operations.Variables{"id": "car-2"})["car"].(*models.Car)
	assert.Equal(t, "フィット", car.Model)
	require.NotNil(t, car.Owner)
	assert.Equal(t, "user-2", car.Owner.ID)

	resp := execute(t, d, operations.GetCar, operations.Variables{"id": "car-99"})
	assert.Nil(t, resp["car"])

	_, err := d.Execute(context.Background(), operations.GetCar, operations.Variables{})
	assertFieldError(t, err, "id")
}

func TestCreateCar(t *testing.T) {
	d := newTestDispatcher(t)

	car := execute(t, d, operations.CreateCar, operations.Variables{
		"input": map[string]any{"name": "マツダ", "model": "CX-5", "year": 2022, "pricePerDay": 6000},
	})["createCar"].(*models.Car)

	assert.Equal(t, "マツダ", car.Name)
	assert.Equal(t, 2022, car.Year)
	assert.Equal(t, 6000, car.PricePerDay)
	assert.Equal(t, defaultCarPlate, car.LicensePlate)
	assert.Equal(t, defaultCarLocation, car.Location)
	assert.True(t, car.Available)
	assert.Equal(t, "user-1", car.Owner.ID)
	assert.Len(t, d.Store().Cars(), 4)
}

func TestCreateCar_Defaults(t *testing.T) {
	d := newTestDispatcher(t)

	car := execute(t, d, operations.CreateCar, operations.Variables{"input": map[string]any{}})["createCar"].(*models.Car)

	assert.Equal(t, defaultCarName, car.Name)
	assert.Equal(t, defaultCarModel, car.Model)
	assert.Equal(t, defaultCarYear, car.Year)
	assert.Equal(t, defaultCarPrice, car.PricePerDay)
	assert.Equal(t, placeholderCarImage, car.ImageURL)
}

func TestCreateCar_NegativePrice(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Execute(context.Background(), operations.CreateCar, operations.Variables{
		"input": map[string]any{"pricePerDay": -1},
	})

	assertFieldError(t, err, "pricePerDay")
	assert.Len(t, d.Store().Cars(), 3)
}

func TestCreateReservation(t *testing.T) {
	d := newTestDispatcher(t)

	r := execute(t, d, operations.CreateReservation, operations.Variables{
		"input": map[string]any{"carId": "car-2", "startDate": "2024-02-01T09:00:00Z", "endDate": "2024-02-02T10:00:00Z"},
	})["createReservation"].(*models.Reservation)

	assert.Equal(t, 8000, r.TotalPrice)
	assert.Equal(t, models.ReservationConfirmed, r.Status)
	assert.Equal(t, "user-1", r.UserID)
	require.NotNil(t, r.Car)
	assert.Equal(t, "car-2", r.Car.ID)
	require.NotNil(t, r.User)
	assert.Equal(t, "user-1", r.User.ID)
}

func TestCreateReservation_TwoDayRental(t *testing.T) {
	d := newTestDispatcher(t)

	r := execute(t, d, operations.CreateReservation, operations.Variables{
		"input": map[string]any{"carId": "car-1", "startDate": "2024-01-20", "endDate": "2024-01-22"},
	})["createReservation"].(*models.Reservation)

	assert.Equal(t, 10000, r.TotalPrice)
	assert.Len(t, d.Store().Reservations(), 3)
}

func TestCreateReservation_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		input     map[string]any
		wantField string
		wantErr   error
	}{
		{"missing car", map[string]any{"startDate": "2024-02-01", "endDate": "2024-02-02"}, "carId", nil},
		{"bad start", map[string]any{"carId": "car-1", "startDate": "soon", "endDate": "2024-02-02"}, "startDate", nil},
		{"missing end", map[string]any{"carId": "car-1", "startDate": "2024-02-01"}, "endDate", nil},
		{"end before start", map[string]any{"carId": "car-1", "startDate": "2024-02-02", "endDate": "2024-02-01"}, "endDate", nil},
		{"unknown car", map[string]any{"carId": "car-99", "startDate": "2024-02-01", "endDate": "2024-02-02"}, "", ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDispatcher(t)

			_, err := d.Execute(context.Background(), operations.CreateReservation, operations.Variables{"input": tc.input})

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assertFieldError(t, err, tc.wantField)
			}
			assert.Len(t, d.Store().Reservations(), 2)
		})
	}
}

func TestRentalDays(t *testing.T) {
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, rentalDays(base, base))
	assert.Equal(t, 1, rentalDays(base, base.Add(time.Minute)))
	assert.Equal(t, 1, rentalDays(base, base.Add(24*time.Hour)))
	assert.Equal(t, 2, rentalDays(base, base.Add(25*time.Hour)))
}

func TestGetReservations(t *testing.T) {
	d := newTestDispatcher(t)

	resp := execute(t, d, operations.GetReservations, nil)
	mine := resp["myReservations"].([]*models.Reservation)
	onMyCars := resp["carReservations"].([]*models.Reservation)

	require.Len(t, mine, 1)
	assert.Equal(t, "reservation-1", mine[0].ID)
	require.Len(t, onMyCars, 1)
	assert.Equal(t, "reservation-1", onMyCars[0].ID)

	resp, err := d.Execute(WithActingUser(context.Background(), "user-2"), operations.GetReservations, nil)
	require.NoError(t, err)
	assert.Len(t, resp["myReservations"], 1)
	assert.Len(t, resp["carReservations"], 1)
}

func TestCancelReservation(t *testing.T) {
	d := newTestDispatcher(t)

	for range 2 {
		r := execute(t, d, operations.CancelReservation, operations.Variables{"id": "reservation-2"})["cancelReservation"].(*models.Reservation)
		assert.Equal(t, models.ReservationCancelled, r.Status)
		assert.True(t, r.IsCancelled())
	}
	assert.Equal(t, models.ReservationCancelled, d.Store().Reservations()[1].Status)

	resp := execute(t, d, operations.CancelReservation, operations.Variables{"id": "reservation-99"})
	assert.Nil(t, resp["cancelReservation"])
}

func TestGetDashboardData(t *testing.T) {
	d := newTestDispatcher(t)
	for range 4 {
		execute(t, d, operations.CreateCar, operations.Variables{"input": map[string]any{}})
	}

	resp := execute(t, d, operations.GetDashboardData, nil)

	assert.Equal(t, &models.UserStats{TotalCars: 2, TotalReservations: 5, UpcomingReservations: 2}, resp["userStats"])
	myCars := resp["myCars"].([]*models.Car)
	assert.Len(t, myCars, 3)
	assert.Equal(t, "car-1", myCars[0].ID)
	assert.Len(t, resp["myReservations"], 1)
}
