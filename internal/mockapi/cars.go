package mockapi

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
)

// Defaults applied to fields CreateCar leaves empty.
const (
	defaultCarName     = "新しい車"
	defaultCarModel    = "モデル"
	defaultCarYear     = 2023
	defaultCarPlate    = "品川 500 あ 0000"
	defaultCarLocation = "東京都"
	defaultCarPrice    = 5000
)

func (d *Dispatcher) cars(c *call) (operations.Response, error) {
	var vars operations.CarsVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	onlyAvailable := vars.Filter != nil && vars.Filter.Available != nil && *vars.Filter.Available
	return operations.Response{"cars": d.listCars(onlyAvailable, vars.Limit)}, nil
}

func (d *Dispatcher) availableCars(c *call) (operations.Response, error) {
	var vars operations.CarsVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	return operations.Response{"cars": d.listCars(true, vars.Limit)}, nil
}

func (d *Dispatcher) listCars(onlyAvailable bool, limit int) []*models.Car {
	cars := []*models.Car{}
	for _, car := range d.store.cars {
		if onlyAvailable && !car.Available {
			continue
		}
		if limit > 0 && len(cars) == limit {
			break
		}
		cars = append(cars, cloneCar(car))
	}
	return cars
}

func (d *Dispatcher) car(c *call) (operations.Response, error) {
	var vars operations.IDVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	if strings.TrimSpace(vars.ID) == "" {
		return nil, required("id")
	}
	car := d.store.carByID(vars.ID)
	if car == nil {
		return operations.Response{"car": nil}, nil
	}
	return operations.Response{"car": cloneCar(car)}, nil
}

func (d *Dispatcher) createCar(c *call) (operations.Response, error) {
	actor, err := requireActor(c)
	if err != nil {
		return nil, err
	}
	var vars operations.CreateCarVariables
	if err := decode(c.vars, &vars); err != nil {
		return nil, err
	}
	in := vars.Input
	if in.PricePerDay < 0 {
		return nil, invalid("pricePerDay", "must not be negative")
	}
	if in.Year < 0 {
		return nil, invalid("year", "must not be negative")
	}

	car := &models.Car{
		ID:           "mock-" + uuid.NewString(),
		Name:         orDefault(in.Name, defaultCarName),
		Model:        orDefault(in.Model, defaultCarModel),
		Year:         in.Year,
		LicensePlate: orDefault(in.LicensePlate, defaultCarPlate),
		Location:     orDefault(in.Location, defaultCarLocation),
		PricePerDay:  in.PricePerDay,
		Available:    true,
		ImageURL:     orDefault(in.ImageURL, placeholderCarImage),
		Owner:        actor,
	}
	if car.Year == 0 {
		car.Year = defaultCarYear
	}
	if car.PricePerDay == 0 {
		car.PricePerDay = defaultCarPrice
	}
	d.store.cars = append(d.store.cars, car)

	return operations.Response{"createCar": cloneCar(car)}, nil
}
