package models

type Car struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"licensePlate"`
	Location     string `json:"location"`
	PricePerDay  int    `json:"pricePerDay"`
	Available    bool   `json:"available"`
	ImageURL     string `json:"imageUrl"`
	Owner        *User  `json:"owner,omitempty"`
}
