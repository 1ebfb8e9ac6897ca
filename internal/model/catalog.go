package model

import "time"

// Pesawat mirrors the `pesawat` table: one row per airline with its logo
// file name in the image store.
type Pesawat struct {
	ID      uint64 `json:"id"`
	Airline string `json:"airline"`
	Logo    string `json:"logo"`
}

// Hotel mirrors the `hotels` table. Rating is constrained to 0–5 inclusive
// at the handler boundary.
type Hotel struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Image    string  `json:"image"`
}

// FlightSchedule mirrors the `jadwal_penerbangan` table. Departure and
// arrival are times of day kept as strings exactly as submitted; FlightDate
// carries the calendar date.
type FlightSchedule struct {
	ID            uint64    `json:"id"`
	PesawatID     uint64    `json:"pesawatId"`
	FlightDate    time.Time `json:"flightDate"`
	DepartureTime string    `json:"departureTime"`
	ArrivalTime   string    `json:"arrivalTime"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Class         string    `json:"class"`
	Price         float64   `json:"price"`
	Pesawat       *Pesawat  `json:"pesawat,omitempty"`
}
