package model

import "time"

// Booking reserves a unit for a customer over [StartDate, EndDate). Intervals
// are half-open: a booking ending at an instant does not conflict with one
// starting at that same instant.
type Booking struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	UnitID      string    `json:"unit_id" bson:"unit_id" validate:"required,uuid4"`
	CustomerID  string    `json:"customer_id" bson:"customer_id" validate:"required,uuid4"`
	StartDate   time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" bson:"end_date" validate:"required"`
	PricePerDay float64   `json:"price_per_day" bson:"price_per_day" validate:"required,gt=0"`
	TotalPrice  float64   `json:"total_price" bson:"total_price" validate:"required,gt=0"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,max=200"`
	Status      string    `json:"status" bson:"status" validate:"required,booking_status"`
	Metadata    []string  `json:"metadata,omitempty" bson:"metadata,omitempty" validate:"omitempty,dive,max=50"`
	CreatedBy   string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type BookingUpdate struct {
	StartDate   *time.Time `json:"start_date,omitempty" validate:"omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty" validate:"omitempty"`
	PricePerDay *float64   `json:"price_per_day,omitempty" validate:"omitempty,gt=0"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	Status      string     `json:"status,omitempty" validate:"omitempty,booking_status"`
	Metadata    *[]string  `json:"metadata,omitempty" validate:"omitempty,dive,max=50"`
}

// AvailabilityWindow is one occupied interval on a unit's calendar.
type AvailabilityWindow struct {
	StartDate time.Time `json:"start_date" bson:"start_date"`
	EndDate   time.Time `json:"end_date" bson:"end_date"`
}
