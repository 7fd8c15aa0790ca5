package model

import "time"

// Unit is a rentable vehicle in the fleet. The plate is stored uppercase and
// is unique across the fleet.
type Unit struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Name         string    `json:"name" bson:"name" validate:"required,min=3,max=100"`
	Brand        string    `json:"brand" bson:"brand" validate:"required,min=2,max=50"`
	Year         int       `json:"year" bson:"year" validate:"required,min=1900,unit_year"`
	Plate        string    `json:"plate" bson:"plate" validate:"required,min=3,max=20,plate"`
	Transmission string    `json:"transmission" bson:"transmission" validate:"required,oneof=MANUAL AUTOMATIC"`
	Capacity     int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=100"`
	PricePerDay  float64   `json:"price_per_day" bson:"price_per_day" validate:"required,gt=0,lte=1000000"`
	Status       string    `json:"status" bson:"status" validate:"required,oneof=AVAILABLE RENTED MAINTENANCE"`
	ImageURL     string    `json:"image_url,omitempty" bson:"image_url,omitempty" validate:"omitempty,url"`
	CreatedBy    string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type UnitUpdate struct {
	Name         string   `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Brand        string   `json:"brand,omitempty" validate:"omitempty,min=2,max=50"`
	Year         *int     `json:"year,omitempty" validate:"omitempty,min=1900,unit_year"`
	Plate        string   `json:"plate,omitempty" validate:"omitempty,min=3,max=20,plate"`
	Transmission string   `json:"transmission,omitempty" validate:"omitempty,oneof=MANUAL AUTOMATIC"`
	Capacity     *int     `json:"capacity,omitempty" validate:"omitempty,min=1,max=100"`
	PricePerDay  *float64 `json:"price_per_day,omitempty" validate:"omitempty,gt=0,lte=1000000"`
	Status       string   `json:"status,omitempty" validate:"omitempty,oneof=AVAILABLE RENTED MAINTENANCE"`
	ImageURL     *string  `json:"image_url,omitempty" validate:"omitempty"`
}

// UnitFilters narrows unit listings. Substring fields match case-insensitively.
type UnitFilters struct {
	Status       string
	Name         string
	Brand        string
	Plate        string
	Transmission string
	YearMin      *int
	YearMax      *int
	CapacityMin  *int
	CapacityMax  *int
	PriceMin     *float64
	PriceMax     *float64
}
