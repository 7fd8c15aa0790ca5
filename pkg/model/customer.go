package model

import "time"

// Customer is a renter record. Email is optional but unique when present;
// customers are upserted by email.
type Customer struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	FullName  string    `json:"full_name" bson:"full_name" validate:"required,min=3,max=100"`
	Phone     string    `json:"phone" bson:"phone" validate:"required,min=7,max=20"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// CustomerLookup is the outcome of an email lookup. Found is explicit so
// callers branch on it rather than on a nil Customer.
type CustomerLookup struct {
	Found    bool
	Customer *Customer
}
