package flows

import (
	"context"
	"errors"
	"testing"

	"fleetrent/internal/flows/core"
	"fleetrent/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCustomers struct {
	upsertFunc func(ctx context.Context, customer *model.Customer) (*model.Customer, error)
}

func (s *stubCustomers) Upsert(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	return s.upsertFunc(ctx, customer)
}

type stubBookings struct {
	created *model.Booking
	err     error
}

func (s *stubBookings) Create(ctx context.Context, booking *model.Booking) error {
	if s.err != nil {
		return s.err
	}
	booking.ID = "9e8d7c6b-5a40-4f31-8e2d-1c0b9a887766"
	s.created = booking
	return nil
}

func bookInput() map[string]any {
	return map[string]any{
		"full_name":     "Ana Reyes",
		"email":         "ana.reyes@example.com",
		"phone":         "09171234567",
		"unit_id":       "7f6c0a3e-9a1b-4c8d-b2e3-1f4a5b6c7d8e",
		"start_date":    "2026-09-10T10:00:00Z",
		"end_date":      "2026-09-12T10:00:00Z",
		"price_per_day": 3500.0,
	}
}

func TestBookUnitFlow_HappyPath(t *testing.T) {
	customer := &model.Customer{ID: "b1a2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"}
	customers := &stubCustomers{
		upsertFunc: func(ctx context.Context, c *model.Customer) (*model.Customer, error) {
			assert.Equal(t, "Ana Reyes", c.FullName)
			return customer, nil
		},
	}
	bookings := &stubBookings{}

	engine := core.NewEngine(NewBookUnitFlow(customers, bookings))
	fc := core.NewFlowContext(bookInput())

	err := engine.Run(context.Background(), "book_unit", fc)
	require.NoError(t, err)

	require.NotNil(t, bookings.created)
	assert.Equal(t, customer.ID, bookings.created.CustomerID)
	assert.Equal(t, "7f6c0a3e-9a1b-4c8d-b2e3-1f4a5b6c7d8e", bookings.created.UnitID)

	assert.Equal(t, customer, fc.Output["customer"])
	assert.Equal(t, bookings.created, fc.Output["booking"])
}

func TestBookUnitFlow_CustomerFailureAbortsBeforeBooking(t *testing.T) {
	boom := errors.New("customer validation failed")
	customers := &stubCustomers{
		upsertFunc: func(ctx context.Context, c *model.Customer) (*model.Customer, error) {
			return nil, boom
		},
	}
	bookings := &stubBookings{}

	engine := core.NewEngine(NewBookUnitFlow(customers, bookings))
	err := engine.Run(context.Background(), "book_unit", core.NewFlowContext(bookInput()))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, bookings.created, "no booking may be written after a customer failure")
}

func TestBookUnitFlow_MissingRequiredParam(t *testing.T) {
	customers := &stubCustomers{
		upsertFunc: func(ctx context.Context, c *model.Customer) (*model.Customer, error) {
			return &model.Customer{ID: "b1a2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"}, nil
		},
	}
	bookings := &stubBookings{}

	input := bookInput()
	delete(input, "start_date")

	engine := core.NewEngine(NewBookUnitFlow(customers, bookings))
	err := engine.Run(context.Background(), "book_unit", core.NewFlowContext(input))

	require.Error(t, err)
	assert.Nil(t, bookings.created)
}
