package flows

import (
	"context"

	"fleetrent/internal/flows/core"
	"fleetrent/pkg/model"
)

// FlowBookUnit is the registered name of the walk-in booking pipeline.
const FlowBookUnit = "book_unit"

const (
	customerKey = "customer"
	bookingKey  = "booking"
)

// CustomerUpserter and BookingCreator are the service slices the booking
// flow drives.
type CustomerUpserter interface {
	Upsert(ctx context.Context, customer *model.Customer) (*model.Customer, error)
}

type BookingCreator interface {
	Create(ctx context.Context, booking *model.Booking) error
}

// BookUnitFlow takes walk-in customer details plus booking details and runs
// them as one pipeline: the customer is resolved first, and a customer
// failure aborts before any booking write happens.
type BookUnitFlow struct {
	customers CustomerUpserter
	bookings  BookingCreator
}

func NewBookUnitFlow(customers CustomerUpserter, bookings BookingCreator) *BookUnitFlow {
	return &BookUnitFlow{
		customers: customers,
		bookings:  bookings,
	}
}

func (f *BookUnitFlow) Name() string {
	return FlowBookUnit
}

func (f *BookUnitFlow) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("resolve_customer", f.resolveCustomer),
		core.NewStep("create_booking", f.createBooking),
		core.NewStep("organize_output", f.organizeOutput),
	}
}

func (f *BookUnitFlow) resolveCustomer(ctx context.Context, fc *core.FlowContext) error {
	fullName, err := fc.ExtractString("full_name")
	if err != nil {
		return err
	}

	customer := &model.Customer{
		FullName: fullName,
		Email:    fc.OptionalString("email"),
		Phone:    fc.OptionalString("phone"),
	}

	resolved, err := f.customers.Upsert(ctx, customer)
	if err != nil {
		return err
	}

	fc.Process[customerKey] = resolved
	return nil
}

func (f *BookUnitFlow) createBooking(ctx context.Context, fc *core.FlowContext) error {
	customer := fc.Process[customerKey].(*model.Customer)

	unitID, err := fc.ExtractString("unit_id")
	if err != nil {
		return err
	}
	startDate, err := fc.ExtractTime("start_date")
	if err != nil {
		return err
	}
	endDate, err := fc.ExtractTime("end_date")
	if err != nil {
		return err
	}
	pricePerDay, err := fc.ExtractFloat("price_per_day")
	if err != nil {
		return err
	}

	booking := &model.Booking{
		UnitID:      unitID,
		CustomerID:  customer.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		PricePerDay: pricePerDay,
		// Seed total with the rate; the service recomputes the stored value.
		TotalPrice: pricePerDay,
		Location:    fc.OptionalString("location"),
		Status:      fc.OptionalString("status"),
		CreatedBy:   fc.OptionalString("created_by"),
	}

	if err := f.bookings.Create(ctx, booking); err != nil {
		return err
	}

	fc.Process[bookingKey] = booking
	return nil
}

func (f *BookUnitFlow) organizeOutput(ctx context.Context, fc *core.FlowContext) error {
	fc.Output["customer"] = fc.Process[customerKey]
	fc.Output["booking"] = fc.Process[bookingKey]
	return nil
}
