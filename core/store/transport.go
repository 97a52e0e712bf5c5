package store

import (
	"context"

	"github.com/trezcool/campus/core/campus"
)

// API endpoints
const (
	VehiclesEndpoint = "/api/vehicle"
	RoutesEndpoint   = "/api/route"
	BookingsEndpoint = "/api/booking"
)

// Transport holds the transportation collections.
type Transport struct {
	Vehicles *Resource[campus.Vehicle]
	Routes   *Resource[campus.Route]
	Bookings *Resource[campus.Booking]
}

func NewTransport(deps Deps) (*Transport, error) {
	if err := deps.check("store.NewTransport"); err != nil {
		return nil, err
	}
	return &Transport{
		Vehicles: newResource[campus.Vehicle]("vehicles", VehiclesEndpoint, deps),
		Routes:   newResource[campus.Route]("routes", RoutesEndpoint, deps),
		Bookings: newResource[campus.Booking]("bookings", BookingsEndpoint, deps),
	}, nil
}

func (t *Transport) Fetchers() []Fetcher {
	return []Fetcher{t.Vehicles, t.Routes, t.Bookings}
}

// CancelBooking sets the status of the booking id to cancelled.
func (t *Transport) CancelBooking(ctx context.Context, id string) (campus.Booking, error) {
	return t.Bookings.patch(ctx, id, "status", map[string]string{"status": campus.BookingCancelled})
}

// RouteBookings returns the loaded bookings of a route that are not cancelled.
func (t *Transport) RouteBookings(routeID string) []campus.Booking {
	var bookings []campus.Booking
	for _, b := range t.Bookings.Items() {
		if b.RouteID == routeID && b.Status != campus.BookingCancelled {
			bookings = append(bookings, b)
		}
	}
	return bookings
}
