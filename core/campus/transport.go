package campus

import "time"

// Vehicle statuses
const (
	VehicleActive      = "active"
	VehicleMaintenance = "maintenance"
	VehicleRetired     = "retired"
)

type Vehicle struct {
	Document
	PlateNumber string `json:"plateNumber" validate:"required"`
	Model       string `json:"model,omitempty"`
	Capacity    int    `json:"capacity" validate:"gt=0"`
	DriverName  string `json:"driverName,omitempty"`
	Status      string `json:"status" validate:"required,oneof=active maintenance retired"`
}

type Stop struct {
	Name        string `json:"name" validate:"required"`
	ArrivalTime string `json:"arrivalTime" validate:"required,clock"`
}

type Route struct {
	Document
	Name          string `json:"name" validate:"required"`
	VehicleID     string `json:"vehicleId,omitempty"`
	DepartureTime string `json:"departureTime" validate:"required,clock"`
	Stops         []Stop `json:"stops" validate:"dive"`
	Fare          int    `json:"fare" validate:"gte=0"` // in cents
}

// Booking statuses
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	Document
	StudentID string    `json:"studentId" validate:"required,docid"`
	RouteID   string    `json:"routeId" validate:"required,docid"`
	Date      time.Time `json:"date"`
	Seat      int       `json:"seat,omitempty" validate:"gte=0"`
	Status    string    `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// Feedback is sent by a student about a module, a lecturer or a service.
type Feedback struct {
	Document
	StudentID string `json:"studentId" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	TargetID  string `json:"targetId,omitempty"`
	Rating    int    `json:"rating" validate:"gte=1,lte=5"`
	Comment   string `json:"comment,omitempty" validate:"max=2000"`
}
